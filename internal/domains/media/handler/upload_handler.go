package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/media/model"
	"gpevim-backend/internal/domains/media/service"
	"gpevim-backend/internal/shared/response"
)

type UploadHandler struct {
	service  service.ServiceInterface
	maxBytes int64
}

func NewUploadHandler(svc service.ServiceInterface, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: svc, maxBytes: maxBytes}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(write)+1)
	handlers = append(handlers, write...)
	handlers = append(handlers, h.Upload)
	rg.POST("/upload-image", handlers...)
}

// POST /api/upload-image
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.fail(c, model.ErrNoFile)
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		h.fail(c, model.ErrTooLarge)
		return
	}

	in := &model.UploadInput{
		Bucket:      c.PostForm("bucket"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	if !model.IsImage(in.ContentType) {
		h.fail(c, model.ErrNotImage)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	in.Data, err = io.ReadAll(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *UploadHandler) fail(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Image upload failed")
		response.Error(c, status, model.ToErrorCode(err), "Failed to process image")
		return
	}
	response.Error(c, status, model.ToErrorCode(err), err.Error())
}
