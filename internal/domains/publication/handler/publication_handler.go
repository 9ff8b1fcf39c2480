package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/domains/publication/service"
	"gpevim-backend/internal/shared/response"
)

type PublicationHandler struct {
	service service.ServiceInterface
}

func NewPublicationHandler(svc service.ServiceInterface) *PublicationHandler {
	return &PublicationHandler{service: svc}
}

// RegisterRoutes mounts the publication routes; write handlers run behind
// the given middleware.
func (h *PublicationHandler) RegisterRoutes(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	g := rg.Group("/publications")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)

	w := g.Group("", write...)
	w.POST("", h.Create)
	w.PUT("/:id", h.Update)
	w.DELETE("/:id", h.Delete)
}

// GET /api/publications
func (h *PublicationHandler) List(c *gin.Context) {
	pubs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	response.JSON(c, http.StatusOK, pubs)
}

// GET /api/publications/:id
func (h *PublicationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pub, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	response.JSON(c, http.StatusOK, pub)
}

// POST /api/publications
func (h *PublicationHandler) Create(c *gin.Context) {
	var req model.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	pub, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	response.JSON(c, http.StatusCreated, pub)
}

// PUT /api/publications/:id
func (h *PublicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	pub, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	response.JSON(c, http.StatusOK, pub)
}

// DELETE /api/publications/:id
func (h *PublicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	response.Message(c, http.StatusOK, "Publication deleted successfully")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, model.ToErrorCode(model.ErrInvalidID), "Invalid publication id")
		return 0, false
	}
	return id, true
}

func (h *PublicationHandler) fail(c *gin.Context, op string, err error) {
	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	switch status {
	case http.StatusBadRequest:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, status, code, "Missing or invalid fields", verrs)
			return
		}
		response.Error(c, status, code, "Invalid request")
	case http.StatusNotFound:
		response.Error(c, status, code, "Publication not found")
	default:
		log.Error().Err(err).Str("op", op).Msg("publication request failed")
		response.Error(c, http.StatusInternalServerError, code, "Internal server error")
	}
}
