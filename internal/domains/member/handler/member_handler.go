package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/domains/member/service"
	"gpevim-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MemberHandler struct {
	service service.ServiceInterface
}

func NewMemberHandler(svc service.ServiceInterface) *MemberHandler {
	return &MemberHandler{service: svc}
}

func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	g := rg.Group("/members")
	g.GET("", h.List)
	// registered before /:id so "export" is not parsed as an id
	g.GET("/export", h.Export)
	g.GET("/:id", h.GetByID)

	w := g.Group("", write...)
	w.POST("", h.Create)
	w.PUT("/:id", h.Update)
	w.DELETE("/:id", h.Delete)
}

// GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	response.JSON(c, http.StatusOK, members)
}

// GET /api/members/export
func (h *MemberHandler) Export(c *gin.Context) {
	f, err := h.service.ExportToExcel(c.Request.Context())
	if err != nil {
		h.fail(c, "export", err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("membros_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to stream members workbook")
	}
}

// GET /api/members/:id
func (h *MemberHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	response.JSON(c, http.StatusOK, m)
}

// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	m, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	response.JSON(c, http.StatusCreated, m)
}

// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	response.JSON(c, http.StatusOK, m)
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	response.Message(c, http.StatusOK, "Member deleted successfully")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, model.ToErrorCode(model.ErrInvalidID), "Invalid member id")
		return 0, false
	}
	return id, true
}

func (h *MemberHandler) fail(c *gin.Context, op string, err error) {
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
		response.Error(c, status, code, "Member not found")
	default:
		log.Error().Err(err).Str("op", op).Msg("member request failed")
		response.Error(c, http.StatusInternalServerError, code, "Internal server error")
	}
}
