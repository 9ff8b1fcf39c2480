package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/auth/model"
	"gpevim-backend/internal/domains/auth/service"
	"gpevim-backend/internal/shared/response"
)

type AuthHandler struct {
	service service.ServiceInterface
}

func NewAuthHandler(svc service.ServiceInterface) *AuthHandler {
	return &AuthHandler{service: svc}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", verrs)
		case errors.Is(err, model.ErrInvalidCredentials):
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.LoginResponse{
				Success: false,
				Message: "Invalid username or password",
			})
		default:
			log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Login failed")
			response.InternalServerError(c)
		}
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
