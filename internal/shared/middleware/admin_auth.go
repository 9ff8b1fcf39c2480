package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/shared/response"
	"gpevim-backend/pkg/jwt"
)

const AdminUsernameKey = "admin_username"

// AdminAuth requires a valid admin bearer token issued by /api/login.
func AdminAuth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateAdminToken(strings.TrimSpace(token))
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Str("ip", c.GetString(ClientIPKey)).
				Msg("Rejected admin token")
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(AdminUsernameKey, claims.Username)
		c.Next()
	}
}
