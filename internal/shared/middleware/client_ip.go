package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const ClientIPKey = "client_ip"

// ClientIP stores the caller address under ClientIPKey. X-Real-IP and the
// first X-Forwarded-For hop win over the socket address, matching the
// reverse proxy in front of the deployment.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, extractClientIP(c))
		c.Next()
	}
}

func extractClientIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
