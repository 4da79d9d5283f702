package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medvault/medvault/internal/common"
)

// Context keys populated by the Authenticate middleware.
const (
	UserIDKey   = "user_id"
	EmailKey    = "email"
	FullNameKey = "full_name"
)

// Authenticate validates the bearer token and stores the caller's identity
// claims in the request context.
func (s *HTTPServer) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("Authorization token is missing"))
			return
		}

		claims, err := s.issuer.ParseClaims(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		c.Set(FullNameKey, claims.FullName)

		c.Next()
	}
}

// requestLogger logs each request with method, path, status, and duration.
// No request bodies are logged, so credentials never reach the log stream.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
