package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"meal-concierge/internal/logger"
)

// TokenVerifier validates admin bearer tokens.
type TokenVerifier interface {
	VerifyAdminToken(token string) error
}

var errMissingToken = errors.New("missing or invalid token")

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(verifier TokenVerifier, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		if err := verifier.VerifyAdminToken(token); err != nil {
			log.Warn("admin token rejected", "path", c.FullPath(), "error", err)
			AbortError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// RequestLogger logs one line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
