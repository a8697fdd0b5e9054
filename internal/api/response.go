package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope with status.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondInternalError writes a 500 envelope without the underlying error text.
// Callers log the error themselves.
func RespondInternalError(c *gin.Context, code string) {
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{
			Message: "internal server error",
			Code:    code,
		},
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, code string, err error) {
	RespondError(c, status, code, err)
	c.Abort()
}

// RespondOK writes payload as JSON with 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
