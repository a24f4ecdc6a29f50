package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-report-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithMessage sends a failure carrying only a message. Used for
// client errors where the message is the whole explanation.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
	})
}

// RespondWithError sends an error response. Client errors carry the
// AppError message only; server errors carry serverMessage plus the
// underlying cause in the error field.
func RespondWithError(c *gin.Context, err error, serverMessage string) {
	statusCode := http.StatusInternalServerError
	cause := err.Error()

	if appErr, ok := errors.As(err); ok {
		statusCode = appErr.StatusCode()
		cause = appErr.Cause()
		if statusCode < http.StatusInternalServerError {
			RespondWithMessage(c, statusCode, appErr.Message)
			return
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: serverMessage,
		Error:   cause,
	})
}
