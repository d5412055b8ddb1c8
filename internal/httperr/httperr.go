package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundStatus(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func ForbiddenStatus(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteBusiness maps a BusinessError kind onto its status code. Anything
// that is not a BusinessError is reported as an internal error.
func WriteBusiness(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch be.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindForbidden:
		status = http.StatusForbidden
	case KindConflict:
		status = http.StatusConflict
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Message: be.Code,
		Details: be.Details,
	})
}
