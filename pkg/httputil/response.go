package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

// ErrorBody is the uniform error payload: {message, error?}.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageBody is the confirmation payload for deletes.
type MessageBody struct {
	Message string `json:"message"`
}

// StatusOf maps an application error to its HTTP status code.
func StatusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrValidation, apperrors.ErrInvalidID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError writes the error body with the mapped status. Validation
// and not-found messages are surfaced verbatim; internal faults keep the
// underlying detail in the optional error field.
func RespondWithError(c *gin.Context, err error) {
	status := StatusOf(err)
	body := ErrorBody{Message: err.Error()}

	var appErr *apperrors.AppError
	if status == http.StatusInternalServerError {
		body.Message = "Server error"
		if errors.As(err, &appErr) && appErr.Err != nil {
			body.Error = appErr.Err.Error()
		} else {
			body.Error = err.Error()
		}
	} else if errors.As(err, &appErr) {
		body.Message = appErr.Message
	}

	c.JSON(status, body)
}

// RespondWithMessage writes a bare confirmation message.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}
