package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
	"github.com/muhammadolammi/careerpilot/internal/interview"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondErr picks status and code from the error's type.
func respondErr(c *gin.Context, err error) {
	status, code := statusFor(err)
	RespondError(c, status, code, err)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, interview.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, interview.ErrStaleQuestion):
		return http.StatusConflict, "stale_question"
	case errors.Is(err, interview.ErrBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, interview.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, interview.ErrSessionReset):
		return http.StatusConflict, "session_reset"
	default:
		return apperr.Status(err)
	}
}

func badRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "bad_request", err)
}
