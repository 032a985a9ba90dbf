package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
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

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Respond maps an error returned by a use case onto the HTTP taxonomy.
// Anything unclassified is logged and answered with a generic 500; the
// original message never reaches the client.
func Respond(c *gin.Context, log zerolog.Logger, err error) {
	var nf NotFoundError
	var be BusinessError

	switch {
	case errors.As(err, &nf):
		NotFound(c, nf.Code, messageOr(nf.Message, nf.Code))
	case errors.As(err, &be):
		BadRequest(c, be.Code, messageOr(be.Message, be.Code))
	case errors.Is(err, ErrStoreUnavailable):
		log.Warn().Err(err).
			Str("path", c.FullPath()).
			Msg("store unavailable")
		Unavailable(c, "store_unavailable", "Service temporarily unavailable. Please try again.")
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unexpected error")
		Internal(c, "internal_error", "Server error")
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
