package response

import (
	"errors"
	"net/http"

	"luxurystay/internal/domain"

	"github.com/gin-gonic/gin"
)

// Classify maps a service error onto an HTTP status and error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// FromError writes the envelope for err. Unknown errors are attached to the
// gin context so ErrorLogger records them, and the client gets a generic 500.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)

	var transition *domain.TransitionError
	switch {
	case errors.As(err, &transition):
		ErrorWithDetails(c, status, code, err.Error(), gin.H{
			"current":   transition.Current,
			"requested": transition.Requested,
		})
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		Error(c, status, code, "Internal server error")
	default:
		Error(c, status, code, err.Error())
	}
}
