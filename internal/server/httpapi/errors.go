package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkorotkov/clipstream/internal/common"
)

// apiError is the JSON error body: {"message": ..., "type": ...}.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// writeError maps service errors onto HTTP statuses and the wire error shape.
// Misconfiguration and unknown errors are reported opaquely; they are not
// attributable to the caller.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrRefreshTokenExpired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{Message: err.Error(), Type: "TokenExpired"})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{Message: "Unauthorized", Type: "Unauthorized"})
	case errors.Is(err, common.ErrMissingFileName):
		c.AbortWithStatusJSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
	case errors.Is(err, common.ErrUnsupportedMediaType):
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, apiError{Message: err.Error(), Type: "UnsupportedMediaType"})
	case errors.Is(err, common.ErrLoginAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, apiError{Message: err.Error(), Type: "Conflict"})
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, apiError{Message: "not found", Type: "NotFound"})
	case errors.Is(err, common.ErrMisconfigured):
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{Message: "internal error", Type: "Misconfiguration"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{Message: "internal error", Type: "Internal"})
	}
}
