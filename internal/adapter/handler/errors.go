package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func statusOf(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsUnauthenticated(err):
		return http.StatusUnauthorized
	case domain.IsForbidden(err):
		return http.StatusForbidden
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case domain.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusOf(err)
	resp := ErrorResponse{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Message
		resp.Field = verr.Field
	}

	if status >= http.StatusInternalServerError {
		loggerFrom(c).Error("request failed", zap.Error(err))
		if status == http.StatusInternalServerError {
			resp.Error = "internal server error"
		}
	}

	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message, Field: field})
}
