package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ugc-studio/internal/media"
	"ugc-studio/internal/model"
	"ugc-studio/pkg/ai"
)

// APIError is the body of every error response.
type APIError struct {
	Error string `json:"error"`
}

// handleServiceError maps service errors to HTTP statuses.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()

	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusBadGateway:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = "Internal server error"
	case status >= http.StatusInternalServerError:
		h.logger.Error("Upstream failure", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	default:
		h.logger.Warn("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, APIError{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ai.ErrNotConfigured), errors.Is(err, model.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ai.ErrProviderPermanent), errors.Is(err, ai.ErrAIGenerationFailed),
		errors.Is(err, media.ErrImageGenerationFailed), errors.Is(err, media.ErrImageSaveFailed):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrBrandRequired):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoShots):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Error: message})
}
