package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scoutlane/talent-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain sentinels onto HTTP statuses. Unknown errors
// become an opaque 500; detail stays in the server logs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAINotConfigured):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "AI talent search is not configured. Contact an administrator to enable it.",
		})
	case errors.Is(err, domain.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "player not found",
		})
	case errors.Is(err, domain.ErrInvalidFilters):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid search filters",
		})
	case errors.Is(err, domain.ErrEmbeddingBackend):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "embedding backend is unavailable, try again later",
		})
	case errors.Is(err, domain.ErrAnalysisGeneration):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "analysis could not be generated, try again later",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
		})
	}
}
