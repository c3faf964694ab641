package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scoutlane/talent-backend/internal/usecase/embeddings"
)

type AdminHandler struct {
	store *embeddings.Store
}

func NewAdminHandler(store *embeddings.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

type RefreshEmbeddingsRequest struct {
	OnlyMissing  bool `json:"only_missing"`
	BatchSize    int  `json:"batch_size" binding:"omitempty,min=1,max=50"`
	BatchDelayMs int  `json:"batch_delay_ms" binding:"omitempty,min=0,max=60000"`
}

// RefreshEmbeddings handles POST /admin/embeddings/refresh
// @Summary Rebuild player embeddings
// @Description Batch-regenerate embeddings, optionally only for players missing one
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RefreshEmbeddingsRequest false "Refresh options"
// @Success 200 {object} embeddings.RefreshResult
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/embeddings/refresh [post]
func (h *AdminHandler) RefreshEmbeddings(c *gin.Context) {
	var req RefreshEmbeddingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.store.RefreshAll(c.Request.Context(), embeddings.RefreshOptions{
		OnlyMissing: req.OnlyMissing,
		BatchSize:   req.BatchSize,
		BatchDelay:  time.Duration(req.BatchDelayMs) * time.Millisecond,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EmbeddingStats handles GET /admin/embeddings/stats
// @Summary Embedding coverage stats
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} embeddings.CoverageStats
// @Failure 401 {object} ErrorResponse
// @Router /admin/embeddings/stats [get]
func (h *AdminHandler) EmbeddingStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateEmbeddingResponse mirrors the post-profile-edit hook contract:
// embedding failures are reported, never propagated, so a profile save
// can't fail because of this cache.
type UpdateEmbeddingResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// UpdatePlayerEmbedding handles POST /internal/players/:player_id/embedding
// @Summary Refresh one player's embedding
// @Tags internal
// @Security BearerAuth
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 200 {object} UpdateEmbeddingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /internal/players/{player_id}/embedding [post]
func (h *AdminHandler) UpdatePlayerEmbedding(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("player_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player_id"})
		return
	}

	if err := h.store.Upsert(c.Request.Context(), playerID); err != nil {
		c.JSON(http.StatusOK, UpdateEmbeddingResponse{
			Success: false,
			Reason:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, UpdateEmbeddingResponse{Success: true})
}
