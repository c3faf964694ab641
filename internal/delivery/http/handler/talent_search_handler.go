package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/usecase/analysis"
	"github.com/scoutlane/talent-backend/internal/usecase/talentsearch"
)

type TalentSearchHandler struct {
	searchUseCase   *talentsearch.TalentSearchUseCase
	analysisUseCase *analysis.AnalysisUseCase
}

func NewTalentSearchHandler(
	searchUseCase *talentsearch.TalentSearchUseCase,
	analysisUseCase *analysis.AnalysisUseCase,
) *TalentSearchHandler {
	return &TalentSearchHandler{
		searchUseCase:   searchUseCase,
		analysisUseCase: analysisUseCase,
	}
}

// SearchRequest is the coach's query plus structured facets.
type SearchRequest struct {
	Query         string   `json:"query" binding:"required,notblank"`
	GameID        *int     `json:"game_id"`
	ClassYears    []int    `json:"class_years"`
	SchoolTypes   []string `json:"school_types" binding:"omitempty,dive,oneof=high_school college university"`
	Locations     []string `json:"locations" binding:"omitempty,dive,notblank"`
	MinGPA        *float64 `json:"min_gpa" binding:"omitempty,gte=0,lte=5"`
	MaxGPA        *float64 `json:"max_gpa" binding:"omitempty,gte=0,lte=5"`
	Roles         []string `json:"roles" binding:"omitempty,dive,notblank"`
	Limit         int      `json:"limit" binding:"omitempty,min=1,max=100"`
	MinSimilarity *float64 `json:"min_similarity" binding:"omitempty,gte=0,lte=1"`
}

// Search handles POST /talent-search
// @Summary Search players
// @Description Semantic talent search with structured filters
// @Tags talent-search
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Query and filters"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /talent-search [post]
func (h *TalentSearchHandler) Search(c *gin.Context) {
	coachID, exists := c.Get("coach_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	filters := &domain.SearchFilters{
		Query:         req.Query,
		GameID:        req.GameID,
		ClassYears:    req.ClassYears,
		SchoolTypes:   req.SchoolTypes,
		Locations:     req.Locations,
		MinGPA:        req.MinGPA,
		MaxGPA:        req.MaxGPA,
		Roles:         req.Roles,
		Limit:         req.Limit,
		MinSimilarity: req.MinSimilarity,
	}

	response, err := h.searchUseCase.Search(c.Request.Context(), filters, coachID.(int))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Availability handles GET /talent-search/availability
// @Summary Talent search availability
// @Description Whether AI talent search is enabled on this deployment
// @Tags talent-search
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Availability
// @Failure 401 {object} ErrorResponse
// @Router /talent-search/availability [get]
func (h *TalentSearchHandler) Availability(c *gin.Context) {
	c.JSON(http.StatusOK, h.searchUseCase.Availability())
}

// GetAnalysis handles GET /talent-search/players/:player_id/analysis
// @Summary AI player analysis
// @Description Generate an overview with pros and cons for one player
// @Tags talent-search
// @Security BearerAuth
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 200 {object} domain.PlayerAnalysis
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /talent-search/players/{player_id}/analysis [get]
func (h *TalentSearchHandler) GetAnalysis(c *gin.Context) {
	coachID, exists := c.Get("coach_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	playerID, err := strconv.Atoi(c.Param("player_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player_id"})
		return
	}

	result, err := h.analysisUseCase.Generate(c.Request.Context(), playerID, coachID.(int))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
