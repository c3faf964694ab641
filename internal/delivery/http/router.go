package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/delivery/http/handler"
	"github.com/scoutlane/talent-backend/internal/delivery/http/middleware"
)

type Router struct {
	talentSearchHandler *handler.TalentSearchHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	logger              zerolog.Logger
}

func NewRouter(
	talentSearchHandler *handler.TalentSearchHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger zerolog.Logger,
) *Router {
	return &Router{
		talentSearchHandler: talentSearchHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		logger:              logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Coach-facing talent search
		search := v1.Group("/talent-search")
		search.Use(r.authMiddleware.RequireOnboardedCoach())
		{
			search.POST("", r.talentSearchHandler.Search)
			search.GET("/availability", r.talentSearchHandler.Availability)
			search.GET("/players/:player_id/analysis", r.talentSearchHandler.GetAnalysis)
		}

		// Admin operations
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.RequireAdmin())
		{
			admin.POST("/embeddings/refresh", r.adminHandler.RefreshEmbeddings)
			admin.GET("/embeddings/stats", r.adminHandler.EmbeddingStats)
		}

		// Internal hooks (profile-edit integration)
		internal := v1.Group("/internal")
		internal.Use(r.authMiddleware.RequireSystem())
		{
			internal.POST("/players/:player_id/embedding", r.adminHandler.UpdatePlayerEmbedding)
		}
	}

	return router
}
