package container

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/ai"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/delivery/http"
	"github.com/scoutlane/talent-backend/internal/delivery/http/handler"
	"github.com/scoutlane/talent-backend/internal/delivery/http/middleware"
	"github.com/scoutlane/talent-backend/internal/events"
	"github.com/scoutlane/talent-backend/internal/infrastructure/database"
	"github.com/scoutlane/talent-backend/internal/infrastructure/gemini"
	"github.com/scoutlane/talent-backend/internal/infrastructure/server"
	"github.com/scoutlane/talent-backend/internal/repository/postgres"
	"github.com/scoutlane/talent-backend/internal/usecase/analysis"
	"github.com/scoutlane/talent-backend/internal/usecase/embeddings"
	"github.com/scoutlane/talent-backend/internal/usecase/search"
	"github.com/scoutlane/talent-backend/internal/usecase/talentsearch"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     zerolog.Logger
	DB         *sqlx.DB
	Redis      *redis.Client
	Server     *server.Server
	Gemini     *gemini.Client
	Subscriber *events.Subscriber
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(&cfg.Logging)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize AI backends. Without an API key the service stays up
	// with talent search disabled.
	var embedder ai.Embedder
	var generator ai.Generator
	var geminiClient *gemini.Client
	if cfg.AI.Configured() {
		geminiClient, err = gemini.NewClient(context.Background(), &cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		embedder = geminiClient
		generator = geminiClient
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, talent search disabled")
		disabled := ai.NewDisabled()
		embedder = disabled
		generator = disabled
	}

	// Initialize repositories
	playerRepo := postgres.NewPlayerRepository(db)
	embeddingRepo := postgres.NewEmbeddingRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	coachRepo := postgres.NewCoachRepository(db)

	// Initialize use cases
	embeddingStore := embeddings.NewStore(playerRepo, embeddingRepo, embedder, &cfg.AI, logger)
	searchEngine := search.NewEngine(embedder, embeddingRepo, logger)
	talentSearchUseCase := talentsearch.NewTalentSearchUseCase(
		searchEngine,
		playerRepo,
		favoriteRepo,
		&cfg.AI,
		logger,
	)
	analysisUseCase := analysis.NewAnalysisUseCase(
		playerRepo,
		coachRepo,
		generator,
		&cfg.AI,
		logger,
	)

	// Profile-changed events keep embeddings in sync with edits made
	// elsewhere in the platform.
	subscriber := events.NewSubscriber(redisClient, embeddingStore, logger)
	subscriber.Start()

	// Initialize handlers
	talentSearchHandler := handler.NewTalentSearchHandler(talentSearchUseCase, analysisUseCase)
	adminHandler := handler.NewAdminHandler(embeddingStore)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Initialize router
	router := http.NewRouter(
		talentSearchHandler,
		adminHandler,
		authMiddleware,
		logger,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Redis:      redisClient,
		Server:     srv,
		Gemini:     geminiClient,
		Subscriber: subscriber,
	}, nil
}

func newLogger(cfg *config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Subscriber != nil {
		c.Subscriber.Stop()
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
