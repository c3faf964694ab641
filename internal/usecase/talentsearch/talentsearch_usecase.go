package talentsearch

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
	"github.com/scoutlane/talent-backend/internal/usecase/search"
)

// TalentSearchUseCase is the coach-facing entry point: configuration
// gate, similarity search, hydration, favorite annotation, final sort.
type TalentSearchUseCase struct {
	engine       *search.Engine
	playerRepo   repository.PlayerRepository
	favoriteRepo repository.FavoriteRepository
	cfg          *config.AIConfig
	logger       zerolog.Logger
}

func NewTalentSearchUseCase(
	engine *search.Engine,
	playerRepo repository.PlayerRepository,
	favoriteRepo repository.FavoriteRepository,
	cfg *config.AIConfig,
	logger zerolog.Logger,
) *TalentSearchUseCase {
	return &TalentSearchUseCase{
		engine:       engine,
		playerRepo:   playerRepo,
		favoriteRepo: favoriteRepo,
		cfg:          cfg,
		logger:       logger.With().Str("component", "talent_search").Logger(),
	}
}

// Search runs one coach query end to end. A player deleted between the
// similarity ranking and hydration is silently dropped, so the final
// count may be smaller than the engine's.
func (uc *TalentSearchUseCase) Search(ctx context.Context, filters *domain.SearchFilters, coachID int) (*domain.SearchResponse, error) {
	if !uc.cfg.Configured() {
		return nil, domain.ErrAINotConfigured
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	// Deployment-level defaults win over the domain constants when the
	// request leaves a field unset. An explicit min_similarity of 0 is
	// honored as "no floor".
	if filters.Limit <= 0 && uc.cfg.DefaultLimit > 0 {
		filters.Limit = uc.cfg.DefaultLimit
	}
	if filters.MinSimilarity == nil && uc.cfg.MinSimilarity > 0 {
		v := uc.cfg.MinSimilarity
		filters.MinSimilarity = &v
	}
	filters.Normalize()

	ranked, err := uc.engine.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	response := &domain.SearchResponse{
		Results: []domain.TalentSearchResult{},
		Query:   filters.Query,
	}
	if len(ranked) == 0 {
		return response, nil
	}

	ids := make([]int, len(ranked))
	similarity := make(map[int]float64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.PlayerID
		similarity[r.PlayerID] = r.Similarity
	}

	players, err := uc.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating players: %w", err)
	}

	favorited, err := uc.favoriteRepo.FavoritedSet(ctx, coachID, ids)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	for _, p := range players {
		response.Results = append(response.Results, domain.TalentSearchResult{
			Player:      p,
			Similarity:  similarity[p.ID],
			IsFavorited: favorited[p.ID],
		})
	}

	// Hydration order is whatever the bulk fetch returned; re-sort.
	sort.SliceStable(response.Results, func(i, j int) bool {
		return response.Results[i].Similarity > response.Results[j].Similarity
	})
	response.TotalCount = len(response.Results)

	uc.logger.Info().
		Int("coach_id", coachID).
		Int("ranked", len(ranked)).
		Int("returned", response.TotalCount).
		Msg("talent search completed")
	return response, nil
}

// Availability reports the configuration gate in user-facing terms.
func (uc *TalentSearchUseCase) Availability() *domain.Availability {
	if uc.cfg.Configured() {
		return &domain.Availability{
			IsAvailable: true,
			Message:     "AI talent search is available.",
		}
	}
	return &domain.Availability{
		IsAvailable: false,
		Message:     "AI talent search is not configured. Contact an administrator to enable it.",
	}
}
