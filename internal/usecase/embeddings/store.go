package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/ai"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
)

const (
	maxRefreshBatchSize = 50
)

// Store keeps player embeddings in sync with player profiles. The
// embedding rows are a best-effort cache; the player row is the source
// of truth and every write here is an overwrite.
type Store struct {
	playerRepo    repository.PlayerRepository
	embeddingRepo repository.EmbeddingRepository
	embedder      ai.Embedder
	cfg           *config.AIConfig
	logger        zerolog.Logger
}

func NewStore(
	playerRepo repository.PlayerRepository,
	embeddingRepo repository.EmbeddingRepository,
	embedder ai.Embedder,
	cfg *config.AIConfig,
	logger zerolog.Logger,
) *Store {
	return &Store{
		playerRepo:    playerRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		cfg:           cfg,
		logger:        logger.With().Str("component", "embedding_store").Logger(),
	}
}

// Upsert regenerates the embedding for one player from their current
// profile. Idempotent for an unchanged profile, modulo backend
// nondeterminism.
func (s *Store) Upsert(ctx context.Context, playerID int) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return err
	}

	text := BuildProfileText(player)
	vector, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding player %d: %w", playerID, err)
	}

	hash := sha256.Sum256([]byte(text))
	embedding := &domain.PlayerEmbedding{
		PlayerID:       playerID,
		Vector:         vector,
		Model:          s.cfg.EmbeddingModel,
		SourceTextHash: hex.EncodeToString(hash[:]),
	}
	if err := s.embeddingRepo.Upsert(ctx, embedding); err != nil {
		return fmt.Errorf("storing embedding for player %d: %w", playerID, err)
	}

	s.logger.Debug().Int("player_id", playerID).Int("dims", len(vector)).Msg("embedding updated")
	return nil
}

type RefreshOptions struct {
	OnlyMissing bool
	BatchSize   int
	BatchDelay  time.Duration
}

type RefreshResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RefreshAll rebuilds embeddings for every player (or only those without
// one). Players inside a batch are embedded concurrently; batches run
// sequentially with a delay between them to respect backend rate
// limits. One player's failure never aborts the run.
func (s *Store) RefreshAll(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	if !s.embedder.Configured() {
		return nil, domain.ErrAINotConfigured
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = s.cfg.RefreshBatchSize
	}
	if opts.BatchSize > maxRefreshBatchSize {
		opts.BatchSize = maxRefreshBatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = s.cfg.RefreshBatchDelay
	}

	ids, err := s.playerRepo.ListIDs(ctx, opts.OnlyMissing)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}

	result := &RefreshResult{}
	var mu sync.Mutex

	for start := 0; start < len(ids); start += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + opts.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		var wg sync.WaitGroup
		for _, id := range ids[start:end] {
			wg.Add(1)
			go func(playerID int) {
				defer wg.Done()
				err := s.Upsert(ctx, playerID)

				mu.Lock()
				defer mu.Unlock()
				result.Processed++
				if err != nil {
					result.Failed++
					s.logger.Warn().Err(err).Int("player_id", playerID).Msg("embedding refresh failed")
					return
				}
				result.Succeeded++
			}(id)
		}
		wg.Wait()

		if end < len(ids) {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.BatchDelay):
			}
		}
	}

	s.logger.Info().
		Int("processed", result.Processed).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("embedding refresh complete")
	return result, nil
}

type CoverageStats struct {
	TotalEmbeddings   int     `json:"total_embeddings"`
	MissingEmbeddings int     `json:"missing_embeddings"`
	TotalPlayers      int     `json:"total_players"`
	CoveragePercent   float64 `json:"coverage_percent"`
	IsConfigured      bool    `json:"is_configured"`
}

// Stats reports embedding coverage. Counts are taken from the store
// directly; under concurrent writes they are eventually consistent.
func (s *Store) Stats(ctx context.Context) (*CoverageStats, error) {
	total, err := s.embeddingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	missing, err := s.embeddingRepo.MissingCount(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CoverageStats{
		TotalEmbeddings:   total,
		MissingEmbeddings: missing,
		TotalPlayers:      players,
		IsConfigured:      s.embedder.Configured(),
	}
	if players > 0 {
		stats.CoveragePercent = float64(total) / float64(players) * 100
	}
	return stats, nil
}
