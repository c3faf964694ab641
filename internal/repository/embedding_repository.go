package repository

import (
	"context"

	"github.com/scoutlane/talent-backend/internal/domain"
)

// EmbeddingCandidate is a pre-filtered row handed to the similarity
// engine: the player's ID and stored vector, nothing else.
type EmbeddingCandidate struct {
	PlayerID int
	Vector   []float64
}

type EmbeddingRepository interface {
	// Upsert overwrites the player's embedding. Last write wins.
	Upsert(ctx context.Context, embedding *domain.PlayerEmbedding) error
	// Candidates returns the vectors of every player that satisfies all
	// structured facets in filters (AND semantics). The free-text query,
	// limit and similarity floor in filters are ignored here; ranking is
	// the engine's job.
	Candidates(ctx context.Context, filters *domain.SearchFilters) ([]EmbeddingCandidate, error)
	Count(ctx context.Context) (int, error)
	MissingCount(ctx context.Context) (int, error)
}
