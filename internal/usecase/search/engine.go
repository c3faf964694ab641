package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/ai"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
)

// Engine ranks players against a free-text query. Structured facets are
// pushed down to the embedding repository so the limit is filled with
// filter-eligible candidates; similarity scoring, the floor and the cap
// happen here.
type Engine struct {
	embedder      ai.Embedder
	embeddingRepo repository.EmbeddingRepository
	logger        zerolog.Logger
}

func NewEngine(embedder ai.Embedder, embeddingRepo repository.EmbeddingRepository, logger zerolog.Logger) *Engine {
	return &Engine{
		embedder:      embedder,
		embeddingRepo: embeddingRepo,
		logger:        logger.With().Str("component", "search_engine").Logger(),
	}
}

// Search returns at most filters.Limit players ordered by similarity
// descending, all scoring at least filters.MinSimilarity. Filters must
// already be normalized. An empty corpus yields an empty slice.
func (e *Engine) Search(ctx context.Context, filters *domain.SearchFilters) ([]domain.RankedPlayer, error) {
	queryVector, err := e.embedder.EmbedText(ctx, filters.Query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := e.embeddingRepo.Candidates(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ranked := make([]domain.RankedPlayer, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Vector) != len(queryVector) {
			// Stale vector from a different embedding model; skip until
			// the next refresh rewrites it.
			e.logger.Debug().Int("player_id", c.PlayerID).Msg("skipping embedding with mismatched dimensions")
			continue
		}
		score := similarityScore(queryVector, c.Vector)
		if filters.MinSimilarity != nil && score < *filters.MinSimilarity {
			continue
		}
		ranked = append(ranked, domain.RankedPlayer{PlayerID: c.PlayerID, Similarity: score})
	}

	// Stable sort keeps retrieval order deterministic for ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > filters.Limit {
		ranked = ranked[:filters.Limit]
	}
	return ranked, nil
}

// similarityScore maps cosine similarity from [-1,1] onto [0,1] so
// thresholds live on the same scale the API exposes.
func similarityScore(a, b []float64) float64 {
	return (1 + cosineSimilarity(a, b)) / 2
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
