package repository

import (
	"context"

	"github.com/scoutlane/talent-backend/internal/domain"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Player, error)
	// GetByIDs hydrates full player rows (school and game profiles
	// included) for the given IDs. IDs with no row are skipped.
	GetByIDs(ctx context.Context, ids []int) ([]*domain.Player, error)
	// ListIDs returns all player IDs; with onlyMissingEmbedding set, only
	// players that have no stored embedding.
	ListIDs(ctx context.Context, onlyMissingEmbedding bool) ([]int, error)
	Count(ctx context.Context) (int, error)
}
