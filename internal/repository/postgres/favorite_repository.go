package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/scoutlane/talent-backend/internal/repository"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) FavoritedSet(ctx context.Context, coachID int, playerIDs []int) (map[int]bool, error) {
	favorited := make(map[int]bool, len(playerIDs))
	if len(playerIDs) == 0 {
		return favorited, nil
	}

	var ids []int
	query := `
		SELECT player_id FROM coach_favorites
		WHERE coach_id = $1 AND player_id = ANY($2)
	`
	if err := r.db.SelectContext(ctx, &ids, query, coachID, pq.Array(playerIDs)); err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}
