package repository

import "context"

type FavoriteRepository interface {
	// FavoritedSet returns, for one coach, which of the given player IDs
	// they have favorited.
	FavoritedSet(ctx context.Context, coachID int, playerIDs []int) (map[int]bool, error)
}
