package repository

import (
	"context"

	"github.com/scoutlane/talent-backend/internal/domain"
)

type CoachRepository interface {
	// GetContext loads the coach's school and the games their teams play,
	// for analysis prompts.
	GetContext(ctx context.Context, coachID int) (*domain.CoachContext, error)
}
