package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
)

type coachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) repository.CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) GetContext(ctx context.Context, coachID int) (*domain.CoachContext, error) {
	cctx := &domain.CoachContext{}

	query := `
		SELECT s.name, s.type
		FROM coaches c
		JOIN schools s ON s.id = c.school_id
		WHERE c.id = $1
	`
	err := r.db.QueryRowContext(ctx, query, coachID).Scan(&cctx.SchoolName, &cctx.SchoolType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A coach without a school association still gets an analysis,
			// just without program context in the prompt.
			return &domain.CoachContext{}, nil
		}
		return nil, err
	}

	query = `
		SELECT DISTINCT g.name
		FROM coach_teams t
		JOIN games g ON g.id = t.game_id
		WHERE t.coach_id = $1
		ORDER BY g.name
	`
	if err := r.db.SelectContext(ctx, &cctx.Games, query, coachID); err != nil {
		return nil, err
	}

	return cctx, nil
}
