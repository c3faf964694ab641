package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
)

type embeddingRepository struct {
	db *sqlx.DB
}

func NewEmbeddingRepository(db *sqlx.DB) repository.EmbeddingRepository {
	return &embeddingRepository{db: db}
}

func (r *embeddingRepository) Upsert(ctx context.Context, embedding *domain.PlayerEmbedding) error {
	query := `
		INSERT INTO player_embeddings (player_id, vector, model, source_text_hash, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (player_id) DO UPDATE
		SET vector = EXCLUDED.vector,
		    model = EXCLUDED.model,
		    source_text_hash = EXCLUDED.source_text_hash,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		embedding.PlayerID, pq.Array(embedding.Vector), embedding.Model, embedding.SourceTextHash,
	).Scan(&embedding.UpdatedAt)
}

// Candidates applies every supplied structured facet in SQL so the
// similarity ranking only ever sees filter-eligible players.
func (r *embeddingRepository) Candidates(ctx context.Context, filters *domain.SearchFilters) ([]repository.EmbeddingCandidate, error) {
	query := `
		SELECT e.player_id, e.vector
		FROM player_embeddings e
		JOIN players p ON p.id = e.player_id
		LEFT JOIN schools s ON s.id = p.school_id
		WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if len(filters.ClassYears) > 0 {
		query += fmt.Sprintf(" AND p.class_year = ANY($%d)", argCount)
		args = append(args, pq.Array(filters.ClassYears))
		argCount++
	}

	if len(filters.SchoolTypes) > 0 {
		query += fmt.Sprintf(" AND s.type = ANY($%d)", argCount)
		args = append(args, pq.Array(filters.SchoolTypes))
		argCount++
	}

	if len(filters.Locations) > 0 {
		query += fmt.Sprintf(" AND p.location = ANY($%d)", argCount)
		args = append(args, pq.Array(filters.Locations))
		argCount++
	}

	if filters.MinGPA != nil {
		query += fmt.Sprintf(" AND p.gpa >= $%d", argCount)
		args = append(args, *filters.MinGPA)
		argCount++
	}

	if filters.MaxGPA != nil {
		query += fmt.Sprintf(" AND p.gpa <= $%d", argCount)
		args = append(args, *filters.MaxGPA)
		argCount++
	}

	if filters.GameID != nil || len(filters.Roles) > 0 {
		sub := `SELECT 1 FROM game_profiles gp WHERE gp.player_id = p.id`
		if filters.GameID != nil {
			sub += fmt.Sprintf(" AND gp.game_id = $%d", argCount)
			args = append(args, *filters.GameID)
			argCount++
		}
		if len(filters.Roles) > 0 {
			sub += fmt.Sprintf(" AND gp.role = ANY($%d)", argCount)
			args = append(args, pq.Array(filters.Roles))
			argCount++
		}
		query += fmt.Sprintf(" AND EXISTS (%s)", sub)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []repository.EmbeddingCandidate
	for rows.Next() {
		var c repository.EmbeddingCandidate
		var vector pq.Float64Array
		if err := rows.Scan(&c.PlayerID, &vector); err != nil {
			return nil, err
		}
		c.Vector = []float64(vector)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *embeddingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM player_embeddings`)
	return count, err
}

func (r *embeddingRepository) MissingCount(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM players p
		WHERE NOT EXISTS (
			SELECT 1 FROM player_embeddings e WHERE e.player_id = p.id
		)
	`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
