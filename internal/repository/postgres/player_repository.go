package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
)

type playerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

type gameProfileRow struct {
	ID             int            `db:"id"`
	PlayerID       int            `db:"player_id"`
	GameID         int            `db:"game_id"`
	GameName       string         `db:"game_name"`
	Username       *string        `db:"username"`
	Rank           *string        `db:"rank"`
	Rating         *float64       `db:"rating"`
	Role           *string        `db:"role"`
	Agents         pq.StringArray `db:"agents"`
	PlayStyle      *string        `db:"play_style"`
	MechanicsScore *float64       `db:"mechanics_score"`
	GameSenseScore *float64       `db:"game_sense_score"`
	Attributes     []byte         `db:"attributes"`
}

func (r gameProfileRow) toDomain() (domain.GameProfile, error) {
	gp := domain.GameProfile{
		ID:             r.ID,
		PlayerID:       r.PlayerID,
		GameID:         r.GameID,
		GameName:       r.GameName,
		Username:       r.Username,
		Rank:           r.Rank,
		Rating:         r.Rating,
		Role:           r.Role,
		Agents:         []string(r.Agents),
		PlayStyle:      r.PlayStyle,
		MechanicsScore: r.MechanicsScore,
		GameSenseScore: r.GameSenseScore,
	}
	if len(r.Attributes) > 0 {
		if err := json.Unmarshal(r.Attributes, &gp.Attributes); err != nil {
			return gp, err
		}
	}
	return gp, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int) (*domain.Player, error) {
	players, err := r.GetByIDs(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, domain.ErrPlayerNotFound
	}
	return players[0], nil
}

func (r *playerRepository) GetByIDs(ctx context.Context, ids []int) ([]*domain.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var players []*domain.Player
	query := `SELECT * FROM players WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &players, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}

	byID := make(map[int]*domain.Player, len(players))
	var schoolIDs []int
	for _, p := range players {
		byID[p.ID] = p
		if p.SchoolID != nil {
			schoolIDs = append(schoolIDs, *p.SchoolID)
		}
	}

	if len(schoolIDs) > 0 {
		var schools []domain.School
		query = `SELECT id, name, type, state FROM schools WHERE id = ANY($1)`
		if err := r.db.SelectContext(ctx, &schools, query, pq.Array(schoolIDs)); err != nil {
			return nil, err
		}
		schoolByID := make(map[int]domain.School, len(schools))
		for _, s := range schools {
			schoolByID[s.ID] = s
		}
		for _, p := range players {
			if p.SchoolID != nil {
				if s, ok := schoolByID[*p.SchoolID]; ok {
					sc := s
					p.School = &sc
				}
			}
		}
	}

	var profileRows []gameProfileRow
	query = `
		SELECT gp.id, gp.player_id, gp.game_id, g.name AS game_name,
		       gp.username, gp.rank, gp.rating, gp.role, gp.agents,
		       gp.play_style, gp.mechanics_score, gp.game_sense_score, gp.attributes
		FROM game_profiles gp
		JOIN games g ON g.id = gp.game_id
		WHERE gp.player_id = ANY($1)
		ORDER BY gp.player_id, gp.game_id
	`
	if err := r.db.SelectContext(ctx, &profileRows, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	for _, row := range profileRows {
		gp, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		if p, ok := byID[row.PlayerID]; ok {
			p.GameProfiles = append(p.GameProfiles, gp)
		}
	}

	return players, nil
}

func (r *playerRepository) ListIDs(ctx context.Context, onlyMissingEmbedding bool) ([]int, error) {
	query := `SELECT id FROM players ORDER BY id`
	if onlyMissingEmbedding {
		query = `
			SELECT p.id FROM players p
			WHERE NOT EXISTS (
				SELECT 1 FROM player_embeddings e WHERE e.player_id = p.id
			)
			ORDER BY p.id
		`
	}

	var ids []int
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *playerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM players`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
