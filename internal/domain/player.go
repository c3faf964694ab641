package domain

import "time"

// SchoolType values mirror the onboarding options in the marketplace.
const (
	SchoolTypeHighSchool = "high_school"
	SchoolTypeCollege    = "college"
	SchoolTypeUniversity = "university"
)

type School struct {
	ID    int     `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Type  string  `json:"type" db:"type"`
	State *string `json:"state" db:"state"`
}

type Player struct {
	ID             int           `json:"id" db:"id"`
	Name           string        `json:"name" db:"name"`
	Username       string        `json:"username" db:"username"`
	ImageURL       *string       `json:"image_url" db:"image_url"`
	Location       *string       `json:"location" db:"location"`
	Bio            *string       `json:"bio" db:"bio"`
	ClassYear      *int          `json:"class_year" db:"class_year"`
	GPA            *float64      `json:"gpa" db:"gpa"`
	GraduationDate *time.Time    `json:"graduation_date" db:"graduation_date"`
	IntendedMajor  *string       `json:"intended_major" db:"intended_major"`
	MainGameID     *int          `json:"main_game_id" db:"main_game_id"`
	SchoolID       *int          `json:"school_id" db:"school_id"`
	School         *School       `json:"school,omitempty" db:"-"`
	GameProfiles   []GameProfile `json:"game_profiles" db:"-"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// GameProfile holds a player's per-game competitive data. Game-specific
// extras (agent pools, server regions, whatever a title needs) live in
// Attributes so new games don't require schema changes.
type GameProfile struct {
	ID             int               `json:"id" db:"id"`
	PlayerID       int               `json:"player_id" db:"player_id"`
	GameID         int               `json:"game_id" db:"game_id"`
	GameName       string            `json:"game_name" db:"game_name"`
	Username       *string           `json:"username" db:"username"`
	Rank           *string           `json:"rank" db:"rank"`
	Rating         *float64          `json:"rating" db:"rating"`
	Role           *string           `json:"role" db:"role"`
	Agents         []string          `json:"agents" db:"agents"`
	PlayStyle      *string           `json:"play_style" db:"play_style"`
	MechanicsScore *float64          `json:"mechanics_score" db:"mechanics_score"`
	GameSenseScore *float64          `json:"game_sense_score" db:"game_sense_score"`
	Attributes     map[string]string `json:"attributes" db:"-"`
}

// MainGameProfile returns the profile for the player's main game, if any.
func (p *Player) MainGameProfile() (*GameProfile, bool) {
	if p.MainGameID == nil {
		return nil, false
	}
	for i := range p.GameProfiles {
		if p.GameProfiles[i].GameID == *p.MainGameID {
			return &p.GameProfiles[i], true
		}
	}
	return nil, false
}

// PlayerEmbedding is a derived cache of the player's profile text. The
// player row is the source of truth; at most one embedding exists per
// player and writes overwrite whatever was there before.
type PlayerEmbedding struct {
	PlayerID int       `json:"player_id" db:"player_id"`
	Vector   []float64 `json:"-" db:"vector"`
	Model    string    `json:"model" db:"model"`
	// SourceTextHash fingerprints the profile text the vector was built
	// from, for debugging staleness.
	SourceTextHash string    `json:"source_text_hash" db:"source_text_hash"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
