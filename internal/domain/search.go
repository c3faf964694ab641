package domain

const (
	DefaultSearchLimit   = 50
	MaxSearchLimit       = 100
	DefaultMinSimilarity = 0.3
)

// SearchFilters is the coach-supplied search input. All structured facets
// are optional and combine with AND semantics; Query is required.
// MinSimilarity is a pointer so an explicit 0 (no floor) stays distinct
// from the field being absent.
type SearchFilters struct {
	Query         string   `json:"query"`
	GameID        *int     `json:"game_id"`
	ClassYears    []int    `json:"class_years"`
	SchoolTypes   []string `json:"school_types"`
	Locations     []string `json:"locations"`
	MinGPA        *float64 `json:"min_gpa"`
	MaxGPA        *float64 `json:"max_gpa"`
	Roles         []string `json:"roles"`
	Limit         int      `json:"limit"`
	MinSimilarity *float64 `json:"min_similarity"`
}

// Normalize applies defaults and clamps bounds. It does not validate;
// call Validate first.
func (f *SearchFilters) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}
	if f.Limit > MaxSearchLimit {
		f.Limit = MaxSearchLimit
	}
	if f.MinSimilarity == nil {
		v := DefaultMinSimilarity
		f.MinSimilarity = &v
	}
	if *f.MinSimilarity < 0 {
		*f.MinSimilarity = 0
	}
	if *f.MinSimilarity > 1 {
		*f.MinSimilarity = 1
	}
}

func (f *SearchFilters) Validate() error {
	if f.Query == "" {
		return ErrInvalidFilters
	}
	if f.MinGPA != nil && f.MaxGPA != nil && *f.MinGPA > *f.MaxGPA {
		return ErrInvalidFilters
	}
	return nil
}

// RankedPlayer is the raw similarity-engine output before hydration.
type RankedPlayer struct {
	PlayerID   int
	Similarity float64
}

type TalentSearchResult struct {
	Player      *Player `json:"player"`
	Similarity  float64 `json:"similarity"`
	IsFavorited bool    `json:"is_favorited"`
}

type SearchResponse struct {
	Results    []TalentSearchResult `json:"results"`
	TotalCount int                  `json:"total_count"`
	Query      string               `json:"query"`
}

// PlayerAnalysis is generated fresh per request and never persisted.
// Pros and Cons are always non-nil.
type PlayerAnalysis struct {
	Overview string   `json:"overview"`
	Pros     []string `json:"pros"`
	Cons     []string `json:"cons"`
}

// Availability reports whether AI talent search can be used, with a
// user-facing message either way.
type Availability struct {
	IsAvailable bool   `json:"is_available"`
	Message     string `json:"message"`
}

// CoachContext is what the analysis prompt knows about the requesting
// coach's program.
type CoachContext struct {
	SchoolName string   `json:"school_name"`
	SchoolType string   `json:"school_type"`
	Games      []string `json:"games"`
}
