package embeddings

import (
	"strings"
	"testing"
	"time"

	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func samplePlayer() *domain.Player {
	grad := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Player{
		ID:             1,
		Name:           "Jane Doe",
		Username:       "janedoe",
		Location:       strPtr("Austin, TX"),
		Bio:            strPtr("Shot-calling entry fragger with tournament experience"),
		ClassYear:      intPtr(2026),
		GPA:            f64Ptr(3.85),
		GraduationDate: &grad,
		IntendedMajor:  strPtr("Computer Science"),
		MainGameID:     intPtr(10),
		School: &domain.School{
			ID:    5,
			Name:  "Westlake High School",
			Type:  domain.SchoolTypeHighSchool,
			State: strPtr("TX"),
		},
		GameProfiles: []domain.GameProfile{
			{
				GameID:         10,
				GameName:       "Valorant",
				Rank:           strPtr("Immortal 2"),
				Role:           strPtr("Duelist"),
				Agents:         []string{"Jett", "Raze"},
				PlayStyle:      strPtr("aggressive"),
				MechanicsScore: f64Ptr(92),
				GameSenseScore: f64Ptr(85),
				Attributes: map[string]string{
					"region":       "NA",
					"peak_rank":    "Radiant",
					"comms_rating": "strong",
				},
			},
		},
	}
}

func TestBuildProfileTextDeterministic(t *testing.T) {
	p := samplePlayer()
	first := BuildProfileText(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildProfileText(p))
	}
}

func TestBuildProfileTextContent(t *testing.T) {
	text := BuildProfileText(samplePlayer())

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Class of 2026")
	assert.Contains(t, text, "GPA 3.85")
	assert.Contains(t, text, "Westlake High School")
	assert.Contains(t, text, "high school")
	assert.Contains(t, text, "Valorant (main game) profile")
	assert.Contains(t, text, "role Duelist")
	assert.Contains(t, text, "Jett, Raze")
	// Human-readable prose, not serialized field names.
	assert.NotContains(t, text, "class_year")
	assert.NotContains(t, text, "{")
}

func TestBuildProfileTextGenericAttributes(t *testing.T) {
	text := BuildProfileText(samplePlayer())

	// Attributes appear with underscores spelled out, in key order.
	assert.Contains(t, text, "comms rating strong")
	assert.Contains(t, text, "peak rank Radiant")
	assert.Contains(t, text, "region NA")
	require.Less(t, strings.Index(text, "comms rating"), strings.Index(text, "peak rank"))
	require.Less(t, strings.Index(text, "peak rank"), strings.Index(text, "region NA"))
}

func TestBuildProfileTextSparseProfile(t *testing.T) {
	p := &domain.Player{ID: 2, Name: "Sam Minimal", Username: "samm"}
	text := BuildProfileText(p)

	assert.Equal(t, "Player: Sam Minimal (samm).", text)
}
