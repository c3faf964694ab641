package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func similarityPtr(v float64) *float64 { return &v }

func TestNormalizeAppliesDefaults(t *testing.T) {
	f := SearchFilters{Query: "anything"}
	f.Normalize()

	assert.Equal(t, DefaultSearchLimit, f.Limit)
	require.NotNil(t, f.MinSimilarity)
	assert.Equal(t, float64(DefaultMinSimilarity), *f.MinSimilarity)
}

func TestNormalizeClampsBounds(t *testing.T) {
	f := SearchFilters{Query: "anything", Limit: 5000, MinSimilarity: similarityPtr(3)}
	f.Normalize()

	assert.Equal(t, MaxSearchLimit, f.Limit)
	assert.Equal(t, 1.0, *f.MinSimilarity)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	f := SearchFilters{Query: "anything", Limit: 25, MinSimilarity: similarityPtr(0.75)}
	f.Normalize()

	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 0.75, *f.MinSimilarity)
}

func TestNormalizeKeepsExplicitZeroFloor(t *testing.T) {
	// 0 means "no floor", which is different from leaving the field unset.
	f := SearchFilters{Query: "anything", MinSimilarity: similarityPtr(0)}
	f.Normalize()

	require.NotNil(t, f.MinSimilarity)
	assert.Equal(t, 0.0, *f.MinSimilarity)
}

func TestValidateRequiresQuery(t *testing.T) {
	f := SearchFilters{}
	assert.ErrorIs(t, f.Validate(), ErrInvalidFilters)
}

func TestValidateRejectsInvertedGPARange(t *testing.T) {
	minGPA, maxGPA := 3.9, 2.0
	f := SearchFilters{Query: "q", MinGPA: &minGPA, MaxGPA: &maxGPA}
	assert.ErrorIs(t, f.Validate(), ErrInvalidFilters)

	f.MaxGPA = &minGPA
	assert.NoError(t, f.Validate())
}
