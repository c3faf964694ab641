// Package ai defines the boundary to the embedding and generative-text
// backends. Usecases depend on these interfaces, never on a concrete
// provider, so the unconfigured state is just another implementation.
package ai

import (
	"context"

	"github.com/scoutlane/talent-backend/internal/domain"
)

// Embedder turns text into a fixed-length vector. The same embedder is
// used for player profiles and for search queries so both live in the
// same vector space.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
	Configured() bool
}

// Generator produces free text from a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Disabled is the stand-in wired when no API key is present. Every call
// fails with the configuration sentinel.
type Disabled struct{}

func NewDisabled() *Disabled { return &Disabled{} }

func (*Disabled) EmbedText(context.Context, string) ([]float64, error) {
	return nil, domain.ErrAINotConfigured
}

func (*Disabled) GenerateText(context.Context, string) (string, error) {
	return "", domain.ErrAINotConfigured
}

func (*Disabled) Configured() bool { return false }
