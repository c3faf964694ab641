package domain

import "errors"

var (
	// ErrAINotConfigured means the embedding/generative backend has no API
	// key. Surfaced to callers as "feature unavailable", never a 500.
	ErrAINotConfigured = errors.New("ai search is not configured")

	// ErrEmbeddingBackend wraps failures calling the embedding backend.
	ErrEmbeddingBackend = errors.New("embedding backend error")

	// ErrAnalysisGeneration means the generative backend returned output
	// that could not be parsed into an analysis. A partial analysis is
	// never returned.
	ErrAnalysisGeneration = errors.New("analysis generation failed")

	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidFilters = errors.New("invalid search filters")
)
