package types

import "errors"

// Domain errors shared across the matching pipeline
var (
	// ErrProviderUnavailable indicates the embedding service could not be
	// reached within the retry budget. Recovered by attribute-only scoring.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrPoolUnavailable indicates the candidate pool is missing or empty
	// and no built-in default set could be substituted.
	ErrPoolUnavailable = errors.New("candidate pool unavailable")

	// Result validation errors
	ErrMissingCandidateID = errors.New("candidate ID is required")
	ErrInvalidRank        = errors.New("rank must be >= 1")
	ErrInvalidScore       = errors.New("score must be between 0 and 1")
)
