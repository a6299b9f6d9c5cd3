package types

import "time"

// FilterReasonIncompatible marks a candidate disqualified by a hard filter.
const FilterReasonIncompatible = "filtered"

// CandidateScore is the compatibility record for one (user, candidate) pair:
// the blended score in [0,1] plus the components that produced it.
type CandidateScore struct {
	CandidateID string
	Rank        int // Position in the ranked result set (1-based)

	Score     float64 // Blend of semantic and attribute similarity
	Semantic  float64 // Weighted per-question cosine similarity, mapped to [0,1]
	Attribute float64 // Weighted categorical/numeric attribute similarity

	// Breakdown maps matching field name to that attribute's similarity
	// contribution. Missing attributes are absent from the map.
	Breakdown map[string]float64

	Filtered     bool
	FilterReason string
}

// MatchResult is the ranked top-K outcome of one matching invocation.
// It is a read-only artifact: rendered for the caller and persisted for
// audit, never used as a source of truth.
type MatchResult struct {
	UserID      string
	GeneratedAt time.Time
	Matches     []CandidateScore

	// SemanticUsed is false when the embedding provider was unavailable and
	// scoring fell back to attribute overlap only.
	SemanticUsed bool

	// Warnings carries degraded-path notes (provider fallback, cache
	// rebuild, persistence failures). Never fatal.
	Warnings []string
}

// Validate checks that a candidate score is well-formed.
func (c *CandidateScore) Validate() error {
	if c.CandidateID == "" {
		return ErrMissingCandidateID
	}
	if c.Rank < 1 {
		return ErrInvalidRank
	}
	if c.Score < 0 || c.Score > 1 {
		return ErrInvalidScore
	}
	return nil
}

// Validate checks every ranked entry of a match result.
func (m *MatchResult) Validate() error {
	for i := range m.Matches {
		if err := m.Matches[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
