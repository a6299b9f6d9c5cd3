// Package results writes per-run audit artifacts: the per-question
// similarity matrix and the ranked top-matches table, each to a uniquely
// named CSV so prior runs are never overwritten. These files are for
// debugging and audit only; the in-memory MatchResult remains the contract
// with callers, and a failed write never fails a match.
package results
