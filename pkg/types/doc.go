// Package types defines the shared domain model for the matching engine:
// survey responses, compatibility scores, ranked match results and the
// pipeline's sentinel errors.
//
// The matching fields of a SurveyResponse have a canonical order (see
// MatchingFieldNames). Embedding vectors, per-question weights and attribute
// breakdowns are all aligned to that order by index, so it must never be
// reordered without migrating cached embeddings.
package types
