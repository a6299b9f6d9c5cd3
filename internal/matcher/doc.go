// Package matcher orchestrates a matching request end to end:
//
//	load pool -> resolve cached embeddings -> embed user -> score -> rank -> persist
//
// Each run is synchronous and deterministic for a given pool snapshot, user
// input and provider state. The pipeline degrades rather than fails: an
// unreachable embedding provider drops the semantic term, a stale or
// corrupt cache forces a full recompute, and a missing pool file falls back
// to the built-in default partners. Only a pool with nobody to rank yields
// an error.
package matcher
