// Package pool loads the candidate pool the matching engine ranks against.
//
// The pool is a flat CSV (rows = candidates, columns = survey attributes
// plus candidate_id), read-only to the engine. Fingerprint hashes the full
// serialized content so the embedding cache can detect any change; a single
// edited cell invalidates the whole cache.
//
// When the pool file cannot be loaded, DefaultPool supplies a small built-in
// candidate set so matching always has something to rank.
package pool
