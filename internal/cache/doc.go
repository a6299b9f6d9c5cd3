// Package cache persists pool embeddings between matching runs.
//
// A Snapshot holds one vector per matching question per candidate plus the
// pool fingerprint it was computed from. The cache is all-or-nothing: a
// snapshot is valid only while its fingerprint equals the current pool's
// fingerprint and its provider, model and dimensions match the active
// embedder; any mismatch
// discards the whole snapshot and forces a full recompute. There is no
// per-row patching, trading recompute cost for freedom from drift between
// cached and live vectors.
//
// Two persistent backends implement Store: a JSON file with a fingerprint
// sidecar (atomic temp-then-rename writes) and a SQLite database
// (transactional replace, pure-Go or cgo driver via build tags).
// MemoryStore adds an LRU layer for repeat requests in one process.
//
// Concurrent runs need no locking: Save is atomic, Load re-validates by
// fingerprint, and redundant recomputes are idempotent for a given pool.
package cache
