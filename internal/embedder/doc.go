// Package embedder generates vector embeddings for survey answers using
// pluggable providers.
//
// Each matching field of a survey response is embedded separately, so one
// response maps to a list of vectors in canonical field order (see
// EmbedResponse). Providers batch those per-question texts into a single
// API call.
//
// # Provider Selection
//
// The factory picks a provider from configuration or environment:
//
//  1. If MATCHENGINE_EMBEDDING_PROVIDER is set → use the named provider
//  2. Else if OPENAI_API_KEY is set → OpenAI (text-embedding-ada-002)
//  3. Else if GEMINI_API_KEY is set → Gemini (text-embedding-004)
//  4. Else → local deterministic hash vectors (offline mode)
//
// # Failure Semantics
//
// API providers bound each call with a timeout and a retry budget (one
// retry on transient failure by default). When the budget is exhausted the
// call fails with ErrProviderFailed; callers treat that as provider
// unavailability and fall back to attribute-only scoring rather than
// aborting the match.
//
// Providers hold no state between calls. Caching of pool embeddings lives
// in the cache package, keyed by pool fingerprint, not here.
package embedder
