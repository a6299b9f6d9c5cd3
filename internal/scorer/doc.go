// Package scorer computes compatibility between a user and candidate
// travel partners.
//
// A pair's score blends two signals under a configurable ratio:
//
//   - semantic: per-question cosine similarity between the pair's answer
//     embeddings, mapped from [-1,1] to [0,1] and weighted per question
//   - attribute: exact match for categorical answers, numeric closeness for
//     range answers (budget, stay duration), under the same weights
//
// Hard filters short-circuit a pair to zero before any similarity runs.
// Missing or unparseable answers drop out of the weight normalization
// instead of failing the pair, so scoring never errors on malformed input.
package scorer
