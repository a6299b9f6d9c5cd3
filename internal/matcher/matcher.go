package matcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wandermatch/matchengine/internal/cache"
	"github.com/wandermatch/matchengine/internal/embedder"
	"github.com/wandermatch/matchengine/internal/pool"
	"github.com/wandermatch/matchengine/internal/results"
	"github.com/wandermatch/matchengine/internal/scorer"
	"github.com/wandermatch/matchengine/pkg/types"
)

const (
	// DefaultTopK is the number of matches returned when the caller does
	// not pick one.
	DefaultTopK = 3

	// defaultEmbedWorkers bounds concurrent embedding calls while
	// recomputing the pool cache.
	defaultEmbedWorkers = 4
)

// Warning notes attached to MatchResult metadata on degraded runs.
const (
	WarnProviderFallback = "embedding provider unavailable; matched on attribute overlap only"
	WarnCacheRebuilt     = "embedding cache was invalid; recomputed for the whole pool"
	WarnDefaultPool      = "candidate pool unavailable; matched against the built-in default partners"
)

// Config tunes the matcher.
type Config struct {
	TopK         int `mapstructure:"top-k"`
	EmbedWorkers int `mapstructure:"embed-workers"`
}

// Matcher runs the matching pipeline: resolve pool embeddings through the
// cache, embed the querying user, score every candidate, rank and persist.
type Matcher struct {
	embedder embedder.Embedder
	store    cache.Store
	scorer   *scorer.Scorer
	writer   *results.Writer
	logger   *zap.Logger

	topK         int
	embedWorkers int
}

// New creates a matcher. writer may be nil to skip audit output.
func New(e embedder.Embedder, store cache.Store, s *scorer.Scorer, w *results.Writer, logger *zap.Logger, cfg Config) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	workers := cfg.EmbedWorkers
	if workers <= 0 {
		workers = defaultEmbedWorkers
	}
	return &Matcher{
		embedder:     e,
		store:        store,
		scorer:       s,
		writer:       w,
		logger:       logger,
		topK:         topK,
		embedWorkers: workers,
	}
}

// LoadPool loads the candidate pool from path, substituting the built-in
// default set when the file is missing, unreadable or empty. The returned
// warning is non-empty when the default set was used. Only an empty default
// set yields ErrPoolUnavailable.
func LoadPool(path string, logger *zap.Logger) (*pool.Pool, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p, err := pool.LoadFile(path)
	if err == nil && p.Len() > 0 {
		logger.Info("candidate pool loaded", zap.String("path", path), zap.Int("candidates", p.Len()))
		return p, "", nil
	}
	if err != nil {
		logger.Warn("loading candidate pool failed", zap.String("path", path), zap.Error(err))
	} else {
		logger.Warn("candidate pool is empty", zap.String("path", path))
	}

	fallback := pool.DefaultPool()
	if fallback.Len() == 0 {
		return nil, "", types.ErrPoolUnavailable
	}
	logger.Info("using built-in default partners", zap.Int("candidates", fallback.Len()))
	return fallback, WarnDefaultPool, nil
}

// FindMatches ranks the pool against the user and returns the top k
// candidates. k <= 0 means the configured default. The result is
// deterministic for a given pool snapshot, user input and provider state,
// and non-empty whenever the pool holds anyone besides the user.
func (m *Matcher) FindMatches(ctx context.Context, user *types.SurveyResponse, p *pool.Pool, k int) (*types.MatchResult, error) {
	if p == nil || p.Len() == 0 {
		return nil, types.ErrPoolUnavailable
	}
	if k <= 0 {
		k = m.topK
	}

	result := &types.MatchResult{
		UserID:      user.ID,
		GeneratedAt: time.Now(),
	}

	poolVecs, warnings := m.resolvePoolVectors(ctx, p)
	result.Warnings = append(result.Warnings, warnings...)

	var userVecs [][]float32
	if poolVecs != nil {
		// The user's survey is single-use and never cached.
		vecs, err := embedder.EmbedResponse(ctx, m.embedder, user)
		if err != nil {
			m.logger.Warn("embedding user failed, falling back to attribute scoring", zap.Error(err))
			poolVecs = nil
		} else {
			userVecs = vecs
		}
	}

	result.SemanticUsed = poolVecs != nil && userVecs != nil
	if !result.SemanticUsed {
		poolVecs, userVecs = nil, nil
		if !containsWarning(result.Warnings, WarnProviderFallback) {
			result.Warnings = append(result.Warnings, WarnProviderFallback)
		}
	}

	scores, matrix := m.scoreAll(user, userVecs, p, poolVecs)

	// Stable sort keeps pool insertion order for equal scores.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if k > len(scores) {
		k = len(scores)
	}
	result.Matches = scores[:k]
	for i := range result.Matches {
		result.Matches[i].Rank = i + 1
	}

	if m.writer != nil {
		m.writer.WriteSimilarityMatrix(p, matrix)
		m.writer.WriteTopMatches(p, result)
	}

	m.logger.Info("matching complete",
		zap.String("user", user.ID),
		zap.Int("pool_size", p.Len()),
		zap.Int("matches", len(result.Matches)),
		zap.Bool("semantic", result.SemanticUsed))

	return result, nil
}

// resolvePoolVectors returns per-candidate question vectors, from the cache
// when its fingerprint and dimensions still match the pool, recomputed and
// stored otherwise. A nil map means the provider is unavailable and scoring
// must fall back to attributes.
func (m *Matcher) resolvePoolVectors(ctx context.Context, p *pool.Pool) (map[string][][]float32, []string) {
	fingerprint := p.Fingerprint()
	questions := len(types.MatchingFieldNames())
	dimension := m.embedder.Dimension()

	if m.store != nil {
		snap, err := m.store.Load(ctx)
		switch {
		case err == nil && snap.Valid(fingerprint, m.embedder.Provider(), m.embedder.Model(), dimension, questions) && coversPool(snap, p):
			m.logger.Debug("embedding cache valid", zap.String("fingerprint", shortHash(fingerprint)))
			return snap.Vectors, nil
		case err != nil && !errors.Is(err, cache.ErrNotFound):
			m.logger.Warn("embedding cache unreadable, recomputing", zap.Error(err))
		case err == nil:
			m.logger.Info("embedding cache stale, recomputing",
				zap.String("cached", shortHash(snap.Fingerprint)),
				zap.String("current", shortHash(fingerprint)))
		}
	}

	vectors, err := m.embedPool(ctx, p)
	if err != nil {
		m.logger.Warn("embedding pool failed", zap.Error(err))
		return nil, []string{WarnProviderFallback}
	}

	warnings := []string{WarnCacheRebuilt}
	if m.store != nil {
		snap := &cache.Snapshot{
			Fingerprint: fingerprint,
			Provider:    m.embedder.Provider(),
			Model:       m.embedder.Model(),
			Dimension:   dimension,
			Questions:   questions,
			Vectors:     vectors,
		}
		if err := m.store.Save(ctx, snap); err != nil {
			// Losing the cache only costs the next run a recompute.
			m.logger.Warn("storing embedding cache failed", zap.Error(err))
		} else {
			m.logger.Info("embedding cache stored",
				zap.Int("candidates", len(vectors)),
				zap.String("fingerprint", shortHash(fingerprint)))
		}
	}
	return vectors, warnings
}

// embedPool embeds every candidate's questions, bounding provider
// concurrency. Vector order within a candidate follows canonical field
// order; the map is keyed by candidate ID.
func (m *Matcher) embedPool(ctx context.Context, p *pool.Pool) (map[string][][]float32, error) {
	perCandidate := make([][][]float32, p.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.embedWorkers)
	for i := range p.Candidates {
		g.Go(func() error {
			vecs, err := embedder.EmbedResponse(gctx, m.embedder, &p.Candidates[i])
			if err != nil {
				return fmt.Errorf("candidate %s: %w", p.Candidates[i].ID, err)
			}
			perCandidate[i] = vecs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vectors := make(map[string][][]float32, p.Len())
	for i := range p.Candidates {
		vectors[p.Candidates[i].ID] = perCandidate[i]
	}
	return vectors, nil
}

// scoreAll scores the user against every pool candidate except themselves,
// collecting the audit matrix row for each pool member as it goes.
func (m *Matcher) scoreAll(user *types.SurveyResponse, userVecs [][]float32, p *pool.Pool, poolVecs map[string][][]float32) ([]types.CandidateScore, [][]float64) {
	scores := make([]types.CandidateScore, 0, p.Len())
	matrix := make([][]float64, 0, p.Len())

	for i := range p.Candidates {
		cand := &p.Candidates[i]
		var candVecs [][]float32
		if poolVecs != nil {
			candVecs = poolVecs[cand.ID]
		}

		matrix = append(matrix, m.scorer.QuestionSimilarities(user, userVecs, cand, candVecs))

		// A candidate sharing the user's ID is the user; exclude rather
		// than let a perfect self-match top the ranking.
		if cand.ID == user.ID {
			continue
		}
		scores = append(scores, m.scorer.Score(user, userVecs, cand, candVecs))
	}
	return scores, matrix
}

// coversPool reports whether a snapshot has vectors for every candidate.
func coversPool(snap *cache.Snapshot, p *pool.Pool) bool {
	for i := range p.Candidates {
		if _, ok := snap.Vectors[p.Candidates[i].ID]; !ok {
			return false
		}
	}
	return true
}

// shortHash abbreviates a fingerprint for logging. Persisted snapshots can
// carry arbitrary fingerprint strings, so never assume a minimum length.
func shortHash(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

func containsWarning(ws []string, w string) bool {
	for _, v := range ws {
		if v == w {
			return true
		}
	}
	return false
}
