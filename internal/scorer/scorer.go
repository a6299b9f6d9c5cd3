package scorer

import (
	"strings"

	"github.com/wandermatch/matchengine/pkg/types"
)

// numericFields are range answers compared by closeness rather than exact
// match.
var numericFields = map[string]bool{
	types.FieldBudget:       true,
	types.FieldStayDuration: true,
}

// Scorer computes weighted compatibility between a user and one candidate.
// It never returns an error: malformed or missing answers shrink the
// normalization denominator instead of failing the pair.
type Scorer struct {
	cfg Config
}

// New creates a scorer with the given tuning.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg.normalized()}
}

// Score blends per-question semantic similarity with attribute similarity.
// userVecs and candVecs are per-question vectors in canonical field order;
// either may be nil, in which case the semantic term is skipped entirely
// (the attribute term takes the full weight). The result is always in [0,1].
func (s *Scorer) Score(user *types.SurveyResponse, userVecs [][]float32, cand *types.SurveyResponse, candVecs [][]float32) types.CandidateScore {
	score := types.CandidateScore{
		CandidateID: cand.ID,
		Breakdown:   make(map[string]float64),
	}

	if field, ok := s.hardFiltered(user, cand); ok {
		score.Filtered = true
		score.FilterReason = types.FilterReasonIncompatible
		score.Breakdown[field] = 0
		return score
	}

	semantic, semanticOK := s.semanticSimilarity(user, userVecs, cand, candVecs)
	attribute, attributeOK := s.attributeSimilarity(user, cand, score.Breakdown)

	score.Semantic = semantic
	score.Attribute = attribute

	switch {
	case semanticOK && attributeOK:
		score.Score = s.cfg.Blend*semantic + (1-s.cfg.Blend)*attribute
	case semanticOK:
		score.Score = semantic
	case attributeOK:
		score.Score = attribute
	default:
		// Nothing comparable on either side.
		score.Score = 0
	}

	score.Score = clamp01(score.Score)
	return score
}

// hardFiltered reports whether any configured deal-breaker pair applies.
func (s *Scorer) hardFiltered(user, cand *types.SurveyResponse) (string, bool) {
	for _, f := range s.cfg.HardFilters {
		uv, ok := user.FieldValue(f.Field)
		if !ok {
			continue
		}
		cv, _ := cand.FieldValue(f.Field)
		if !types.HasValue(uv) || !types.HasValue(cv) {
			continue
		}
		if (strings.EqualFold(uv, f.ValueA) && strings.EqualFold(cv, f.ValueB)) ||
			(strings.EqualFold(uv, f.ValueB) && strings.EqualFold(cv, f.ValueA)) {
			return f.Field, true
		}
	}
	return "", false
}

// semanticSimilarity combines per-question cosine similarities, mapped to
// [0,1], under the configured weights. Questions missing an answer on
// either side, or missing vectors, drop out of the denominator.
func (s *Scorer) semanticSimilarity(user *types.SurveyResponse, userVecs [][]float32, cand *types.SurveyResponse, candVecs [][]float32) (float64, bool) {
	if userVecs == nil || candVecs == nil {
		return 0, false
	}

	names := types.MatchingFieldNames()
	userVals := user.MatchingValues()
	candVals := cand.MatchingValues()

	var sum, totalWeight float64
	for i, name := range names {
		w := s.cfg.weight(name)
		if w == 0 || i >= len(userVecs) || i >= len(candVecs) {
			continue
		}
		if !types.HasValue(userVals[i]) || !types.HasValue(candVals[i]) {
			continue
		}
		if len(userVecs[i]) == 0 || len(userVecs[i]) != len(candVecs[i]) {
			continue
		}
		sum += w * mappedCosine(userVecs[i], candVecs[i])
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0, false
	}
	return sum / totalWeight, true
}

// attributeSimilarity combines per-field categorical/numeric similarities
// under the configured weights, recording each contributing field in
// breakdown.
func (s *Scorer) attributeSimilarity(user, cand *types.SurveyResponse, breakdown map[string]float64) (float64, bool) {
	names := types.MatchingFieldNames()
	userVals := user.MatchingValues()
	candVals := cand.MatchingValues()

	var sum, totalWeight float64
	for i, name := range names {
		w := s.cfg.weight(name)
		if w == 0 {
			continue
		}
		uv, cv := userVals[i], candVals[i]
		if !types.HasValue(uv) || !types.HasValue(cv) {
			continue
		}

		sim, ok := fieldSimilarity(name, uv, cv)
		if !ok {
			continue
		}
		breakdown[name] = sim
		sum += w * sim
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0, false
	}
	return sum / totalWeight, true
}

// fieldSimilarity scores one attribute pair: numeric closeness for range
// fields, exact match for categorical ones. Unparseable numeric answers
// contribute nothing rather than erroring.
func fieldSimilarity(field, userValue, candValue string) (float64, bool) {
	if numericFields[field] {
		a, aok := parseAmount(userValue)
		b, bok := parseAmount(candValue)
		if !aok || !bok {
			return 0, false
		}
		return numericCloseness(a, b), true
	}

	if strings.EqualFold(strings.TrimSpace(userValue), strings.TrimSpace(candValue)) {
		return 1, true
	}
	return 0, true
}

// QuestionSimilarities returns the raw per-question similarity row for the
// audit matrix: mapped cosine when vectors are available, attribute
// similarity otherwise, zero for questions that cannot be compared.
func (s *Scorer) QuestionSimilarities(user *types.SurveyResponse, userVecs [][]float32, cand *types.SurveyResponse, candVecs [][]float32) []float64 {
	names := types.MatchingFieldNames()
	userVals := user.MatchingValues()
	candVals := cand.MatchingValues()

	row := make([]float64, len(names))
	for i, name := range names {
		if !types.HasValue(userVals[i]) || !types.HasValue(candVals[i]) {
			continue
		}
		if userVecs != nil && candVecs != nil && i < len(userVecs) && i < len(candVecs) &&
			len(userVecs[i]) > 0 && len(userVecs[i]) == len(candVecs[i]) {
			row[i] = mappedCosine(userVecs[i], candVecs[i])
			continue
		}
		if sim, ok := fieldSimilarity(name, userVals[i], candVals[i]); ok {
			row[i] = sim
		}
	}
	return row
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
