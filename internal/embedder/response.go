package embedder

import (
	"context"
	"fmt"

	"github.com/wandermatch/matchengine/pkg/types"
)

// EmbedResponse embeds every matching field of a survey response in one
// batch call: one vector per question, in canonical field order. The
// returned slice is parallel to types.MatchingFieldNames. Provider failures
// come back wrapped as types.ErrProviderUnavailable, the signal callers use
// to fall back to attribute-only scoring.
func EmbedResponse(ctx context.Context, e Embedder, resp *types.SurveyResponse) ([][]float32, error) {
	texts := resp.CanonicalTexts()

	batch, err := e.GenerateBatch(ctx, BatchEmbeddingRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrProviderUnavailable, err)
	}
	if len(batch.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d questions", types.ErrProviderUnavailable, len(batch.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(batch.Embeddings))
	for i, emb := range batch.Embeddings {
		vectors[i] = emb.Vector
	}
	return vectors, nil
}
