package embedder

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Embedder using the Gemini API via the genai SDK
type GeminiProvider struct {
	client *genai.Client
	model  string
	retry  RetryConfig
}

// NewGeminiProvider creates a new Gemini embedder
func NewGeminiProvider(ctx context.Context, apiKey, model string, retry RetryConfig) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key not set", ErrNoProviderEnabled)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		retry:  retry.normalized(),
	}, nil
}

func (g *GeminiProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	resp, err := g.GenerateBatch(ctx, BatchEmbeddingRequest{
		Texts: []string{req.Text},
		Model: req.Model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", ErrProviderFailed)
	}

	return resp.Embeddings[0], nil
}

func (g *GeminiProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}

	if len(req.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: max %d texts allowed", ErrBatchTooLarge, MaxBatchSize)
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	contents := make([]*genai.Content, len(req.Texts))
	for i, text := range req.Texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := retryWithBackoff(ctx, g.retry, func() (*genai.EmbedContentResponse, error) {
		return g.client.Models.EmbedContent(ctx, model, contents, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrProviderFailed, g.retry.MaxRetries, err)
	}

	if result == nil || len(result.Embeddings) != len(req.Texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings", ErrProviderFailed, len(req.Texts))
	}

	embeddings := make([]*Embedding, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		embeddings[i] = &Embedding{
			Vector:    emb.Values,
			Dimension: len(emb.Values),
			Provider:  ProviderGemini,
			Model:     model,
			Hash:      ComputeHash(req.Texts[i]),
		}
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderGemini,
		Model:      model,
	}, nil
}

func (g *GeminiProvider) Dimension() int {
	return GeminiDimension
}

func (g *GeminiProvider) Provider() string {
	return ProviderGemini
}

func (g *GeminiProvider) Model() string {
	return g.model
}

func (g *GeminiProvider) Close() error {
	return nil
}
