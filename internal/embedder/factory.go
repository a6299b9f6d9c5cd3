package embedder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds embedder configuration
type Config struct {
	Provider   string        `mapstructure:"provider"`
	APIKey     string        `mapstructure:"api-key"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
}

// Environment variables consulted by NewFromEnv
const (
	EnvProvider     = "MATCHENGINE_EMBEDDING_PROVIDER"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// New creates an embedder with explicit configuration
func New(ctx context.Context, cfg Config) (Embedder, error) {
	retry := DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.Timeout, retry)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, retry)
	case ProviderLocal:
		return NewLocalProvider()
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, cfg.Provider)
	}
}

// NewFromEnv creates an embedder based on environment variables.
// Priority:
//  1. MATCHENGINE_EMBEDDING_PROVIDER (openai, gemini, local)
//  2. Check for API keys: OPENAI_API_KEY, GEMINI_API_KEY
//  3. Default to local if no API keys found
func NewFromEnv(ctx context.Context) (Embedder, error) {
	provider := os.Getenv(EnvProvider)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)
	geminiKey := os.Getenv(EnvGeminiAPIKey)

	if provider != "" {
		cfg := Config{Provider: provider}
		switch strings.ToLower(provider) {
		case ProviderOpenAI:
			cfg.APIKey = openaiKey
		case ProviderGemini:
			cfg.APIKey = geminiKey
		}
		return New(ctx, cfg)
	}

	if openaiKey != "" {
		return New(ctx, Config{Provider: ProviderOpenAI, APIKey: openaiKey})
	}
	if geminiKey != "" {
		return New(ctx, Config{Provider: ProviderGemini, APIKey: geminiKey})
	}

	return NewLocalProvider()
}

// DetectProvider returns the provider that would be used based on current
// environment
func DetectProvider() string {
	if provider := os.Getenv(EnvProvider); provider != "" {
		return strings.ToLower(provider)
	}

	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}
	if os.Getenv(EnvGeminiAPIKey) != "" {
		return ProviderGemini
	}

	return ProviderLocal
}
