package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ProviderConfig selects and configures one completion backend.
type ProviderConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	Temperature   float64
	MaxTokens     int
}

// NewProvider builds the configured provider. The returned close func is never nil.
func NewProvider(ctx context.Context, cfg ProviderConfig) (LLMProvider, func(), error) {
	opts := Options{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		opts.Model = cfg.OpenAIModel
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, opts), func() {}, nil
	case ProviderGemini:
		opts.Model = cfg.GeminiModel
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, opts)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
