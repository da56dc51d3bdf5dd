package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4"
	defaultTemperature   = 0.7
	defaultMaxTokens     = 3000
)

// OpenAIProvider implements LLMProvider against the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	opts    Options
	client  *http.Client
}

// NewOpenAIProvider returns a provider for the given key. An empty key is allowed:
// the provider then reports itself unconfigured and Complete fails with ErrNotConfigured.
func NewOpenAIProvider(apiKey, baseURL string, opts Options) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return &OpenAIProvider{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		// Deadlines come from the caller's context.
		client: &http.Client{},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Info() ProviderInfo {
	return ProviderInfo{
		Name:          "OpenAI",
		CredentialEnv: "OPENAI_API_KEY",
		ConsoleURL:    "https://platform.openai.com",
		Configured:    p.apiKey != "",
	}
}

// Complete posts the persona and prompt as system and user messages.
func (p *OpenAIProvider) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	if p.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: p.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.User},
		},
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: do request: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: openai: read response: %w", ErrServiceUnavailable, err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("%w: openai: unmarshal response (status %d): %w", ErrServiceUnavailable, resp.StatusCode, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("%w: openai: api error (status %d): %s", ErrServiceUnavailable, resp.StatusCode, cr.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: openai: unexpected status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == nil {
		return "", nil
	}
	return *cr.Choices[0].Message.Content, nil
}
