package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	opts   Options
}

// NewGeminiProvider initializes a new Gemini client.
// With an empty apiKey no client is created and the provider reports itself unconfigured.
func NewGeminiProvider(ctx context.Context, apiKey string, opts Options) (*GeminiProvider, error) {
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &GeminiProvider{opts: opts}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, opts: opts}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

func (p *GeminiProvider) Info() ProviderInfo {
	return ProviderInfo{
		Name:          "Gemini",
		CredentialEnv: "GEMINI_API_KEY",
		ConsoleURL:    "https://aistudio.google.com/apikey",
		Configured:    p.client != nil,
	}
}

// Complete sends the persona as system instruction and the prompt as user content.
func (p *GeminiProvider) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	if p.client == nil {
		return "", ErrNotConfigured
	}

	// A fresh model handle per call: SystemInstruction is per request and the
	// handle is not safe to mutate concurrently.
	model := p.client.GenerativeModel(p.opts.Model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(in.System))
	model.SetTemperature(float32(p.opts.Temperature))
	model.SetMaxOutputTokens(int32(p.opts.MaxTokens))
	model.SetCandidateCount(1)

	resp, err := model.GenerateContent(ctx, genai.Text(in.User))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: generate content: %w", ErrServiceUnavailable, err)
	}
	return candidateText(resp), nil
}

// candidateText joins the text parts of the first candidate. Non-text parts are skipped.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String()
}
