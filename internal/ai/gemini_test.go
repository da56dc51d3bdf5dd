package ai

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestCandidateText(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			"parts joined in order",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{
					genai.Text("1. Journey Summary\n"),
					genai.Text("Overnight run."),
				}},
			}}},
			"1. Journey Summary\nOvernight run.",
		},
		{
			"non-text parts skipped",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{
					genai.Blob{MIMEType: "image/png", Data: []byte{0x89}},
					genai.Text("only text"),
				}},
			}}},
			"only text",
		},
		{
			"first candidate only",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			"first",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := candidateText(tc.resp); got != tc.want {
				t.Fatalf("candidateText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGeminiDefaults(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), "  ", Options{})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	defer p.Close()
	if p.opts.Model != defaultGeminiModel || p.opts.Temperature != defaultTemperature || p.opts.MaxTokens != defaultMaxTokens {
		t.Fatalf("unexpected defaults %+v", p.opts)
	}
	if p.Info().Configured {
		t.Fatal("blank key must leave the provider unconfigured")
	}
}

// TestGeminiCompleteLive calls the real API; it skips when RAILMATE_TEST_GEMINI_KEY is not set.
func TestGeminiCompleteLive(t *testing.T) {
	key := os.Getenv("RAILMATE_TEST_GEMINI_KEY")
	if key == "" {
		t.Skip("RAILMATE_TEST_GEMINI_KEY not set")
	}
	ctx := context.Background()
	p, err := NewGeminiProvider(ctx, key, Options{MaxTokens: 64})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	defer p.Close()

	text, err := p.Complete(ctx, CompletionRequest{
		System: "Reply with exactly the word READY.",
		User:   "Are you ready?",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !strings.Contains(strings.ToUpper(text), "READY") {
		t.Fatalf("unexpected reply %q", text)
	}
}
