package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with text completion models.
// Implementations perform at most one upstream call per Complete and never retry.
type LLMProvider interface {
	// Complete sends the system persona and user prompt as a single non-streaming
	// request and returns the first choice's text. An upstream reply without
	// content yields "" and a nil error.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Info describes the provider and whether its credential is present.
	Info() ProviderInfo
}
