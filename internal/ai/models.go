package ai

import "errors"

var (
	// ErrNotConfigured is returned before any network attempt when the provider credential is absent.
	ErrNotConfigured = errors.New("completion provider not configured")

	// ErrServiceUnavailable wraps every runtime failure of the upstream call.
	ErrServiceUnavailable = errors.New("completion service unavailable")
)

// CompletionRequest is a persona/prompt pair.
type CompletionRequest struct {
	System string
	User   string
}

// ProviderInfo carries what callers need to explain a missing configuration.
type ProviderInfo struct {
	// Name is the human readable vendor name, e.g. "OpenAI".
	Name string

	// CredentialEnv is the environment variable holding the API key.
	CredentialEnv string

	// ConsoleURL is where an operator can obtain a key.
	ConsoleURL string

	Configured bool
}

// Options tunes generation. Zero values fall back to the provider defaults.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}
