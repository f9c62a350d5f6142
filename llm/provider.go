// Package llm implements the multimodal AI providers (Google Gemini and
// OpenAI GPT) behind the analysis session.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Providers recognized by the factory.
const (
	ProviderGemini = "gemini"
	ProviderGPT    = "gpt"
)

// Message is a single turn of conversation history.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// RequestConfig carries the per-request generation parameters.
type RequestConfig struct {
	SystemPrompt    string
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int
	History         []Message
}

// Provider is a multimodal AI backend. Implementations make exactly one
// HTTP round trip per call and never retry.
type Provider interface {
	ID() string

	// GenerateVision sends the prompt, optional image and conversation
	// history in one request and returns the response text.
	GenerateVision(ctx context.Context, prompt string, imageData []byte, mimeType string, cfg RequestConfig) (string, error)
}

// APIError is a non-success HTTP response from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsAuth reports whether the error indicates a rejected API key.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// httpClient is shared by both providers. The timeout matches the
// original plugin's API timeout.
var httpClient = &http.Client{Timeout: 120 * time.Second}
