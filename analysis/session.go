// Package analysis runs image+prompt analysis requests against an AI
// provider and post-processes the detections embedded in the response.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"landtalk/llm"
)

// Generation parameters used for every analysis request.
const (
	requestTemperature     = 0.4
	requestTopK            = 32
	requestTopP            = 1
	requestMaxOutputTokens = 4096
)

// Request is one user-initiated analysis action. It is immutable once
// passed to Analyze.
type Request struct {
	Image    []byte
	MimeType string
	Prompt   string
	Provider string // llm.ProviderGemini or llm.ProviderGPT
	Model    string
	APIKey   string
}

// Result is either a success carrying the response text and extracted
// detections, or a failure carrying a human-readable reason.
type Result struct {
	OK          bool
	Text        string // raw response text, detections JSON included
	CleanedText string // response text with the detections JSON removed
	Detections  []Detection
	Stats       DetectionStats
	Reason      string // failure description when OK is false
}

func failure(reason string) Result {
	return Result{Reason: reason}
}

// Session holds the conversation state for a sequence of analysis
// requests. Calls are sequential; a session is not safe for concurrent
// use.
type Session struct {
	systemPrompt        string
	confidenceThreshold float64
	baseURL             string // test override, empty in production
	history             []llm.Message
	model               string

	// newProvider is swappable in tests.
	newProvider func(llm.Config) (llm.Provider, error)
}

// NewSession creates a session with the given analysis rules and
// detection confidence threshold.
func NewSession(systemPrompt string, confidenceThreshold float64) *Session {
	return &Session{
		systemPrompt:        systemPrompt,
		confidenceThreshold: confidenceThreshold,
		newProvider:         llm.New,
	}
}

// SetConfidenceThreshold updates the detection filter for subsequent
// requests.
func (s *Session) SetConfidenceThreshold(threshold float64) {
	s.confidenceThreshold = threshold
}

// SetModel records the active model. When autoClear is set and the
// model actually changed, the conversation history is discarded.
func (s *Session) SetModel(model string, autoClear bool) {
	if autoClear && s.model != "" && s.model != model {
		s.ClearHistory()
	}
	s.model = model
}

// ClearHistory discards the conversation so the next request starts
// fresh.
func (s *Session) ClearHistory() {
	s.history = nil
}

// HistoryLen reports how many turns the session remembers.
func (s *Session) HistoryLen() int {
	return len(s.history)
}

// Analyze validates the request, makes one synchronous provider call
// and maps the outcome into a Result. Failed requests are never
// retried; the user re-triggers the action.
func (s *Session) Analyze(ctx context.Context, req Request) Result {
	if len(req.Image) == 0 {
		return failure("No captured image. Select an area first.")
	}
	if req.Prompt == "" {
		return failure("Please enter a message.")
	}
	if req.Provider != llm.ProviderGemini && req.Provider != llm.ProviderGPT {
		return failure(fmt.Sprintf("Unknown AI provider: %s", req.Provider))
	}
	if req.APIKey == "" {
		return failure(fmt.Sprintf("Please set your %s API key first.", providerDisplayName(req.Provider)))
	}

	provider, err := s.newProvider(llm.Config{
		Provider: req.Provider,
		APIKey:   req.APIKey,
		BaseURL:  s.baseURL,
		Model:    req.Model,
	})
	if err != nil {
		return failure(err.Error())
	}

	text, err := provider.GenerateVision(ctx, req.Prompt, req.Image, req.MimeType, llm.RequestConfig{
		SystemPrompt:    s.systemPrompt,
		Temperature:     requestTemperature,
		TopK:            requestTopK,
		TopP:            requestTopP,
		MaxOutputTokens: requestMaxOutputTokens,
		History:         s.history,
	})
	if err != nil {
		return failure(describeProviderError(req.Provider, err))
	}

	s.history = append(s.history,
		llm.Message{Role: "user", Content: req.Prompt},
		llm.Message{Role: "assistant", Content: text},
	)

	cleaned, value := ExtractJSON(text)
	detections, stats := ProcessDetections(value, s.confidenceThreshold)

	return Result{
		OK:          true,
		Text:        text,
		CleanedText: cleaned,
		Detections:  detections,
		Stats:       stats,
	}
}

func providerDisplayName(provider string) string {
	if provider == llm.ProviderGemini {
		return "Google Gemini"
	}
	return "OpenAI GPT"
}

// describeProviderError turns a provider error into the message shown
// in place of analysis results.
func describeProviderError(provider string, err error) string {
	name := ProviderName(provider)

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			return fmt.Sprintf("authentication error: %s rejected the API key (HTTP %d). Check the key in Options.", name, apiErr.StatusCode)
		}
		return fmt.Sprintf("%s API error %d: %s", name, apiErr.StatusCode, apiErr.Body)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("Request to %s timed out. Please try again.", name)
	}

	return fmt.Sprintf("Error calling %s API: %s", name, err)
}
