package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiGenerateVisionSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"A river crossing "},{"text":"with an old bridge."}]}}]}`)
	}))
	defer server.Close()

	provider := &GeminiProvider{APIKey: "test-key", BaseURL: server.URL, Model: "gemini-2.5-flash"}

	text, err := provider.GenerateVision(context.Background(), "describe features", []byte("png-bytes"), "image/png", RequestConfig{
		SystemPrompt:    "You are an expert in landscape analysis and geography.",
		Temperature:     0.4,
		TopK:            32,
		TopP:            1,
		MaxOutputTokens: 4096,
	})
	if err != nil {
		t.Fatalf("GenerateVision failed: %v", err)
	}
	if text != "A river crossing with an old bridge." {
		t.Fatalf("unexpected response text: %q", text)
	}

	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected API key as query parameter, got %q", gotKey)
	}

	var req geminiRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}

	// System prompt handshake, image, then the user message last.
	if len(req.Contents) != 4 {
		t.Fatalf("expected 4 content entries, got %d", len(req.Contents))
	}
	if req.Contents[0].Role != "user" || req.Contents[1].Role != "model" {
		t.Fatalf("expected system prompt handshake first, got roles %q/%q", req.Contents[0].Role, req.Contents[1].Role)
	}
	if req.Contents[2].Parts[0].InlineData == nil {
		t.Fatalf("expected image inline_data in third content entry")
	}
	if req.Contents[2].Parts[0].InlineData.MimeType != "image/png" {
		t.Fatalf("unexpected mime type: %q", req.Contents[2].Parts[0].InlineData.MimeType)
	}
	last := req.Contents[len(req.Contents)-1]
	if last.Role != "user" || last.Parts[0].Text != "describe features" {
		t.Fatalf("expected prompt as final user message, got %+v", last)
	}

	if req.GenerationConfig == nil || req.GenerationConfig.Temperature != 0.4 || req.GenerationConfig.MaxOutputTokens != 4096 {
		t.Fatalf("unexpected generation config: %+v", req.GenerationConfig)
	}
}

func TestGeminiGenerateVisionIncludesHistory(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer server.Close()

	provider := &GeminiProvider{APIKey: "k", BaseURL: server.URL, Model: "gemini-2.5-flash"}
	_, err := provider.GenerateVision(context.Background(), "and the fields?", nil, "", RequestConfig{
		History: []Message{
			{Role: "user", Content: "what is this?"},
			{Role: "assistant", Content: "A hillfort."},
		},
	})
	if err != nil {
		t.Fatalf("GenerateVision failed: %v", err)
	}

	var req geminiRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if len(req.Contents) != 3 {
		t.Fatalf("expected 3 content entries, got %d", len(req.Contents))
	}
	// Assistant turns become the "model" role on the Gemini side.
	if req.Contents[1].Role != "model" || req.Contents[1].Parts[0].Text != "A hillfort." {
		t.Fatalf("expected history assistant turn as model role, got %+v", req.Contents[1])
	}
}

func TestGeminiGenerateVisionAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer server.Close()

	provider := &GeminiProvider{APIKey: "bad", BaseURL: server.URL, Model: "gemini-2.5-flash"}
	_, err := provider.GenerateVision(context.Background(), "describe", []byte("img"), "image/png", RequestConfig{})
	if err == nil {
		t.Fatalf("expected error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if !apiErr.IsAuth() {
		t.Fatalf("expected auth error for status 401")
	}
}

func TestGeminiGenerateVisionMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `this is not json`)
	}))
	defer server.Close()

	provider := &GeminiProvider{APIKey: "k", BaseURL: server.URL, Model: "gemini-2.5-flash"}
	_, err := provider.GenerateVision(context.Background(), "describe", []byte("img"), "image/png", RequestConfig{})
	if err == nil || !strings.Contains(err.Error(), "failed to parse response") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestGeminiGenerateVisionNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	provider := &GeminiProvider{APIKey: "k", BaseURL: server.URL, Model: "gemini-2.5-flash"}
	_, err := provider.GenerateVision(context.Background(), "describe", []byte("img"), "image/png", RequestConfig{})
	if err == nil || !strings.Contains(err.Error(), "no response candidates") {
		t.Fatalf("expected no-candidates error, got %v", err)
	}
}

func TestGeminiConnectionErrorRedactsKey(t *testing.T) {
	// Closed server forces a transport error whose URL carries the key.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := &GeminiProvider{APIKey: "secret-key-value", BaseURL: server.URL, Model: "gemini-2.5-flash"}
	_, err := provider.GenerateVision(context.Background(), "describe", []byte("img"), "image/png", RequestConfig{})
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if strings.Contains(err.Error(), "secret-key-value") {
		t.Fatalf("API key leaked into error message: %v", err)
	}
}
