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

func TestOpenAIGenerateVisionSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"choices":[{"message":{"content":"Terraced fields and a farm track."}}]}`)
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt5-mini"}

	text, err := provider.GenerateVision(context.Background(), "describe features", []byte("png-bytes"), "image/png", RequestConfig{
		SystemPrompt: "You are an expert in landscape analysis and geography.",
	})
	if err != nil {
		t.Fatalf("GenerateVision failed: %v", err)
	}
	if text != "Terraced fields and a farm track." {
		t.Fatalf("unexpected response text: %q", text)
	}

	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}

	// UI model names map to OpenAI identifiers.
	if req.Model != "gpt-5-mini" {
		t.Fatalf("expected model gpt-5-mini, got %q", req.Model)
	}
	if len(req.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Fatalf("expected system message first, got role %q", req.Messages[0].Role)
	}
	if !strings.Contains(string(req.Messages[1].Content), "data:image/png;base64,") {
		t.Fatalf("expected base64 data URL in image message, got %s", req.Messages[1].Content)
	}
	if req.Messages[2].Role != "user" {
		t.Fatalf("expected user prompt last, got role %q", req.Messages[2].Role)
	}
}

func TestOpenAIGenerateVisionAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "bad", BaseURL: server.URL, Model: "gpt-4o-mini"}
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

func TestOpenAIGenerateVisionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer server.Close()

	provider := &OpenAIProvider{APIKey: "k", BaseURL: server.URL, Model: "gpt-4o-mini"}
	_, err := provider.GenerateVision(context.Background(), "describe", []byte("img"), "image/png", RequestConfig{})
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty-response error, got %v", err)
	}
}

func TestProviderForModel(t *testing.T) {
	cases := []struct {
		model    string
		provider string
		wantErr  bool
	}{
		{"gemini-2.5-flash", ProviderGemini, false},
		{"gemini-2.5-pro", ProviderGemini, false},
		{"gpt5-mini", ProviderGPT, false},
		{"gpt-4o-mini", ProviderGPT, false},
		{"claude-3", "", true},
	}

	for _, tc := range cases {
		got, err := ProviderForModel(tc.model)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for model %q", tc.model)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ProviderForModel(%q) failed: %v", tc.model, err)
		}
		if got != tc.provider {
			t.Fatalf("ProviderForModel(%q) = %q, want %q", tc.model, got, tc.provider)
		}
	}
}

func TestNewFactoryDefaults(t *testing.T) {
	p, err := New(Config{Provider: ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	gemini, ok := p.(*GeminiProvider)
	if !ok {
		t.Fatalf("expected *GeminiProvider, got %T", p)
	}
	if gemini.BaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("unexpected default base URL: %q", gemini.BaseURL)
	}

	if _, err := New(Config{Provider: "claude"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
