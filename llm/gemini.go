package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// The API key travels as a query parameter, so it must never surface in
// transport error strings.
var keyRedactor = regexp.MustCompile(`(key=)[^&"\s]+`)

// GeminiProvider talks to the Gemini generateContent endpoint.
type GeminiProvider struct {
	APIKey  string
	BaseURL string
	Model   string
}

var _ Provider = (*GeminiProvider)(nil)

func (g *GeminiProvider) ID() string { return ProviderGemini }

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	TopK            float32 `json:"topK,omitempty"`
	TopP            float32 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (g *GeminiProvider) GenerateVision(ctx context.Context, prompt string, imageData []byte, mimeType string, cfg RequestConfig) (string, error) {
	var contents []geminiContent

	// The system prompt goes first as a user/model handshake; Gemini has
	// no dedicated system role on this endpoint.
	if cfg.SystemPrompt != "" {
		contents = append(contents,
			geminiContent{Role: "user", Parts: []geminiPart{{Text: cfg.SystemPrompt}}},
			geminiContent{Role: "model", Parts: []geminiPart{{Text: "I understand. I'll follow these instructions for all interactions."}}},
		)
	}

	if len(imageData) > 0 {
		if mimeType == "" {
			mimeType = "image/png"
		}
		contents = append(contents, geminiContent{
			Role: "user",
			Parts: []geminiPart{{
				InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				},
			}},
		})
	}

	for _, msg := range cfg.History {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	// The new user message always comes last.
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: prompt}},
	})

	reqBody := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		safeErr := keyRedactor.ReplaceAllString(err.Error(), "$1[REDACTED]")
		return "", fmt.Errorf("API connection failed: %s", safeErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: ProviderGemini, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	candidate := geminiResp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason != "" {
			return "", fmt.Errorf("blocked by safety settings (%s)", candidate.FinishReason)
		}
		return "", fmt.Errorf("empty response from model")
	}

	var responseText string
	for _, part := range candidate.Content.Parts {
		responseText += part.Text
	}
	if responseText == "" {
		return "", fmt.Errorf("no text in response")
	}

	return responseText, nil
}
