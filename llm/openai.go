package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIProvider talks to the chat completions endpoint.
type OpenAIProvider struct {
	APIKey  string
	BaseURL string
	Model   string
}

var _ Provider = (*OpenAIProvider)(nil)

func (o *OpenAIProvider) ID() string { return ProviderGPT }

// Content is either a plain string or a list of typed parts, so the
// message payload stays untyped.
type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIImagePart struct {
	Type     string         `json:"type"`
	ImageURL openAIImageURL `json:"image_url"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// UI model names to OpenAI identifiers.
var openAIModelMapping = map[string]string{
	"gpt5-mini":   "gpt-5-mini",
	"gpt-4o-mini": "gpt-4o-mini",
}

func (o *OpenAIProvider) GenerateVision(ctx context.Context, prompt string, imageData []byte, mimeType string, cfg RequestConfig) (string, error) {
	var messages []openAIMessage

	if cfg.SystemPrompt != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: cfg.SystemPrompt})
	}

	if len(imageData) > 0 {
		if mimeType == "" {
			mimeType = "image/png"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
		messages = append(messages, openAIMessage{
			Role: "user",
			Content: []openAIImagePart{{
				Type:     "image_url",
				ImageURL: openAIImageURL{URL: dataURL},
			}},
		})
	}

	for _, msg := range cfg.History {
		messages = append(messages, openAIMessage{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, openAIMessage{Role: "user", Content: prompt})

	selectedModel := o.Model
	if mapped, ok := openAIModelMapping[selectedModel]; ok {
		selectedModel = mapped
	}
	if selectedModel == "" {
		selectedModel = "gpt-5-mini"
	}

	reqBody := openAIRequest{
		Model:    selectedModel,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API connection failed: %s", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: ProviderGPT, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result openAIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return result.Choices[0].Message.Content, nil
}
