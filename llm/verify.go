package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// VerifyGeminiKey makes a minimal generateContent round trip through the
// official SDK to confirm the key works before it is saved.
func VerifyGeminiKey(ctx context.Context, apiKey string) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}

	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText("Reply with the single word OK."),
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0)),
		MaxOutputTokens: 16,
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-2.5-flash", []*genai.Content{userContent}, config)
	if err != nil {
		return fmt.Errorf("key verification failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("key verification returned no response candidates")
	}

	return nil
}
