package llm

import (
	"fmt"
	"strings"
)

// Config selects and parameterizes a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds the provider named by cfg.Provider, filling in the public
// endpoint when no BaseURL override is given.
func New(cfg Config) (Provider, error) {
	if cfg.BaseURL == "" {
		switch cfg.Provider {
		case ProviderGemini:
			cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
		case ProviderGPT:
			cfg.BaseURL = "https://api.openai.com/v1"
		}
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	switch cfg.Provider {
	case ProviderGemini:
		return &GeminiProvider{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}, nil
	case ProviderGPT:
		return &OpenAIProvider{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}

// ProviderForModel maps a model name to its provider, mirroring the
// model dropdown behavior.
func ProviderForModel(model string) (string, error) {
	switch {
	case strings.HasPrefix(model, "gemini"):
		return ProviderGemini, nil
	case strings.HasPrefix(model, "gpt"):
		return ProviderGPT, nil
	default:
		return "", fmt.Errorf("unknown model type: %s", model)
	}
}
