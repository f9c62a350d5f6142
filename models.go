// Package main provides the landtalk terminal user interface for
// analyzing captured map imagery with multimodal AI models.
package main

import (
	"strings"

	"landtalk/llm"
)

// ModelConfig defines the configuration for a selectable AI model
type ModelConfig struct {
	Name        string // Model identifier sent to the API
	DisplayName string // Name shown in the picker
	Provider    string // llm.ProviderGemini or llm.ProviderGPT
	BorderColor string // Hex color value for pane borders
	CompanyName string // Vendor name to display in UI
}

// GeminiFlashModel is the default model
var GeminiFlashModel = ModelConfig{
	Name:        "gemini-2.5-flash",
	DisplayName: "Gemini 2.5 Flash",
	Provider:    llm.ProviderGemini,
	BorderColor: "#cda9fc",
	CompanyName: "Google Gemini",
}

var GeminiProModel = ModelConfig{
	Name:        "gemini-2.5-pro",
	DisplayName: "Gemini 2.5 Pro",
	Provider:    llm.ProviderGemini,
	BorderColor: "#cda9fc",
	CompanyName: "Google Gemini",
}

var GPT5MiniModel = ModelConfig{
	Name:        "gpt5-mini",
	DisplayName: "GPT-5 Mini",
	Provider:    llm.ProviderGPT,
	BorderColor: "#82a2be",
	CompanyName: "OpenAI GPT",
}

var GPT4oMiniModel = ModelConfig{
	Name:        "gpt-4o-mini",
	DisplayName: "GPT-4o Mini",
	Provider:    llm.ProviderGPT,
	BorderColor: "#82a2be",
	CompanyName: "OpenAI GPT",
}

// AllModels lists every selectable model in picker order
var AllModels = []ModelConfig{
	GeminiFlashModel,
	GeminiProModel,
	GPT5MiniModel,
	GPT4oMiniModel,
}

// GetModelConfig returns the configuration for a model name, falling
// back to the default Gemini model for unknown names.
func GetModelConfig(name string) ModelConfig {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, m := range AllModels {
		if m.Name == name {
			return m
		}
	}
	return GeminiFlashModel
}

// IsKnownModel reports whether name is one of the selectable models
func IsKnownModel(name string) bool {
	for _, m := range AllModels {
		if m.Name == strings.TrimSpace(strings.ToLower(name)) {
			return true
		}
	}
	return false
}
