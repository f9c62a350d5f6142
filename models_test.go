package main

import (
	"testing"

	"landtalk/config"
	"landtalk/llm"
)

func TestGetModelConfig(t *testing.T) {
	cases := []struct {
		name         string
		wantName     string
		wantProvider string
	}{
		{name: "gemini-2.5-flash", wantName: "gemini-2.5-flash", wantProvider: llm.ProviderGemini},
		{name: "GPT5-MINI", wantName: "gpt5-mini", wantProvider: llm.ProviderGPT},
		{name: "gpt-4o-mini", wantName: "gpt-4o-mini", wantProvider: llm.ProviderGPT},
		// Unknown names fall back to the default model.
		{name: "claude-3", wantName: "gemini-2.5-flash", wantProvider: llm.ProviderGemini},
		{name: "", wantName: "gemini-2.5-flash", wantProvider: llm.ProviderGemini},
	}

	for _, tc := range cases {
		got := GetModelConfig(tc.name)
		if got.Name != tc.wantName || got.Provider != tc.wantProvider {
			t.Fatalf("GetModelConfig(%q) = %s/%s, want %s/%s",
				tc.name, got.Name, got.Provider, tc.wantName, tc.wantProvider)
		}
	}
}

func TestSelectModelPersistsChoice(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, dir)

	m.selectModel(GPT4oMiniModel)

	if m.modelConfig.Name != "gpt-4o-mini" {
		t.Fatalf("expected active model switched, got %s", m.modelConfig.Name)
	}
	if got := config.NewStore(dir).Settings().LastSelectedModel; got != "gpt-4o-mini" {
		t.Fatalf("expected model persisted, got %q", got)
	}
}
