package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoSettingsFile(t *testing.T) {
	store := NewStore(t.TempDir())

	settings := store.Settings()
	if !settings.ShowTutorial {
		t.Fatalf("expected show_tutorial to default to true")
	}
	if settings.ConfidenceThreshold != DefaultConfidenceThreshold {
		t.Fatalf("expected default confidence threshold %v, got %v", DefaultConfidenceThreshold, settings.ConfidenceThreshold)
	}
	if settings.LastSelectedModel != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, settings.LastSelectedModel)
	}
	if !settings.AutoClearOnModelChange {
		t.Fatalf("expected auto_clear_on_model_change to default to true")
	}
}

func TestLoadDefaultsWhenSettingsFileCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt settings file: %v", err)
	}

	store := NewStore(dir)
	if !store.Settings().ShowTutorial {
		t.Fatalf("expected defaults after corrupt settings file")
	}
}

func TestShowTutorialDefaultsTrueWhenKeyMissing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"confidence_threshold": 80}`), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	store := NewStore(dir)
	if !store.Settings().ShowTutorial {
		t.Fatalf("expected show_tutorial to default to true when key is missing")
	}
	if store.Settings().ConfidenceThreshold != 80 {
		t.Fatalf("expected confidence threshold 80, got %v", store.Settings().ConfidenceThreshold)
	}
}

func TestShowTutorialPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	if err := store.SetShowTutorial(false); err != nil {
		t.Fatalf("SetShowTutorial failed: %v", err)
	}

	// A fresh store simulates a new session.
	reloaded := NewStore(dir)
	if reloaded.Settings().ShowTutorial {
		t.Fatalf("expected show_tutorial=false to persist across sessions")
	}
}

func TestAPIKeysRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	if err := store.SetAPIKey("gemini", "gm-key"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := store.SetAPIKey("gpt", "sk-key"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	reloaded := NewStore(dir)
	if got := reloaded.APIKey("gemini"); got != "gm-key" {
		t.Fatalf("expected gemini key to round trip, got %q", got)
	}
	if got := reloaded.APIKey("gpt"); got != "sk-key" {
		t.Fatalf("expected gpt key to round trip, got %q", got)
	}
	if got := reloaded.APIKey("claude"); got != "" {
		t.Fatalf("expected empty key for unknown provider, got %q", got)
	}
}

func TestSystemPromptFallsBackToDefault(t *testing.T) {
	store := NewStore(t.TempDir())
	if got := store.SystemPrompt(); got != DefaultSystemPrompt {
		t.Fatalf("expected default system prompt, got %q", got)
	}

	if err := store.SaveSystemPrompt("Focus on medieval features."); err != nil {
		t.Fatalf("SaveSystemPrompt failed: %v", err)
	}
	if got := store.SystemPrompt(); got != "Focus on medieval features." {
		t.Fatalf("expected saved system prompt, got %q", got)
	}
}

func TestSetLastSelectedModelPersists(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(dir)
	if err := store.SetLastSelectedModel("gpt-4o-mini"); err != nil {
		t.Fatalf("SetLastSelectedModel failed: %v", err)
	}

	reloaded := NewStore(dir)
	if got := reloaded.Settings().LastSelectedModel; got != "gpt-4o-mini" {
		t.Fatalf("expected persisted model gpt-4o-mini, got %q", got)
	}
}
