// Package config provides the persisted settings store for the
// landtalk application.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultModel is the model selected on first run.
	DefaultModel = "gemini-2.5-flash"

	// DefaultConfidenceThreshold filters detections below this
	// confidence percentage (0-100).
	DefaultConfidenceThreshold = 50.0

	// DefaultSystemPrompt is used until the user edits the rules file.
	DefaultSystemPrompt = "You are an expert in landscape analysis and geography."
)

// Settings represents the persisted plugin settings.
type Settings struct {
	ShowTutorial           bool    `json:"show_tutorial"`
	ConfidenceThreshold    float64 `json:"confidence_threshold"`
	AutoClearOnModelChange bool    `json:"auto_clear_on_model_change"`
	LastSelectedModel      string  `json:"last_selected_model"`
	AnalysisDirectory      string  `json:"custom_analysis_directory,omitempty"`
}

// Keys holds the per-provider API keys, stored separately from settings.
type Keys struct {
	Gemini string `json:"gemini"`
	GPT    string `json:"gpt"`
}

func defaultSettings() Settings {
	return Settings{
		ShowTutorial:           true,
		ConfidenceThreshold:    DefaultConfidenceThreshold,
		AutoClearOnModelChange: true,
		LastSelectedModel:      DefaultModel,
	}
}

// Store owns the settings files for one running instance. All setters
// write through to disk immediately.
type Store struct {
	dir      string
	settings Settings
	keys     Keys
}

// DefaultDir returns the path to the .landtalk directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".landtalk"), nil
}

// NewStore creates a store rooted at dir and loads whatever is on disk.
// A missing or unreadable file means "no settings yet": defaults are
// used and no error is reported.
func NewStore(dir string) *Store {
	s := &Store{dir: dir}
	s.settings = s.loadSettings()
	s.keys = s.loadKeys()
	return s
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0755)
}

func (s *Store) settingsPath() string {
	return filepath.Join(s.dir, "settings.json")
}

func (s *Store) keysPath() string {
	return filepath.Join(s.dir, "keys.json")
}

func (s *Store) systemPromptPath() string {
	return filepath.Join(s.dir, "systemprompt.txt")
}

func (s *Store) loadSettings() Settings {
	settings := defaultSettings()

	data, err := os.ReadFile(s.settingsPath())
	if err != nil {
		return settings
	}

	// Invalid JSON is treated the same as a missing file.
	if err := json.Unmarshal(data, &settings); err != nil {
		return defaultSettings()
	}
	if settings.LastSelectedModel == "" {
		settings.LastSelectedModel = DefaultModel
	}
	if settings.ConfidenceThreshold < 0 || settings.ConfidenceThreshold > 100 {
		settings.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	return settings
}

func (s *Store) loadKeys() Keys {
	var keys Keys
	data, err := os.ReadFile(s.keysPath())
	if err != nil {
		return Keys{}
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return Keys{}
	}
	return keys
}

// Settings returns the current in-memory settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// saveSettings persists the full settings mapping.
func (s *Store) saveSettings() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.settingsPath(), data, 0644)
}

// saveKeys persists the API keys.
func (s *Store) saveKeys() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.keys, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.keysPath(), data, 0600)
}

// SetShowTutorial updates the tutorial auto-display flag.
func (s *Store) SetShowTutorial(show bool) error {
	s.settings.ShowTutorial = show
	return s.saveSettings()
}

// SetLastSelectedModel remembers the model picked in the UI.
func (s *Store) SetLastSelectedModel(model string) error {
	s.settings.LastSelectedModel = model
	return s.saveSettings()
}

// SetConfidenceThreshold updates the detection confidence filter.
func (s *Store) SetConfidenceThreshold(threshold float64) error {
	s.settings.ConfidenceThreshold = threshold
	return s.saveSettings()
}

// SetAutoClearOnModelChange updates whether switching models clears the
// conversation.
func (s *Store) SetAutoClearOnModelChange(value bool) error {
	s.settings.AutoClearOnModelChange = value
	return s.saveSettings()
}

// SetAnalysisDirectory updates where analysis results are written.
func (s *Store) SetAnalysisDirectory(dir string) error {
	s.settings.AnalysisDirectory = dir
	return s.saveSettings()
}

// Keys returns the current API keys.
func (s *Store) Keys() Keys {
	return s.keys
}

// APIKey returns the stored key for the given provider ("gemini" or
// "gpt"). Unknown providers yield an empty key.
func (s *Store) APIKey(provider string) string {
	switch provider {
	case "gemini":
		return s.keys.Gemini
	case "gpt":
		return s.keys.GPT
	}
	return ""
}

// SetAPIKey stores the key for the given provider and persists it.
func (s *Store) SetAPIKey(provider, key string) error {
	switch provider {
	case "gemini":
		s.keys.Gemini = key
	case "gpt":
		s.keys.GPT = key
	}
	return s.saveKeys()
}

// SystemPrompt returns the analysis rules sent with every request,
// falling back to the built-in default when no rules file exists.
func (s *Store) SystemPrompt() string {
	data, err := os.ReadFile(s.systemPromptPath())
	if err != nil {
		return DefaultSystemPrompt
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return DefaultSystemPrompt
	}
	return prompt
}

// SaveSystemPrompt writes the analysis rules file.
func (s *Store) SaveSystemPrompt(prompt string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.systemPromptPath(), []byte(prompt), 0644)
}
