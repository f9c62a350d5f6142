package main

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	IsGlobal    bool // Whether this is a global shortcut
}

// ChatShortcuts are the shortcuts available when the chat pane is focused
var ChatShortcuts = []Shortcut{
	{Key: "↵", Description: "analyze", IsGlobal: false},
	{Key: "ctrl+p", Description: "model", IsGlobal: false},
	{Key: "ctrl+l", Description: "clear chat", IsGlobal: false},
}

// ResultsShortcuts are the shortcuts available when the results pane is focused
var ResultsShortcuts = []Shortcut{
	{Key: "↑/↓", Description: "scroll", IsGlobal: false},
	{Key: "t", Description: "tutorial", IsGlobal: false},
}

// GlobalShortcuts are always available regardless of focused pane
var GlobalShortcuts = []Shortcut{
	{Key: "ctrl+h", Description: "help", IsGlobal: true},
	{Key: "ctrl+c", Description: "quit", IsGlobal: true},
}

// AllShortcuts returns all available shortcuts for the help dialog
func AllShortcuts() map[string][]Shortcut {
	return map[string][]Shortcut{
		"Analysis": {
			{Key: "↵ (Enter)", Description: "Send the prompt and captured image for analysis", IsGlobal: false},
			{Key: "ctrl+p", Description: "Pick the AI model (Gemini or GPT)", IsGlobal: false},
			{Key: "ctrl+l", Description: "Clear the conversation history", IsGlobal: false},
		},
		"Navigation": {
			{Key: "tab", Description: "Switch between chat and results panes", IsGlobal: false},
			{Key: "↑/↓", Description: "Scroll the focused pane", IsGlobal: false},
		},
		"Options": {
			{Key: "ctrl+g", Description: "Set the Google Gemini API key", IsGlobal: false},
			{Key: "ctrl+o", Description: "Set the OpenAI API key", IsGlobal: false},
		},
		"Help": {
			{Key: "ctrl+t", Description: "Open the tutorial", IsGlobal: true},
			{Key: "ctrl+h", Description: "Show this help dialog", IsGlobal: true},
			{Key: "any key", Description: "Close help dialog", IsGlobal: true},
		},
	}
}
