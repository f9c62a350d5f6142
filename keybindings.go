package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all the keybindings for the application
type KeyMap struct {
	// Global keys
	Quit     key.Binding
	Help     key.Binding
	Tutorial key.Binding

	// Debug
	DebugDump key.Binding

	// Pane switching
	FocusNext key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Analysis
	Send      key.Binding
	ClearChat key.Binding
	PickModel key.Binding

	// Options
	GeminiKey key.Binding
	GPTKey    key.Binding

	// Dialog actions
	Confirm key.Binding
	Cancel  key.Binding
}

// NewKeyMap creates a new KeyMap with default keybindings
func NewKeyMap() *KeyMap {
	return &KeyMap{
		// Global keys
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "keybindings"),
		),
		Tutorial: key.NewBinding(
			key.WithKeys("ctrl+t", "t"),
			key.WithHelp("ctrl+t", "tutorial"),
		),

		// Debug
		DebugDump: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug dump"),
		),

		// Pane switching
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),

		// Analysis
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "analyze"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
		PickModel: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "pick model"),
		),

		// Options
		GeminiKey: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "gemini key"),
		),
		GPTKey: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "openai key"),
		),

		// Dialog actions
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a slice of key bindings to show in the short help view
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.Quit,
	}
}

// FullHelp returns a slice of key bindings to show in the full help view
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help, k.Tutorial},       // Global
		{k.FocusNext, k.Up, k.Down},        // Navigation
		{k.Send, k.ClearChat, k.PickModel}, // Analysis
		{k.GeminiKey, k.GPTKey},            // Options
		{k.Confirm, k.Cancel},              // Dialogs
	}
}

// GetHelpSections returns help sections with categorized keybindings
func (k *KeyMap) GetHelpSections() map[string][]key.Binding {
	return map[string][]key.Binding{
		"Global": {
			k.Quit,
			k.Help,
			k.Tutorial,
		},
		"Navigation": {
			k.FocusNext,
			k.Up,
			k.Down,
		},
		"Analysis": {
			k.Send,
			k.ClearChat,
			k.PickModel,
		},
		"Options": {
			k.GeminiKey,
			k.GPTKey,
		},
		"Dialog Actions": {
			k.Confirm,
			k.Cancel,
		},
	}
}
