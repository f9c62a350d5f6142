package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"landtalk/components"
	"landtalk/llm"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// APIKeyDialog represents the dialog for entering a provider API key
type APIKeyDialog struct {
	input     textinput.Model
	err       string
	provider  string // llm.ProviderGemini or llm.ProviderGPT
	width     int
	height    int
	verifying bool
	loader    *components.Loader
}

// Styling for the API key dialog
var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(borderMuted)).
			Padding(1, 2).
			MaxWidth(60)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(landtalkColor)).
				MarginBottom(1)

	dialogErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(errorStatus)).
				MarginTop(1)

	dialogInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textMuted)).
			MarginTop(1)

	dialogButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(infoStatus)).
				MarginTop(1)
)

// NewAPIKeyDialog creates a key entry dialog for the given provider
func NewAPIKeyDialog(provider string) *APIKeyDialog {
	input := textinput.New()
	input.Placeholder = "Paste your API key"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Focus()
	input.CharLimit = 200
	input.Width = 40

	return &APIKeyDialog{
		input:    input,
		provider: provider,
		loader:   components.NewLoader("Verifying key..."),
	}
}

// Init implements tea.Model
func (d *APIKeyDialog) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (d *APIKeyDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't process keys while a verification is in flight
		if d.verifying {
			return d, nil
		}

		switch msg.String() {
		case "enter":
			return d, d.submit()

		case "esc":
			return d, func() tea.Msg {
				return APIKeyDialogCancelledMsg{}
			}
		}

	case APIKeyVerifyErrorMsg:
		d.verifying = false
		d.err = msg.Error
		return d, nil
	}

	if !d.verifying {
		var inputCmd tea.Cmd
		d.input, inputCmd = d.input.Update(msg)
		cmds = append(cmds, inputCmd)
	}

	if d.verifying {
		if cmd := d.loader.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return d, tea.Batch(cmds...)
}

// submit validates the entered key and, for Gemini, runs a
// verification round trip before accepting it.
func (d *APIKeyDialog) submit() tea.Cmd {
	key := strings.TrimSpace(d.input.Value())
	if key == "" {
		d.err = "API key cannot be empty"
		return nil
	}

	provider := d.provider
	if provider != llm.ProviderGemini {
		// No verification endpoint for OpenAI keys; accept as entered.
		return func() tea.Msg {
			return APIKeyAcceptedMsg{Provider: provider, Key: key}
		}
	}

	d.verifying = true
	d.err = ""

	cmds := []tea.Cmd{d.loader.TickCmd()}
	cmds = append(cmds, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := llm.VerifyGeminiKey(ctx, key); err != nil {
			return APIKeyVerifyErrorMsg{Error: err.Error()}
		}
		return APIKeyAcceptedMsg{Provider: provider, Key: key}
	})
	return tea.Batch(cmds...)
}

// SetSize updates the dialog dimensions
func (d *APIKeyDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Provider returns the provider this dialog edits the key for
func (d *APIKeyDialog) Provider() string {
	return d.provider
}

// View implements tea.Model and renders the dialog
func (d *APIKeyDialog) View() string {
	var content []string

	providerName := "Google Gemini"
	if d.provider == llm.ProviderGPT {
		providerName = "OpenAI GPT"
	}

	// Title
	content = append(content, dialogTitleStyle.Render(fmt.Sprintf("Set %s API Key", providerName)))
	content = append(content, "")

	// Setup instructions
	if d.provider == llm.ProviderGemini {
		content = append(content, "To access Gemini you need a Google Gemini API key:")
		content = append(content, "  1. Login and get your key at")
		content = append(content, "     https://aistudio.google.com/apikey")
	} else {
		content = append(content, "To access GPT you need an OpenAI API key:")
		content = append(content, "  1. Open your OpenAI settings, click User API keys,")
		content = append(content, "     then Create new secret key")
		content = append(content, "     https://platform.openai.com/api-keys")
	}
	content = append(content, "  2. Paste the key below")
	content = append(content, "")

	// Input field
	if d.verifying {
		content = append(content, "API key: "+strings.Repeat("•", 8))
	} else {
		content = append(content, "API key: "+d.input.View())
	}

	// Buttons or progress
	if d.verifying {
		content = append(content, dialogInfoStyle.Render(d.loader.View()))
	} else {
		content = append(content, dialogButtonStyle.Render("[ Save ]  [ Cancel (ESC) ]"))
	}

	// Error message
	if d.err != "" {
		content = append(content, "")
		content = append(content, dialogErrorStyle.Render("Error: "+d.err))
	}

	dialogContent := strings.Join(content, "\n")
	return dialogStyle.Render(dialogContent)
}

// APIKeyAcceptedMsg indicates a key was entered and (when possible) verified
type APIKeyAcceptedMsg struct {
	Provider string
	Key      string
}

// APIKeyVerifyErrorMsg indicates key verification failed
type APIKeyVerifyErrorMsg struct {
	Error string
}

// APIKeyDialogCancelledMsg indicates the dialog was cancelled
type APIKeyDialogCancelledMsg struct{}
