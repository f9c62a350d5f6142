// Package components holds small reusable UI widgets.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// analysisSpinner is the frame set used while a request is in flight
var analysisSpinner = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    time.Second / 10,
}

// Loader is a spinner with a text label
type Loader struct {
	spinner spinner.Model
	label   string
}

// NewLoader creates a loader with the given label
func NewLoader(label string) *Loader {
	s := spinner.New()
	s.Spinner = analysisSpinner
	return &Loader{
		spinner: s,
		label:   label,
	}
}

// SetLabel updates the loader text
func (l *Loader) SetLabel(label string) {
	l.label = label
}

// TickCmd starts the spinner animation
func (l *Loader) TickCmd() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages
func (l *Loader) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and label
func (l *Loader) View() string {
	if l.label == "" {
		return l.spinner.View()
	}
	return l.spinner.View() + " " + l.label
}
