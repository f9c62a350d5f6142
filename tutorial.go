package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TutorialDialog represents the tabbed tutorial overlay shown to
// first-time users and on demand.
type TutorialDialog struct {
	width         int
	height        int
	activeTab     int
	dontShowAgain bool
	content       viewport.Model
}

// Styling for tutorial dialog
var (
	tutorialOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(1, 2).
				MaxWidth(78)

	tutorialTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(landtalkColor))

	tutorialSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(textDescription)).
				Italic(true).
				MarginBottom(1)

	tutorialTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(textMuted)).
				Padding(0, 2)

	tutorialActiveTabStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(textPrimary)).
				Background(lipgloss.Color("238")).
				Padding(0, 2)

	tutorialCheckboxStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(textMuted)).
				MarginTop(1)

	tutorialCheckedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(warningYellow)).
				MarginTop(1)

	tutorialFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true).
				MarginTop(1)
)

const (
	tutorialContentWidth  = 70
	tutorialContentHeight = 18
)

// NewTutorialDialog creates the tutorial dialog opened on the first tab
func NewTutorialDialog() *TutorialDialog {
	content := viewport.New(tutorialContentWidth, tutorialContentHeight)
	content.SetContent(tutorialTabContent(0))

	return &TutorialDialog{
		content: content,
	}
}

// Init implements tea.Model
func (t *TutorialDialog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (t *TutorialDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			t.setTab((t.activeTab + 1) % len(tutorialTabNames))
			return t, nil

		case "shift+tab", "left", "h":
			t.setTab((t.activeTab + len(tutorialTabNames) - 1) % len(tutorialTabNames))
			return t, nil

		case "d":
			t.dontShowAgain = !t.dontShowAgain
			return t, nil

		case "esc", "enter", "q":
			dontShow := t.dontShowAgain
			return t, func() tea.Msg {
				return TutorialClosedMsg{DontShowAgain: dontShow}
			}
		}
	}

	var cmd tea.Cmd
	t.content, cmd = t.content.Update(msg)
	return t, cmd
}

// setTab switches the active tab and resets the scroll position
func (t *TutorialDialog) setTab(tab int) {
	t.activeTab = tab
	t.content.SetContent(tutorialTabContent(tab))
	t.content.GotoTop()
}

// ActiveTab returns the index of the currently shown tab
func (t *TutorialDialog) ActiveTab() int {
	return t.activeTab
}

// DontShowAgain reports the checkbox state
func (t *TutorialDialog) DontShowAgain() bool {
	return t.dontShowAgain
}

// SetSize updates the dialog dimensions
func (t *TutorialDialog) SetSize(width, height int) {
	t.width = width
	t.height = height

	// Shrink the content viewport on small terminals
	h := tutorialContentHeight
	if height > 0 && height-10 < h {
		h = height - 10
		if h < 5 {
			h = 5
		}
	}
	t.content.Height = h
}

// View implements tea.Model and renders the tutorial dialog content
func (t *TutorialDialog) View() string {
	var content []string

	// Header
	content = append(content, tutorialTitleStyle.Render(tutorialWindowTitle))
	content = append(content, tutorialSubtitleStyle.Render(tutorialSubtitle))

	// Tab bar
	var tabs []string
	for i, name := range tutorialTabNames {
		if i == t.activeTab {
			tabs = append(tabs, tutorialActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, tutorialTabStyle.Render(name))
		}
	}
	content = append(content, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	content = append(content, "")

	// Scrollable tab content
	content = append(content, t.content.View())

	// Checkbox
	checkbox := "[ ] " + tutorialDontShowAgainText
	checkboxStyle := tutorialCheckboxStyle
	if t.dontShowAgain {
		checkbox = "[x] " + tutorialDontShowAgainText
		checkboxStyle = tutorialCheckedStyle
	}
	content = append(content, checkboxStyle.Render(checkbox+"  (press d to toggle)"))

	// Footer
	content = append(content, tutorialFooterStyle.Render("tab/←/→ switch section • ↑/↓ scroll • enter/esc close"))

	return tutorialOverlayStyle.Render(strings.Join(content, "\n"))
}

// TutorialClosedMsg indicates the tutorial dialog was closed
type TutorialClosedMsg struct {
	DontShowAgain bool
}
