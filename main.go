package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"landtalk/analysis"
	"landtalk/components"
	"landtalk/config"
	"landtalk/internal/version"
	"landtalk/llm"
	"landtalk/overlay"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	paneBaseStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderMuted)).
		Padding(1, 2)
)

type focusState int

const (
	focusChat focusState = iota
	focusResults
)

// String returns the string representation of the focus state
func (f focusState) String() string {
	switch f {
	case focusChat:
		return "chat"
	case focusResults:
		return "results"
	default:
		return "unknown"
	}
}

// chatEntry is one turn of the conversation shown in the chat pane
type chatEntry struct {
	role string // "user" or "assistant" or "error"
	text string
}

// modelItem adapts a ModelConfig for the bubbles list component
type modelItem struct {
	config ModelConfig
}

func (i modelItem) Title() string       { return i.config.DisplayName }
func (i modelItem) Description() string { return i.config.CompanyName + " · " + i.config.Name }
func (i modelItem) FilterValue() string { return i.config.Name }

type model struct {
	layout *Layout
	ready  bool
	err    error

	store       *config.Store
	session     *analysis.Session
	modelConfig ModelConfig

	// Captured area image
	imagePath string
	imageData []byte
	mimeType  string

	focused     focusState
	promptInput textinput.Model
	chatView    viewport.Model
	resultsView viewport.Model
	chatLog     []chatEntry
	resultsText string
	analyzing   bool
	loader      *components.Loader

	// Set when Send found no API key and opened the key dialog; the
	// analysis resumes once the key is accepted.
	pendingAnalysis bool

	keyMap *KeyMap
	footer *Footer

	helpDialog *HelpDialog
	showHelp   bool

	tutorial       *TutorialDialog
	showTutorial   bool
	tutorialManual bool // opened with a key, not the first-run gate

	apiKeyDialog     *APIKeyDialog
	showAPIKeyDialog bool

	modelPicker     list.Model
	showModelPicker bool

	debugLogger *DebugLogger
}

// analysisResultMsg carries a finished analysis back into the event loop
type analysisResultMsg struct {
	result analysis.Result
}

func initialModel(store *config.Store, imagePath string, imageData []byte, prompt string, debugLogger *DebugLogger) model {
	settings := store.Settings()
	modelConfig := GetModelConfig(settings.LastSelectedModel)

	session := analysis.NewSession(store.SystemPrompt(), settings.ConfidenceThreshold)
	session.SetModel(modelConfig.Name, settings.AutoClearOnModelChange)

	keyMap := NewKeyMap()

	footer := NewFooter()
	footer.SetModelConfig(modelConfig)
	footer.SetFocus(focusChat.String())

	promptInput := textinput.New()
	promptInput.Placeholder = "What do you want to analyze?"
	promptInput.CharLimit = 500
	promptInput.Focus()
	if prompt != "" {
		promptInput.SetValue(prompt)
	} else {
		promptInput.SetValue("analyze this image")
	}

	items := make([]list.Item, 0, len(AllModels))
	for _, m := range AllModels {
		items = append(items, modelItem{config: m})
	}
	picker := list.New(items, list.NewDefaultDelegate(), 44, 14)
	picker.Title = "Select AI Model"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)
	for i, item := range items {
		if item.(modelItem).config.Name == modelConfig.Name {
			picker.Select(i)
			break
		}
	}

	m := model{
		layout:      NewLayout(0, 0), // Will be updated on first WindowSizeMsg
		store:       store,
		session:     session,
		modelConfig: modelConfig,
		imagePath:   imagePath,
		imageData:   imageData,
		mimeType:    mimeTypeForPath(imagePath),
		focused:     focusChat,
		promptInput: promptInput,
		chatView:    viewport.New(0, 0),
		resultsView: viewport.New(0, 0),
		loader:      components.NewLoader("Analyzing..."),
		keyMap:      keyMap,
		footer:      footer,
		helpDialog:  NewHelpDialog(),
		modelPicker: picker,
		debugLogger: debugLogger,
	}

	// First-run tutorial gate. Failures here must never break startup.
	m.openTutorial(false, settings.ShowTutorial)

	return m
}

// openTutorial shows the tutorial dialog. Automatic invocations only
// fire when enabled is set; manual ones always do. Any panic while
// building the dialog is logged and swallowed so the app keeps running.
func (m *model) openTutorial(manual, enabled bool) {
	defer func() {
		if r := recover(); r != nil {
			DebugLog("tutorial display failed: %v", r)
			m.showTutorial = false
		}
	}()

	if !manual && !enabled {
		return
	}

	m.tutorial = NewTutorialDialog()
	if m.ready {
		m.tutorial.SetSize(m.layout.width, m.layout.height)
	}
	m.tutorialManual = manual
	m.showTutorial = true
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.footer.SetSize(msg.Width, footerRows)

		chatWidth, chatHeight := m.layout.GetChatDimensions()
		m.promptInput.Width = chatWidth - 4
		m.chatView.Width = chatWidth
		m.chatView.Height = chatHeight - 3 // Reserve rows for the input line

		resultsWidth, resultsHeight := m.layout.GetResultsDimensions()
		m.resultsView.Width = resultsWidth
		m.resultsView.Height = resultsHeight
		m.refreshResultsView()

		if m.tutorial != nil {
			m.tutorial.SetSize(msg.Width, msg.Height)
		}
		m.ready = true
		return m, nil

	case TutorialClosedMsg:
		m.showTutorial = false
		if msg.DontShowAgain {
			if err := m.store.SetShowTutorial(false); err != nil {
				DebugLog("failed to persist tutorial setting: %v", err)
			}
		}
		return m, nil

	case APIKeyAcceptedMsg:
		m.showAPIKeyDialog = false
		m.apiKeyDialog = nil
		if err := m.store.SetAPIKey(msg.Provider, msg.Key); err != nil {
			m.err = fmt.Errorf("failed to save API key: %v", err)
		} else {
			DebugLog("API key saved for provider %s", msg.Provider)
		}
		if m.pendingAnalysis {
			m.pendingAnalysis = false
			return m, m.startAnalysis()
		}
		return m, nil

	case APIKeyVerifyErrorMsg:
		if m.showAPIKeyDialog && m.apiKeyDialog != nil {
			dialogModel, cmd := m.apiKeyDialog.Update(msg)
			m.apiKeyDialog = dialogModel.(*APIKeyDialog)
			return m, cmd
		}
		return m, nil

	case APIKeyDialogCancelledMsg:
		m.showAPIKeyDialog = false
		m.apiKeyDialog = nil
		m.pendingAnalysis = false
		return m, nil

	case analysisResultMsg:
		m.analyzing = false
		result := msg.result
		if result.OK {
			m.chatLog = append(m.chatLog, chatEntry{role: "assistant", text: result.CleanedText})
			m.resultsText = formatResults(result, m.modelConfig.Provider, m.store.Settings().ConfidenceThreshold)
		} else {
			m.chatLog = append(m.chatLog, chatEntry{role: "error", text: result.Reason})
			DebugLog("analysis failed: %s", result.Reason)
		}
		m.refreshChatView()
		m.refreshResultsView()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.analyzing {
			if cmd := m.loader.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if m.showAPIKeyDialog && m.apiKeyDialog != nil {
			dialogModel, cmd := m.apiKeyDialog.Update(msg)
			m.apiKeyDialog = dialogModel.(*APIKeyDialog)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		// If help dialog is visible, any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Tutorial dialog input (highest priority overlay)
		if m.showTutorial && m.tutorial != nil {
			dialogModel, cmd := m.tutorial.Update(msg)
			m.tutorial = dialogModel.(*TutorialDialog)
			return m, cmd
		}

		// API key dialog input
		if m.showAPIKeyDialog && m.apiKeyDialog != nil {
			dialogModel, cmd := m.apiKeyDialog.Update(msg)
			m.apiKeyDialog = dialogModel.(*APIKeyDialog)
			return m, cmd
		}

		// Model picker input
		if m.showModelPicker {
			return m.updateModelPicker(msg)
		}

		switch {
		case key.Matches(msg, m.keyMap.Quit):
			if m.debugLogger != nil {
				m.debugLogger.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keyMap.Tutorial) &&
			(msg.String() == "ctrl+t" || m.focused == focusResults):
			// Manual invocation always works, regardless of the
			// persisted setting.
			m.openTutorial(true, false)
			return m, nil

		case key.Matches(msg, m.keyMap.DebugDump):
			DebugLog("state: focus=%s model=%s analyzing=%v history=%d",
				m.focused, m.modelConfig.Name, m.analyzing, m.session.HistoryLen())
			return m, nil

		case key.Matches(msg, m.keyMap.PickModel):
			m.showModelPicker = true
			return m, nil

		case key.Matches(msg, m.keyMap.GeminiKey):
			m.apiKeyDialog = NewAPIKeyDialog(llm.ProviderGemini)
			m.showAPIKeyDialog = true
			return m, m.apiKeyDialog.Init()

		case key.Matches(msg, m.keyMap.GPTKey):
			m.apiKeyDialog = NewAPIKeyDialog(llm.ProviderGPT)
			m.showAPIKeyDialog = true
			return m, m.apiKeyDialog.Init()

		case key.Matches(msg, m.keyMap.ClearChat):
			m.session.ClearHistory()
			m.chatLog = nil
			m.refreshChatView()
			return m, nil

		case key.Matches(msg, m.keyMap.FocusNext):
			if m.focused == focusChat {
				m.focused = focusResults
				m.promptInput.Blur()
			} else {
				m.focused = focusChat
				m.promptInput.Focus()
			}
			m.footer.SetFocus(m.focused.String())
			return m, nil

		case key.Matches(msg, m.keyMap.Send) && m.focused == focusChat:
			if m.analyzing {
				return m, nil
			}
			return m, m.startAnalysis()
		}

		// Remaining keys go to the focused pane
		if m.focused == focusChat {
			var cmd tea.Cmd
			m.promptInput, cmd = m.promptInput.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.resultsView, cmd = m.resultsView.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateModelPicker handles input while the model picker overlay is open
func (m model) updateModelPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.modelPicker.SelectedItem().(modelItem); ok {
			m.selectModel(item.config)
		}
		m.showModelPicker = false
		return m, nil
	case "esc":
		m.showModelPicker = false
		return m, nil
	}

	var cmd tea.Cmd
	m.modelPicker, cmd = m.modelPicker.Update(msg)
	return m, cmd
}

// selectModel switches the active model, persisting the choice and
// clearing the conversation when auto-clear is configured.
func (m *model) selectModel(cfg ModelConfig) {
	if cfg.Name == m.modelConfig.Name {
		return
	}

	settings := m.store.Settings()
	hadHistory := m.session.HistoryLen() > 0
	m.session.SetModel(cfg.Name, settings.AutoClearOnModelChange)
	if settings.AutoClearOnModelChange && hadHistory {
		m.chatLog = nil
		m.refreshChatView()
	}

	m.modelConfig = cfg
	m.footer.SetModelConfig(cfg)
	if err := m.store.SetLastSelectedModel(cfg.Name); err != nil {
		DebugLog("failed to persist model selection: %v", err)
	}
	DebugLog("model switched to %s", cfg.Name)
}

// startAnalysis sends the current prompt and image to the AI provider.
// When no key is stored for the active provider it opens the key dialog
// instead; the analysis resumes once the key is accepted.
func (m *model) startAnalysis() tea.Cmd {
	prompt := strings.TrimSpace(m.promptInput.Value())
	if prompt == "" {
		m.chatLog = append(m.chatLog, chatEntry{role: "error", text: "Please enter a message."})
		m.refreshChatView()
		return nil
	}

	if m.store.APIKey(m.modelConfig.Provider) == "" {
		m.apiKeyDialog = NewAPIKeyDialog(m.modelConfig.Provider)
		m.showAPIKeyDialog = true
		m.pendingAnalysis = true
		return m.apiKeyDialog.Init()
	}

	m.chatLog = append(m.chatLog, chatEntry{role: "user", text: prompt})
	m.refreshChatView()
	m.promptInput.SetValue("")
	m.analyzing = true

	req := analysis.Request{
		Image:    m.imageData,
		MimeType: m.mimeType,
		Prompt:   prompt,
		Provider: m.modelConfig.Provider,
		Model:    m.modelConfig.Name,
		APIKey:   m.store.APIKey(m.modelConfig.Provider),
	}
	session := m.session

	return tea.Batch(
		m.loader.TickCmd(),
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 150*time.Second)
			defer cancel()
			return analysisResultMsg{result: session.Analyze(ctx, req)}
		},
	)
}

// Styling for chat transcript entries
var (
	chatUserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(infoStatus))

	chatAssistantStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(textDescription))

	chatErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorStatus))

	resultsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(landtalkColor))

	detectionLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(selection))

	statsSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(successStatus))

	statsWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(warningStatus))

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(textPrimary)).
			PaddingLeft(1)

	imagePathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textMuted)).
			PaddingLeft(1)
)

// refreshChatView re-renders the transcript into the chat viewport
func (m *model) refreshChatView() {
	var lines []string
	for _, entry := range m.chatLog {
		switch entry.role {
		case "user":
			lines = append(lines, chatUserStyle.Render("You: ")+entry.text)
		case "assistant":
			lines = append(lines, chatAssistantStyle.Render(entry.text))
		case "error":
			lines = append(lines, chatErrorStyle.Render(entry.text))
		}
		lines = append(lines, "")
	}
	m.chatView.SetContent(strings.Join(lines, "\n"))
	m.chatView.GotoBottom()
}

// formatResults builds the results pane content for a successful analysis
func formatResults(result analysis.Result, provider string, threshold float64) string {
	var b strings.Builder

	if len(result.Detections) > 0 {
		b.WriteString(resultsHeaderStyle.Render("Detected Features") + "\n\n")
		for _, det := range result.Detections {
			b.WriteString(detectionLabelStyle.Render(det.Label) + "\n")
			if det.Reason != "" {
				b.WriteString("   " + det.Reason + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(statsSuccessStyle.Render(
			analysis.FormatSuccessMessage(len(result.Detections), provider, result.Stats)))
	} else {
		b.WriteString(statsWarningStyle.Render(
			analysis.FormatWarningMessage(provider, result.Stats, threshold)))
	}

	if result.CleanedText != "" {
		b.WriteString("\n\n")
		b.WriteString(resultsHeaderStyle.Render("Analysis") + "\n\n")
		b.WriteString(result.CleanedText)
	}

	return b.String()
}

func (m *model) refreshResultsView() {
	if m.resultsText == "" {
		m.resultsView.SetContent(chatAssistantStyle.Render(
			"Results will appear here after the first analysis."))
		return
	}
	m.resultsView.SetContent(m.resultsText)
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Chat pane: transcript, then the input line (or loader)
	var chatParts []string
	chatParts = append(chatParts, m.chatView.View())
	if m.analyzing {
		chatParts = append(chatParts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.modelConfig.BorderColor)).
			Render(m.loader.View()))
	} else {
		chatParts = append(chatParts, "> "+m.promptInput.View())
	}
	chatContent := strings.Join(chatParts, "\n")

	chatPane, resultsPane := m.layout.RenderPanes(
		chatContent, m.resultsView.View(), m.focused, m.modelConfig.BorderColor)

	// Titles above panes
	chatTitle := paneTitleStyle.Render("Chat · " + m.modelConfig.DisplayName)
	if m.imagePath != "" {
		chatWidth, _ := m.layout.GetChatDimensions()
		chatTitle += imagePathStyle.Render(truncatePathFromLeft(m.imagePath, chatWidth-20))
	}
	resultsTitle := paneTitleStyle.Render("Analysis Results")

	chatWithTitle := lipgloss.JoinVertical(lipgloss.Left, chatTitle, chatPane)
	resultsWithTitle := lipgloss.JoinVertical(lipgloss.Left, resultsTitle, resultsPane)

	gap := strings.Repeat(" ", horizontalGapWidth)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, chatWithTitle, gap, resultsWithTitle)

	panesWithPadding := lipgloss.NewStyle().
		PaddingTop(topPaddingRows).
		PaddingBottom(bottomSpacerRows).
		PaddingLeft(horizontalMargin).
		PaddingRight(horizontalMargin).
		Render(panes)

	var bottomComponents []string
	bottomComponents = append(bottomComponents, panesWithPadding)
	bottomComponents = append(bottomComponents, m.footer.View())
	for i := 0; i < bottomMarginRows; i++ {
		bottomComponents = append(bottomComponents, "")
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left, bottomComponents...)

	// Overlays, highest priority first
	if m.showTutorial && m.tutorial != nil {
		m.tutorial.SetSize(m.layout.width, m.layout.height)
		return overlay.PlaceOverlay(0, 0, m.tutorial.View(), mainView, true, true)
	}

	if m.showHelp {
		return overlay.PlaceOverlay(0, 0, m.helpDialog.View(), mainView, true, true)
	}

	if m.showAPIKeyDialog && m.apiKeyDialog != nil {
		m.apiKeyDialog.SetSize(m.layout.width, m.layout.height)
		return overlay.PlaceOverlay(0, 0, m.apiKeyDialog.View(), mainView, true, true)
	}

	if m.showModelPicker {
		picker := dialogStyle.Render(m.modelPicker.View())
		return overlay.PlaceOverlay(0, 0, picker, mainView, true, true)
	}

	return mainView
}

// mimeTypeForPath guesses the image MIME type from the file extension
func mimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

func runUI(imagePath, prompt, modelName, stateDir string) error {
	if stateDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to resolve state directory: %v", err)
		}
		stateDir = dir
	}

	store := config.NewStore(stateDir)
	debugLogger := InitDebugLogger(stateDir)

	if modelName != "" {
		if !IsKnownModel(modelName) {
			return fmt.Errorf("unknown model %q", modelName)
		}
		if err := store.SetLastSelectedModel(GetModelConfig(modelName).Name); err != nil {
			DebugLog("failed to persist model flag: %v", err)
		}
	}

	var imageData []byte
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image %s: %v", imagePath, err)
		}
		imageData = data
	}

	p := tea.NewProgram(
		initialModel(store, imagePath, imageData, prompt, debugLogger),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %v", err)
	}
	return nil
}

func main() {
	var (
		prompt    string
		modelName string
		stateDir  string
	)

	rootCmd := &cobra.Command{
		Use:     "landtalk [image]",
		Version: version.Short(),
		Short:   "A terminal UI for AI landscape analysis",
		Long: `LandTalk sends a captured map area image plus your prompt to a
multimodal AI model (Google Gemini or OpenAI GPT) and shows the
detected landscape features with confidence scores and explanations.

Pass the captured area image as the first argument, type a message and
press Enter to analyze. Continue the conversation to refine results.

Press ctrl+t for the tutorial and ctrl+h for keybindings once running.

Examples:
  landtalk capture.png
  landtalk capture.png --prompt "Focus on medieval features"
  landtalk capture.png --model gpt-4o-mini`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			imagePath := ""
			if len(args) == 1 {
				imagePath = args[0]
			}
			return runUI(imagePath, prompt, modelName, stateDir)
		},
	}

	rootCmd.Flags().StringVar(&prompt, "prompt", "", "initial analysis prompt")
	rootCmd.Flags().StringVar(&modelName, "model", "", "AI model to use (gemini-2.5-flash, gemini-2.5-pro, gpt5-mini, gpt-4o-mini)")
	rootCmd.Flags().StringVar(&stateDir, "state-dir", "", "directory for settings, keys and logs (default ~/.landtalk)")

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
