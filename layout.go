package main

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	topPaddingRows     = 1
	bottomSpacerRows   = 1
	paneTitleRows      = 1
	footerRows         = 1
	bottomMarginRows   = 1
	horizontalMargin   = 2
	horizontalGapWidth = 2
)

// Layout manages the pane layout and dimensions for the UI
type Layout struct {
	width  int
	height int

	// Content dimensions (without borders)
	chatContentWidth    int
	resultsContentWidth int
	contentHeight       int

	// Full pane dimensions (with borders)
	chatWidth    int
	resultsWidth int
	paneHeight   int
}

// NewLayout creates a new layout with the given terminal dimensions
func NewLayout(width, height int) *Layout {
	l := &Layout{
		width:  width,
		height: height,
	}
	l.calculate()
	return l
}

// Update recalculates the layout for new terminal dimensions
func (l *Layout) Update(width, height int) {
	l.width = width
	l.height = height
	l.calculate()
}

// calculate computes all pane dimensions based on terminal size
func (l *Layout) calculate() {
	// Reserve space for non-pane rows (top padding, titles, footer spacing)
	chromeHeight := topPaddingRows + bottomSpacerRows + paneTitleRows + footerRows + bottomMarginRows
	availableHeight := l.height - chromeHeight

	totalHorizontalMargins := horizontalMargin*2 + horizontalGapWidth
	usableWidth := l.width - totalHorizontalMargins
	if usableWidth < 0 {
		usableWidth = 0
	}

	// Get frame dimensions from pane style
	frameWidth := paneBaseStyle.GetHorizontalFrameSize()
	frameHeight := paneBaseStyle.GetVerticalFrameSize()
	minPaneHeight := frameHeight + 1 // At least one line of content inside the frame
	if availableHeight < minPaneHeight {
		availableHeight = minPaneHeight
	}

	// Two columns: chat and results. Subtract the frame width of each
	// to get available content width.
	availableContentWidth := usableWidth - frameWidth*2
	if availableContentWidth < 0 {
		availableContentWidth = 0
	}

	// Split content: 40% chat, 60% results
	l.chatContentWidth = int(float64(availableContentWidth) * 0.40)
	l.resultsContentWidth = availableContentWidth - l.chatContentWidth

	// Calculate full pane widths (with borders)
	l.chatWidth = l.chatContentWidth + frameWidth
	l.resultsWidth = l.resultsContentWidth + frameWidth

	// Calculate heights
	l.paneHeight = availableHeight
	l.contentHeight = availableHeight - frameHeight
	if l.contentHeight < 1 {
		l.contentHeight = 1
	}
}

// RenderPanes renders both panes with the given content
func (l *Layout) RenderPanes(chatContent, resultsContent string, focused focusState, modelColor string) (string, string) {
	chatStyle := paneBaseStyle
	resultsStyle := paneBaseStyle

	// Apply focus styling; the chat pane takes the active model's color
	switch focused {
	case focusChat:
		chatStyle = chatStyle.BorderForeground(lipgloss.Color(modelColor))
	case focusResults:
		resultsStyle = resultsStyle.BorderForeground(lipgloss.Color(borderActive))
	}

	frameHeight := paneBaseStyle.GetVerticalFrameSize()
	contentHeight := l.paneHeight - frameHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	frameWidth := paneBaseStyle.GetHorizontalFrameSize()
	chatContentWidth := l.chatWidth - frameWidth
	resultsContentWidth := l.resultsWidth - frameWidth

	chatWrapped := lipgloss.NewStyle().
		Width(chatContentWidth).
		MaxHeight(contentHeight).
		Render(chatContent)
	chatAligned := lipgloss.PlaceVertical(contentHeight, lipgloss.Top, chatWrapped)
	chatPane := chatStyle.
		Height(l.paneHeight - 2).
		Render(chatAligned)

	resultsWrapped := lipgloss.NewStyle().
		Width(resultsContentWidth).
		MaxHeight(contentHeight).
		Render(resultsContent)
	resultsAligned := lipgloss.PlaceVertical(contentHeight, lipgloss.Top, resultsWrapped)
	resultsPane := resultsStyle.
		Height(l.paneHeight - 2).
		Render(resultsAligned)

	return chatPane, resultsPane
}

// GetChatDimensions returns the content dimensions for the chat pane
func (l *Layout) GetChatDimensions() (width, height int) {
	return l.chatContentWidth, l.contentHeight
}

// GetResultsDimensions returns the content dimensions for the results pane
func (l *Layout) GetResultsDimensions() (width, height int) {
	return l.resultsContentWidth, l.contentHeight
}
