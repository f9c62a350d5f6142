package main

import (
	"testing"

	"landtalk/config"
	"landtalk/llm"

	tea "github.com/charmbracelet/bubbletea"
)

// newSendTestModel builds a model with the first-run tutorial suppressed
// so Enter reaches the send path directly.
func newSendTestModel(t *testing.T, dir string) model {
	t.Helper()
	store := config.NewStore(dir)
	if err := store.SetShowTutorial(false); err != nil {
		t.Fatalf("SetShowTutorial: %v", err)
	}
	return initialModel(store, "capture.png", []byte{0x89}, "", nil)
}

func TestSendWithoutKeyOpensKeyDialog(t *testing.T) {
	m := newSendTestModel(t, t.TempDir())

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updatedModel.(model)

	if !got.showAPIKeyDialog {
		t.Fatalf("expected the key dialog to open when no key is stored")
	}
	if got.apiKeyDialog == nil || got.apiKeyDialog.Provider() != llm.ProviderGemini {
		t.Fatalf("expected key dialog for the active provider")
	}
	if got.analyzing {
		t.Fatalf("no request may be dispatched without an API key")
	}
	if !got.pendingAnalysis {
		t.Fatalf("expected analysis queued behind the key dialog")
	}
	if len(got.chatLog) != 0 {
		t.Fatalf("expected transcript untouched while waiting for a key, got %d entries", len(got.chatLog))
	}
}

func TestAnalysisResumesAfterKeyAccepted(t *testing.T) {
	m := newSendTestModel(t, t.TempDir())

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updatedModel.(model)
	if !got.showAPIKeyDialog {
		t.Fatalf("expected the key dialog to open first")
	}

	updatedModel, cmd := got.Update(APIKeyAcceptedMsg{Provider: llm.ProviderGemini, Key: "test-key"})
	got = updatedModel.(model)

	if got.showAPIKeyDialog {
		t.Fatalf("expected key dialog closed after acceptance")
	}
	if !got.analyzing {
		t.Fatalf("expected the queued analysis to start once the key landed")
	}
	if cmd == nil {
		t.Fatalf("expected an analysis command after key acceptance")
	}
	if got.pendingAnalysis {
		t.Fatalf("expected the queued flag cleared")
	}
	if len(got.chatLog) != 1 || got.chatLog[0].role != "user" {
		t.Fatalf("expected the user turn recorded once the request fired")
	}
}

func TestKeyDialogCancelDropsQueuedAnalysis(t *testing.T) {
	m := newSendTestModel(t, t.TempDir())

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updatedModel.(model)

	updatedModel, _ = got.Update(APIKeyDialogCancelledMsg{})
	got = updatedModel.(model)

	if got.showAPIKeyDialog || got.pendingAnalysis || got.analyzing {
		t.Fatalf("cancelling the key dialog must drop the queued analysis")
	}
}

func TestSendWithStoredKeyStartsImmediately(t *testing.T) {
	dir := t.TempDir()
	m := newSendTestModel(t, dir)
	if err := m.store.SetAPIKey(llm.ProviderGemini, "test-key"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updatedModel.(model)

	if got.showAPIKeyDialog {
		t.Fatalf("key dialog must not open when a key is stored")
	}
	if !got.analyzing || cmd == nil {
		t.Fatalf("expected the analysis to start")
	}
	if len(got.chatLog) != 1 || got.chatLog[0].role != "user" {
		t.Fatalf("expected the user turn in the transcript")
	}
	if got.promptInput.Value() != "" {
		t.Fatalf("expected the input cleared after sending")
	}
}

func TestSendEmptyPromptShowsErrorWithoutDispatch(t *testing.T) {
	m := newSendTestModel(t, t.TempDir())
	if err := m.store.SetAPIKey(llm.ProviderGemini, "test-key"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	m.promptInput.SetValue("   ")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updatedModel.(model)

	if got.analyzing {
		t.Fatalf("a blank prompt must not dispatch a request")
	}
	if len(got.chatLog) != 1 || got.chatLog[0].role != "error" {
		t.Fatalf("expected a single error entry, got %+v", got.chatLog)
	}
	if got.promptInput.Value() != "   " {
		t.Fatalf("expected the input preserved so the user can edit it")
	}
}
