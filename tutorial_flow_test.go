package main

import (
	"testing"

	"landtalk/config"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, dir string) model {
	t.Helper()
	store := config.NewStore(dir)
	return initialModel(store, "", nil, "", nil)
}

func TestTutorialShownOnFirstRun(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	if !m.showTutorial {
		t.Fatalf("expected tutorial to be shown on first run")
	}
	if m.tutorialManual {
		t.Fatalf("first-run tutorial must not be marked manual")
	}
}

func TestTutorialSuppressedAfterSettingCleared(t *testing.T) {
	dir := t.TempDir()
	store := config.NewStore(dir)
	if err := store.SetShowTutorial(false); err != nil {
		t.Fatalf("SetShowTutorial: %v", err)
	}

	m := newTestModel(t, dir)
	if m.showTutorial {
		t.Fatalf("expected tutorial suppressed when show_tutorial is false")
	}
}

func TestTutorialDontShowAgainPersists(t *testing.T) {
	dir := t.TempDir()
	initial := newTestModel(t, dir)
	if !initial.showTutorial {
		t.Fatalf("expected tutorial shown initially")
	}

	// Toggle the checkbox, then close the dialog.
	updatedModel, _ := initial.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	got := updatedModel.(model)
	if !got.tutorial.DontShowAgain() {
		t.Fatalf("expected checkbox toggled after pressing d")
	}

	updatedModel, cmd := got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got = updatedModel.(model)
	if cmd == nil {
		t.Fatalf("expected close command from tutorial dialog")
	}

	closeMsg := cmd()
	closed, ok := closeMsg.(TutorialClosedMsg)
	if !ok {
		t.Fatalf("expected TutorialClosedMsg, got %T", closeMsg)
	}
	if !closed.DontShowAgain {
		t.Fatalf("expected DontShowAgain set in close message")
	}

	updatedModel, _ = got.Update(closed)
	got = updatedModel.(model)
	if got.showTutorial {
		t.Fatalf("expected tutorial hidden after close")
	}

	// A fresh store must read the persisted suppression.
	reloaded := config.NewStore(dir)
	if reloaded.Settings().ShowTutorial {
		t.Fatalf("expected show_tutorial persisted as false")
	}
}

func TestTutorialCloseWithoutCheckboxKeepsSetting(t *testing.T) {
	dir := t.TempDir()
	initial := newTestModel(t, dir)

	updatedModel, cmd := initial.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updatedModel.(model)

	closed := cmd().(TutorialClosedMsg)
	if closed.DontShowAgain {
		t.Fatalf("checkbox was never toggled")
	}
	updatedModel, _ = got.Update(closed)
	got = updatedModel.(model)
	if got.showTutorial {
		t.Fatalf("expected tutorial hidden after close")
	}

	if !config.NewStore(dir).Settings().ShowTutorial {
		t.Fatalf("closing without the checkbox must not suppress the tutorial")
	}
}

func TestManualTutorialOpensWhenSuppressed(t *testing.T) {
	dir := t.TempDir()
	store := config.NewStore(dir)
	if err := store.SetShowTutorial(false); err != nil {
		t.Fatalf("SetShowTutorial: %v", err)
	}

	m := newTestModel(t, dir)
	if m.showTutorial {
		t.Fatalf("expected tutorial suppressed at startup")
	}

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	got := updatedModel.(model)
	if !got.showTutorial {
		t.Fatalf("expected manual invocation to open the tutorial")
	}
	if !got.tutorialManual {
		t.Fatalf("expected dialog marked as manually opened")
	}

	// Closing without the checkbox must leave the suppression in place.
	updatedModel, cmd := got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got = updatedModel.(model)
	updatedModel, _ = got.Update(cmd().(TutorialClosedMsg))
	got = updatedModel.(model)

	if config.NewStore(dir).Settings().ShowTutorial {
		t.Fatalf("manual open must not re-enable the tutorial")
	}
}

func TestTutorialTabSwitching(t *testing.T) {
	dialog := NewTutorialDialog()

	updated, _ := dialog.Update(tea.KeyMsg{Type: tea.KeyTab})
	dialog = updated.(*TutorialDialog)
	if dialog.ActiveTab() != 1 {
		t.Fatalf("expected tab 1 after tab key, got %d", dialog.ActiveTab())
	}

	updated, _ = dialog.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	dialog = updated.(*TutorialDialog)
	if dialog.ActiveTab() != 0 {
		t.Fatalf("expected tab 0 after shift+tab, got %d", dialog.ActiveTab())
	}
}
