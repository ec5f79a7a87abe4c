// Copyright © 2025 The tzgrid Authors
package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInitWizardModel(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "JPN"})

	if got := len(m.selected); got != 2 {
		t.Errorf("len(selected) = %d, want 2", got)
	}
	if m.selected[0] != "FRA" || m.selected[1] != "JPN" {
		t.Errorf("selected = %v, want [FRA JPN]", m.selected)
	}
	if len(m.available) == 0 {
		t.Error("available country list is empty")
	}
	if m.focusedPane != availablePane {
		t.Errorf("focusedPane = %d, want availablePane", m.focusedPane)
	}
}

func TestInitWizardModelCopiesInput(t *testing.T) {
	t.Parallel()
	input := []string{"FRA", "JPN"}
	m := initWizardModel(input)
	m.selected[0] = "DEU"
	if input[0] != "FRA" {
		t.Error("initWizardModel did not copy the input slice")
	}
}

func TestIsInSelected(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "USA-E"})

	tests := []struct {
		code string
		want bool
	}{
		{"FRA", true},
		{"USA-E", true},
		{"JPN", false},
		{"USA-P", false},
	}
	for _, tc := range tests {
		if got := m.isInSelected(tc.code); got != tc.want {
			t.Errorf("isInSelected(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestToggleSelection(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)
	m.focusedPane = availablePane
	m.availableCursor = 0

	code := m.available[0].Code

	m.toggleSelection()
	if !m.isInSelected(code) {
		t.Fatalf("expected %q to be selected after toggle", code)
	}

	m.toggleSelection()
	if m.isInSelected(code) {
		t.Errorf("expected %q to be deselected after second toggle", code)
	}
}

func TestRemoveSelected(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "JPN", "IND"})
	m.focusedPane = selectedPane
	m.selectedCursor = 1

	m.removeSelected()

	if got := len(m.selected); got != 2 {
		t.Fatalf("len(selected) = %d, want 2", got)
	}
	if m.selected[0] != "FRA" || m.selected[1] != "IND" {
		t.Errorf("selected = %v, want [FRA IND]", m.selected)
	}
}

func TestRemoveSelectedLastEntryMovesCursor(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "JPN"})
	m.selectedCursor = 1

	m.removeSelected()

	if m.selectedCursor != 0 {
		t.Errorf("selectedCursor = %d, want 0", m.selectedCursor)
	}
}

func TestRemoveSelectedEmptyList(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)
	m.removeSelected() // must not panic
	if len(m.selected) != 0 {
		t.Errorf("selected = %v, want empty", m.selected)
	}
}

func TestMoveSelectedReorder(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "JPN", "IND"})
	m.selectedCursor = 1

	m.moveSelectedUp()
	if m.selected[0] != "JPN" || m.selected[1] != "FRA" {
		t.Errorf("after moveSelectedUp: %v, want [JPN FRA IND]", m.selected)
	}
	if m.selectedCursor != 0 {
		t.Errorf("selectedCursor = %d, want 0", m.selectedCursor)
	}

	m.moveSelectedDown()
	if m.selected[0] != "FRA" || m.selected[1] != "JPN" {
		t.Errorf("after moveSelectedDown: %v, want [FRA JPN IND]", m.selected)
	}
	if m.selectedCursor != 1 {
		t.Errorf("selectedCursor = %d, want 1", m.selectedCursor)
	}
}

func TestMoveSelectedUpAtTop(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA", "JPN"})
	m.selectedCursor = 0

	m.moveSelectedUp()

	if m.selected[0] != "FRA" {
		t.Errorf("selected = %v, want order unchanged", m.selected)
	}
}

func TestPerformSearch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		query     string
		wantEmpty bool
	}{
		{"by name", "france", false},
		{"by code", "FRA", false},
		{"case insensitive", "jApAn", false},
		{"multi-zone code", "usa-e", false},
		{"no match", "zzzzzz", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := initWizardModel(nil)
			m.searchQuery = tc.query
			m.performSearch()

			if tc.wantEmpty && len(m.searchResults) != 0 {
				t.Errorf("got %d results, want none", len(m.searchResults))
			}
			if !tc.wantEmpty && len(m.searchResults) == 0 {
				t.Error("got no results, want at least one")
			}
		})
	}
}

func TestPerformSearchEmptyQuery(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)
	m.searchQuery = ""
	m.performSearch()
	if m.searchResults != nil {
		t.Errorf("searchResults = %v, want nil", m.searchResults)
	}
}

func TestUpdateTabSwitchesPane(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := updated.(wizardModel)
	if got.focusedPane != selectedPane {
		t.Errorf("focusedPane = %d, want selectedPane", got.focusedPane)
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyTab})
	got = updated.(wizardModel)
	if got.focusedPane != availablePane {
		t.Errorf("focusedPane = %d, want availablePane", got.focusedPane)
	}
}

func TestUpdateQuitSaves(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA"})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	got := updated.(wizardModel)

	if !got.quitting || !got.saved {
		t.Errorf("quitting = %v, saved = %v, want both true", got.quitting, got.saved)
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestUpdateSearchModeTyping(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	got := updated.(wizardModel)
	if !got.searchMode {
		t.Fatal("expected search mode after /")
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fra")})
	got = updated.(wizardModel)
	if got.searchQuery != "fra" {
		t.Errorf("searchQuery = %q, want %q", got.searchQuery, "fra")
	}
	if len(got.searchResults) == 0 {
		t.Error("expected search results for query fra")
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyEscape})
	got = updated.(wizardModel)
	if got.searchMode {
		t.Error("expected search mode to end after esc")
	}
}

func TestLabelFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want string
	}{
		{"FRA", "France (FRA)"},
		{"USA-E", "United States (Eastern) (USA-E)"},
		{"XXX", "XXX"},
	}
	for _, tc := range tests {
		if got := labelFor(tc.code); got != tc.want {
			t.Errorf("labelFor(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestViewContainsPanes(t *testing.T) {
	t.Parallel()
	m := initWizardModel([]string{"FRA"})
	m.width = 100
	m.height = 30

	view := m.View()
	if !strings.Contains(view, "Selected Countries") {
		t.Error("view missing selected pane title")
	}
	if !strings.Contains(view, "Available Countries") {
		t.Error("view missing available pane title")
	}
}

func TestViewQuitting(t *testing.T) {
	t.Parallel()
	m := initWizardModel(nil)
	m.quitting = true
	m.saved = true

	if got := m.View(); !strings.Contains(got, "saved") {
		t.Errorf("view = %q, want save confirmation", got)
	}
}
