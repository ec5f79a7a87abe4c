// Copyright © 2025 The tzgrid Authors
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tzgrid/tzgrid/country"
	"github.com/tzgrid/tzgrid/logger"
)

// pane identifies which pane has focus in the wizard UI.
type pane int

const (
	// selectedPane is the left pane showing selected countries.
	selectedPane pane = iota
	// availablePane is the right pane showing all known countries.
	availablePane
)

// wizardModel is the Bubbletea model for the country wizard.
type wizardModel struct {
	// Data
	selected  []string        // Currently selected country codes (ordered)
	available []country.Entry // All known countries, sorted by name

	// UI state
	focusedPane     pane
	selectedCursor  int
	availableCursor int

	// Search
	searchMode    bool
	searchQuery   string
	searchResults []int // Indices into available matching the query
	searchCursor  int

	// Dimensions
	width  int
	height int

	// Exit state
	quitting bool
	saved    bool
}

// Key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	ShiftUp   key.Binding
	ShiftDown key.Binding
	Tab       key.Binding
	Space     key.Binding
	Delete    key.Binding
	Search    key.Binding
	Escape    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	ShiftUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑/K", "move up")),
	ShiftDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓/J", "move down")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Space:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete:    key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("del/x", "remove")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel search")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save & quit")),
}

// Styles
var (
	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	checkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("236"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
)

// initWizardModel creates a new wizard model seeded with the current
// country selection.
func initWizardModel(currentCountries []string) wizardModel {
	return wizardModel{
		selected:    append([]string{}, currentCountries...),
		available:   country.All(),
		focusedPane: availablePane,
		width:       80,
		height:      24,
	}
}

// isInSelected checks if a country code is in the selected list.
func (m *wizardModel) isInSelected(code string) bool {
	for _, s := range m.selected {
		if s == code {
			return true
		}
	}
	return false
}

// removeFromSelected removes a specific code from the selected list.
func (m *wizardModel) removeFromSelected(code string) {
	for i, s := range m.selected {
		if s == code {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			break
		}
	}
}

// Init implements tea.Model
func (m wizardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchInput(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.saved = true
			return m, tea.Quit

		case key.Matches(msg, keys.Tab):
			if m.focusedPane == selectedPane {
				m.focusedPane = availablePane
			} else {
				m.focusedPane = selectedPane
			}
			return m, nil

		case key.Matches(msg, keys.Search):
			m.searchMode = true
			m.searchQuery = ""
			m.searchResults = nil
			m.searchCursor = 0
			return m, nil

		case key.Matches(msg, keys.Up):
			m.moveCursorUp()
			return m, nil

		case key.Matches(msg, keys.Down):
			m.moveCursorDown()
			return m, nil

		case key.Matches(msg, keys.ShiftUp):
			if m.focusedPane == selectedPane {
				m.moveSelectedUp()
			}
			return m, nil

		case key.Matches(msg, keys.ShiftDown):
			if m.focusedPane == selectedPane {
				m.moveSelectedDown()
			}
			return m, nil

		case key.Matches(msg, keys.Space):
			m.toggleSelection()
			return m, nil

		case key.Matches(msg, keys.Delete):
			if m.focusedPane == selectedPane {
				m.removeSelected()
			}
			return m, nil
		}
	}

	return m, nil
}

// handleSearchInput handles keyboard input in search mode
func (m wizardModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.searchMode = false
		m.searchQuery = ""
		m.searchResults = nil
		m.searchCursor = 0
		return m, nil

	case msg.String() == "up":
		if len(m.searchResults) > 0 && m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case msg.String() == "down":
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Space):
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			entry := m.available[m.searchResults[m.searchCursor]]
			if m.isInSelected(entry.Code) {
				m.removeFromSelected(entry.Code)
			} else {
				m.selected = append(m.selected, entry.Code)
			}
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		// Jump to the current result in the available pane and exit search.
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			m.availableCursor = m.searchResults[m.searchCursor]
			m.focusedPane = availablePane
		}
		m.searchMode = false
		m.searchQuery = ""
		m.searchResults = nil
		m.searchCursor = 0
		return m, nil

	case msg.Type == tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
			m.performSearch()
		}
		return m, nil

	case msg.Type == tea.KeyRunes:
		m.searchQuery += string(msg.Runes)
		m.performSearch()
		return m, nil
	}

	return m, nil
}

// performSearch matches the query against country names and codes.
func (m *wizardModel) performSearch() {
	m.searchResults = nil
	if m.searchQuery == "" {
		m.searchCursor = 0
		return
	}

	query := strings.ToLower(m.searchQuery)
	for i, entry := range m.available {
		if strings.Contains(strings.ToLower(entry.Name), query) ||
			strings.Contains(strings.ToLower(entry.Code), query) {
			m.searchResults = append(m.searchResults, i)
		}
	}

	if m.searchCursor >= len(m.searchResults) {
		m.searchCursor = 0
	}
}

// moveCursorUp moves the cursor up in the focused pane
func (m *wizardModel) moveCursorUp() {
	if m.focusedPane == selectedPane {
		if m.selectedCursor > 0 {
			m.selectedCursor--
		}
	} else {
		if m.availableCursor > 0 {
			m.availableCursor--
		}
	}
}

// moveCursorDown moves the cursor down in the focused pane
func (m *wizardModel) moveCursorDown() {
	if m.focusedPane == selectedPane {
		if m.selectedCursor < len(m.selected)-1 {
			m.selectedCursor++
		}
	} else {
		if m.availableCursor < len(m.available)-1 {
			m.availableCursor++
		}
	}
}

// moveSelectedUp moves the highlighted country up in the selection order.
func (m *wizardModel) moveSelectedUp() {
	if m.selectedCursor > 0 && len(m.selected) > 1 {
		m.selected[m.selectedCursor], m.selected[m.selectedCursor-1] =
			m.selected[m.selectedCursor-1], m.selected[m.selectedCursor]
		m.selectedCursor--
	}
}

// moveSelectedDown moves the highlighted country down in the selection order.
func (m *wizardModel) moveSelectedDown() {
	if m.selectedCursor < len(m.selected)-1 && len(m.selected) > 1 {
		m.selected[m.selectedCursor], m.selected[m.selectedCursor+1] =
			m.selected[m.selectedCursor+1], m.selected[m.selectedCursor]
		m.selectedCursor++
	}
}

// toggleSelection toggles the country under the cursor.
func (m *wizardModel) toggleSelection() {
	if m.focusedPane == selectedPane {
		m.removeSelected()
		return
	}

	if m.availableCursor >= len(m.available) {
		return
	}
	entry := m.available[m.availableCursor]
	if m.isInSelected(entry.Code) {
		m.removeFromSelected(entry.Code)
	} else {
		m.selected = append(m.selected, entry.Code)
	}
}

// removeSelected removes the country under the cursor from the selection.
func (m *wizardModel) removeSelected() {
	if len(m.selected) == 0 || m.selectedCursor >= len(m.selected) {
		return
	}

	m.selected = append(m.selected[:m.selectedCursor], m.selected[m.selectedCursor+1:]...)

	if m.selectedCursor >= len(m.selected) && m.selectedCursor > 0 {
		m.selectedCursor--
	}
}

// labelFor renders "Name (CODE)" for a country code, falling back to the
// bare code if it no longer resolves.
func labelFor(code string) string {
	entry, err := country.Resolve(code)
	if err != nil {
		return code
	}
	return fmt.Sprintf("%s (%s)", entry.Name, entry.Code)
}

// View implements tea.Model
func (m wizardModel) View() string {
	if m.quitting {
		if m.saved {
			return "Countries saved!\n"
		}
		return "Cancelled.\n"
	}

	totalWidth := m.width - 4
	leftWidth := totalWidth / 3
	rightWidth := totalWidth - leftWidth - 3
	if leftWidth < 30 {
		leftWidth = 30
	}
	if rightWidth < 40 {
		rightWidth = 40
	}

	contentHeight := m.height - 8
	if contentHeight < 10 {
		contentHeight = 10
	}

	leftContent := m.renderSelectedPane(leftWidth-4, contentHeight)
	leftStyle := unfocusedBorderStyle
	if m.focusedPane == selectedPane {
		leftStyle = focusedBorderStyle
	}
	leftPane := leftStyle.Width(leftWidth).Height(contentHeight + 2).Render(leftContent)

	rightContent := m.renderAvailablePane(rightWidth-4, contentHeight)
	rightStyle := unfocusedBorderStyle
	if m.focusedPane == availablePane {
		rightStyle = focusedBorderStyle
	}
	rightPane := rightStyle.Width(rightWidth).Height(contentHeight + 2).Render(rightContent)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane)

	title := titleStyle.Render("🌍 Country Wizard")

	searchBar := ""
	if m.searchMode {
		searchBar = searchStyle.Render(fmt.Sprintf(" 🔍 Search: %s█ ", m.searchQuery))
		if len(m.searchResults) > 0 {
			searchBar += dimStyle.Render(fmt.Sprintf(" (%d matches)", len(m.searchResults)))
		} else if m.searchQuery != "" {
			searchBar += dimStyle.Render(" (no matches)")
		}
		searchBar += "\n"
	}

	help := m.renderHelp()

	return fmt.Sprintf("%s\n%s%s\n%s", title, searchBar, panes, help)
}

// renderSelectedPane renders the left pane with the ordered selection.
func (m wizardModel) renderSelectedPane(width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Selected Countries"))
	b.WriteString("\n")

	if len(m.selected) == 0 {
		b.WriteString(dimStyle.Render("  (none selected)"))
		return b.String()
	}

	startIdx := 0
	visibleCount := height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}
	if m.selectedCursor >= visibleCount {
		startIdx = m.selectedCursor - visibleCount + 1
	}
	endIdx := startIdx + visibleCount
	if endIdx > len(m.selected) {
		endIdx = len(m.selected)
	}

	for i := startIdx; i < endIdx; i++ {
		display := labelFor(m.selected[i])
		maxLen := width - 6
		if len(display) > maxLen && maxLen > 1 {
			display = display[:maxLen-1] + "…"
		}

		line := fmt.Sprintf("  %d. %s", i+1, display)
		if i == m.selectedCursor && m.focusedPane == selectedPane {
			b.WriteString(cursorStyle.Render("► " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if len(m.selected) > visibleCount {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  [%d/%d]", m.selectedCursor+1, len(m.selected))))
	}

	return b.String()
}

// renderAvailablePane renders the right pane: all countries, or search
// results while searching.
func (m wizardModel) renderAvailablePane(width, height int) string {
	if m.searchMode && m.searchQuery != "" {
		return m.renderSearchResults(width, height)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Available Countries"))
	b.WriteString("\n")

	startIdx := 0
	visibleCount := height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}
	if m.availableCursor >= visibleCount {
		startIdx = m.availableCursor - visibleCount + 1
	}
	endIdx := startIdx + visibleCount
	if endIdx > len(m.available) {
		endIdx = len(m.available)
	}

	for i := startIdx; i < endIdx; i++ {
		line := m.renderCountryLine(m.available[i], width)
		if i == m.availableCursor && m.focusedPane == availablePane {
			b.WriteString(cursorStyle.Render("► ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if len(m.available) > visibleCount {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  [%d/%d]", m.availableCursor+1, len(m.available))))
	}

	return b.String()
}

// renderSearchResults renders the filtered country list.
func (m wizardModel) renderSearchResults(width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Search Results (%d)", len(m.searchResults))))
	b.WriteString("\n")

	if len(m.searchResults) == 0 {
		b.WriteString(dimStyle.Render("  No matches found"))
		return b.String()
	}

	startIdx := 0
	visibleCount := height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}
	if m.searchCursor >= visibleCount {
		startIdx = m.searchCursor - visibleCount + 1
	}
	endIdx := startIdx + visibleCount
	if endIdx > len(m.searchResults) {
		endIdx = len(m.searchResults)
	}

	for i := startIdx; i < endIdx; i++ {
		entry := m.available[m.searchResults[i]]
		line := m.renderCountryLine(entry, width)
		line = m.highlightMatch(line)

		if i == m.searchCursor {
			b.WriteString(cursorStyle.Render("► ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if len(m.searchResults) > visibleCount {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  [%d/%d]", m.searchCursor+1, len(m.searchResults))))
	}

	return b.String()
}

// renderCountryLine renders one country with its checkbox.
func (m wizardModel) renderCountryLine(entry country.Entry, width int) string {
	checkBox := "[ ]"
	if m.isInSelected(entry.Code) {
		checkBox = checkStyle.Render("[✓]")
	}

	display := fmt.Sprintf("%s (%s)", entry.Name, entry.Code)
	maxLen := width - 8
	if len(display) > maxLen && maxLen > 1 {
		display = display[:maxLen-1] + "…"
	}

	return fmt.Sprintf("%s %s", checkBox, display)
}

// highlightMatch highlights the search query within a line.
func (m wizardModel) highlightMatch(s string) string {
	if m.searchQuery == "" {
		return s
	}

	lower := strings.ToLower(s)
	queryLower := strings.ToLower(m.searchQuery)
	idx := strings.Index(lower, queryLower)
	if idx == -1 {
		return s
	}

	before := s[:idx]
	match := s[idx : idx+len(m.searchQuery)]
	after := s[idx+len(m.searchQuery):]

	return before + matchStyle.Render(match) + after
}

// renderHelp renders the help bar at the bottom
func (m wizardModel) renderHelp() string {
	if m.searchMode {
		return helpStyle.Render("↑↓: navigate • Space: toggle • Enter: jump to result • Esc: cancel")
	}

	var parts []string
	if m.focusedPane == selectedPane {
		parts = []string{
			"↑↓: navigate",
			"⇧↑↓/JK: reorder",
			"Space/Del: remove",
			"Tab: switch pane",
			"/: search",
			"q: save & quit",
		}
	} else {
		parts = []string{
			"↑↓: navigate",
			"Space: toggle",
			"Tab: switch pane",
			"/: search",
			"q: save & quit",
		}
	}

	return helpStyle.Render(strings.Join(parts, " • "))
}

// runWizard starts the interactive country wizard.
// It returns the selected country codes or nil if cancelled.
func runWizard(v *viper.Viper, log *zerolog.Logger) ([]string, error) {
	// Disable logging before starting the TUI to prevent interference with
	// the display.
	log.Warn().Msg("disabling logging for interactive wizard")
	logger.Disable()

	model := initWizardModel(v.GetStringSlice(selectionKey))

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running wizard: %w", err)
	}

	m, ok := finalModel.(wizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", finalModel)
	}

	if m.saved {
		return m.selected, nil
	}

	return nil, nil
}

// NewWizardCmd creates and returns a new wizard command.
// Each call returns a fresh instance for test isolation.
func NewWizardCmd(v *viper.Viper) *cobra.Command {
	log := logger.GetLogger()

	wizardCmd := &cobra.Command{
		Use:   "wizard",
		Short: "Interactive country selector",
		Long: `Launch an interactive wizard to select the countries shown in the table.

The wizard displays two panes:
  - Left pane: Your currently selected countries (ordered)
  - Right pane: All known countries and multi-zone regions

Navigation:
  - Tab: Switch between panes
  - ↑/↓ or j/k: Navigate up/down
  - Space: Toggle country selection
  - Shift+↑/↓ or J/K: Reorder selected countries
  - Del/Backspace/x: Remove selected country
  - /: Start search mode
  - q: Save and quit

The selection is saved to the config file and used whenever tzgrid runs
without --countries.

Example:
  $ tzgrid wizard`,
	}

	runWizardCmd := func(cmd *cobra.Command, args []string) error {
		selected, err := runWizard(v, log)
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}

		if selected == nil {
			return nil
		}

		v.Set(selectionKey, selected)
		if err := v.WriteConfig(); err != nil {
			log.Error().Err(err).Msg("failed to save config")
			return nil
		}

		fmt.Printf("Saved %d countr(ies) to config.\n", len(selected))
		return nil
	}

	wizardCmd.RunE = runWizardCmd

	return wizardCmd
}
