// Package omnibox implements the combined address and search bar with its
// suggestion dropdown.
package omnibox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mirage/internal/keys"
	"mirage/internal/ui/styles"
)

// AcceptedMsg is emitted when the user submits the omnibox.
type AcceptedMsg struct {
	// Input is the raw text, or the highlighted suggestion if one was
	// selected.
	Input string
}

// CanceledMsg is emitted when the user dismisses the omnibox.
type CanceledMsg struct{}

// ChangedMsg is emitted whenever the typed text changes, so the owner can
// debounce a suggestion request.
type ChangedMsg struct {
	Value string
}

// Model holds the omnibox state.
type Model struct {
	input       textinput.Model
	keymap      keys.OmniboxKeyMap
	suggestions []string
	selected    int
	width       int
}

// New creates an unfocused omnibox.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search or enter address"
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)
	ti.Prompt = ""

	return Model{
		input:    ti,
		keymap:   keys.DefaultOmniboxKeyMap(),
		selected: -1,
	}
}

// Focus activates the omnibox pre-filled with the current URL, cursor at
// the end.
func (m Model) Focus(url string) (Model, tea.Cmd) {
	m.input.SetValue(url)
	m.input.CursorEnd()
	m.suggestions = nil
	m.selected = -1
	return m, m.input.Focus()
}

// Blur deactivates the omnibox and clears the dropdown.
func (m Model) Blur() Model {
	m.input.Blur()
	m.suggestions = nil
	m.selected = -1
	return m
}

// Focused reports whether the omnibox has input focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the current typed text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetWidth sets the rendered width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	m.input.Width = max(width-6, 10)
	return m
}

// SetSuggestions replaces the dropdown contents. Results for stale input
// are dropped so a slow response never clobbers newer typing.
func (m Model) SetSuggestions(forValue string, items []string) Model {
	if forValue != m.input.Value() {
		return m
	}
	m.suggestions = items
	m.selected = -1
	return m
}

// Suggestions returns the current dropdown contents.
func (m Model) Suggestions() []string {
	return m.suggestions
}

// Selected returns the highlighted suggestion index, -1 for none.
func (m Model) Selected() int {
	return m.selected
}

// Update handles key input while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Accept):
		text := m.input.Value()
		if m.selected >= 0 && m.selected < len(m.suggestions) {
			text = m.suggestions[m.selected]
		}
		return m, func() tea.Msg { return AcceptedMsg{Input: text} }

	case key.Matches(keyMsg, m.keymap.Cancel):
		return m, func() tea.Msg { return CanceledMsg{} }

	case key.Matches(keyMsg, m.keymap.NextSuggestion):
		if len(m.suggestions) > 0 {
			m.selected = (m.selected + 1) % len(m.suggestions)
		}
		return m, nil

	case key.Matches(keyMsg, m.keymap.PrevSuggestion):
		if len(m.suggestions) > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.suggestions) - 1
			}
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()

	if after == before {
		return m, cmd
	}

	// Any edit invalidates the old dropdown.
	m.suggestions = nil
	m.selected = -1

	value := after
	changed := func() tea.Msg { return ChangedMsg{Value: value} }
	return m, tea.Batch(cmd, changed)
}

// View renders the address bar and, when focused, the suggestion dropdown.
func (m Model) View() string {
	box := styles.OmniboxStyle
	if m.input.Focused() {
		box = styles.OmniboxFocusedStyle
	}
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}

	var b strings.Builder
	b.WriteString(box.Render(m.input.View()))

	if m.input.Focused() {
		for i, s := range m.suggestions {
			b.WriteString("\n")
			if i == m.selected {
				b.WriteString(styles.SuggestionSelectedStyle.Render("> " + s))
			} else {
				b.WriteString(styles.SuggestionStyle.Render("  " + s))
			}
		}
	}

	return b.String()
}
