// Package groupeditor implements the tab group editing overlay: rename,
// recolor within the fixed palette, or dissolve the group.
package groupeditor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mirage/internal/keys"
	"mirage/internal/session"
	"mirage/internal/ui/styles"
)

// SavedMsg carries the edited name and color back to the browser.
type SavedMsg struct {
	GroupID string
	Name    string
	Color   string
}

// UngroupMsg asks the browser to dissolve the group.
type UngroupMsg struct {
	GroupID string
}

// CanceledMsg closes the editor without changes.
type CanceledMsg struct{}

// Model holds the group editor state.
type Model struct {
	input    textinput.Model
	keymap   keys.GroupEditorKeyMap
	groupID  string
	colorIdx int
	open     bool
}

// New creates a closed editor.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = session.DefaultGroupName
	ti.CharLimit = 32
	ti.Prompt = ""

	return Model{
		input:  ti,
		keymap: keys.DefaultGroupEditorKeyMap(),
	}
}

// Open starts editing a group, prefilled with its current name and color.
func (m Model) Open(group session.TabGroup) (Model, tea.Cmd) {
	m.groupID = group.ID
	m.input.SetValue(group.Name)
	m.input.CursorEnd()
	m.colorIdx = 0
	for i, c := range session.GroupPalette {
		if c == group.Color {
			m.colorIdx = i
			break
		}
	}
	m.open = true
	return m, m.input.Focus()
}

// Close dismisses the editor.
func (m Model) Close() Model {
	m.open = false
	m.input.Blur()
	return m
}

// IsOpen reports whether the editor is showing.
func (m Model) IsOpen() bool {
	return m.open
}

// Update handles key input while the editor is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Save):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = session.DefaultGroupName
		}
		groupID := m.groupID
		color := session.GroupPalette[m.colorIdx]
		m = m.Close()
		return m, func() tea.Msg {
			return SavedMsg{GroupID: groupID, Name: name, Color: color}
		}

	case key.Matches(keyMsg, m.keymap.Cancel):
		m = m.Close()
		return m, func() tea.Msg { return CanceledMsg{} }

	case key.Matches(keyMsg, m.keymap.Ungroup):
		groupID := m.groupID
		m = m.Close()
		return m, func() tea.Msg { return UngroupMsg{GroupID: groupID} }

	case key.Matches(keyMsg, m.keymap.NextColor):
		m.colorIdx = (m.colorIdx + 1) % len(session.GroupPalette)
		return m, nil

	case key.Matches(keyMsg, m.keymap.PrevColor):
		m.colorIdx--
		if m.colorIdx < 0 {
			m.colorIdx = len(session.GroupPalette) - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Color returns the currently selected palette color.
func (m Model) Color() string {
	return session.GroupPalette[m.colorIdx]
}

// View renders the editor box.
func (m Model) View() string {
	if !m.open {
		return ""
	}

	var swatches []string
	for i, c := range session.GroupPalette {
		block := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██")
		if i == m.colorIdx {
			block = lipgloss.NewStyle().Underline(true).Render(block)
		}
		swatches = append(swatches, block)
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Foreground(styles.OverlayTitleColor).Bold(true).Render("Edit tab group"),
		"",
		m.input.View(),
		"",
		strings.Join(swatches, " "),
		"",
		styles.PanelMetaStyle.Render("enter save · esc cancel · ctrl+u remove group"),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(1, 2).
		Render(body)
}
