// Package tabstrip renders the tab row, grouping consecutive tabs under
// their group's colored header chip.
package tabstrip

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"mirage/internal/session"
	"mirage/internal/ui/styles"
)

// maxTitleWidth is the cell budget for one tab title.
const maxTitleWidth = 16

const zonePrefix = "tabstrip-tab:"

// ZoneID returns the bubblezone ID for a tab.
func ZoneID(tabID string) string {
	return zonePrefix + tabID
}

// Model holds the tab strip state.
type Model struct {
	width int
}

// New creates a tab strip.
func New() Model {
	return Model{}
}

// SetWidth sets the rendered width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Clicked resolves a mouse release to the tab it landed on.
func (m Model) Clicked(msg tea.MouseMsg, s session.State) (string, bool) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return "", false
	}
	for _, tab := range s.Tabs {
		if zone.Get(ZoneID(tab.ID)).InBounds(msg) {
			return tab.ID, true
		}
	}
	return "", false
}

// View renders the strip. Tabs appear in session order; the first tab of
// each group run is preceded by the group's header chip, and grouped tabs
// take the group color.
func (m Model) View(s session.State) string {
	var cells []string

	for _, run := range s.Runs() {
		var group *session.TabGroup
		if run.GroupID != "" {
			group = s.GroupByID(run.GroupID)
		}

		if run.Header && group != nil {
			cells = append(cells, styles.GroupHeaderStyle(group.Color).Render(group.Name))
		}

		for _, tab := range run.Tabs {
			cells = append(cells, zone.Mark(ZoneID(tab.ID), m.renderTab(s, tab, group)))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if m.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return row
}

func (m Model) renderTab(s session.State, tab session.Tab, group *session.TabGroup) string {
	label := tab.Title
	if label == "" {
		label = tab.URL
	}
	label = Truncate(label, maxTitleWidth)

	if tab.Favicon != "" {
		label = tab.Favicon + " " + label
	}
	if tab.IsLoading {
		label = "⟳ " + label
	}

	if tab.ID == s.ActiveTabID {
		return styles.TabActiveStyle.Render(label)
	}
	if group != nil {
		return styles.GroupedTabStyle(group.Color).Render(label)
	}
	return styles.TabInactiveStyle.Render(label)
}

// Truncate cuts a string to at most w display cells, appending an ellipsis
// when anything was removed. Grapheme clusters are never split.
func Truncate(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}

	budget := w - 1 // reserve a cell for the ellipsis
	var b strings.Builder
	used := 0

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if used+cw > budget {
			break
		}
		b.WriteString(cluster)
		used += cw
	}

	return b.String() + "…"
}
