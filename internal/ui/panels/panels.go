// Package panels renders the internal about: pages: home, history,
// bookmarks, downloads, version, and settings, plus the devtools pane.
package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mirage/internal/keys"
	"mirage/internal/session"
	"mirage/internal/ui/styles"
)

// OpenURLMsg asks the browser to navigate the active tab.
type OpenURLMsg struct {
	URL string
}

// RemoveBookmarkMsg asks the browser to delete a bookmark.
type RemoveBookmarkMsg struct {
	URL string
}

// ClearHistoryMsg asks the browser to wipe the global history.
type ClearHistoryMsg struct{}

// SettingChangedMsg reports that the user picked a new value on the
// settings page.
type SettingChangedMsg struct {
	Key   string
	Value string
}

// Model holds the shared state of all internal page panels.
type Model struct {
	keymap    keys.PanelKeyMap
	filter    textinput.Model
	filtering bool
	selected  int
	sort      session.BookmarkSort
	settings  settingsState
	width     int
	height    int
}

// New creates the panels model.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	return Model{
		keymap:   keys.DefaultPanelKeyMap(),
		filter:   ti,
		sort:     session.SortDate,
		settings: defaultSettings(),
	}
}

// SetSize updates the panel dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Reset clears selection and filter state, for when the shown page changes.
func (m Model) Reset() Model {
	m.selected = 0
	m.filtering = false
	m.filter.SetValue("")
	m.filter.Blur()
	return m
}

// Sort returns the active bookmark sort order.
func (m Model) Sort() session.BookmarkSort {
	return m.sort
}

// entry is one selectable row on a list page.
type entry struct {
	label string
	url   string
}

// entries builds the selectable rows for a list page.
func (m Model) entries(s session.State, url string) []entry {
	switch url {
	case session.PageHistory:
		var out []entry
		needle := strings.ToLower(m.filter.Value())
		for _, h := range s.History {
			if needle != "" &&
				!strings.Contains(strings.ToLower(h.Title), needle) &&
				!strings.Contains(strings.ToLower(h.URL), needle) {
				continue
			}
			out = append(out, entry{label: historyLabel(h), url: h.URL})
		}
		return out

	case session.PageBookmarks:
		var out []entry
		for _, b := range session.FilterBookmarks(s.Bookmarks, m.filter.Value(), m.sort) {
			out = append(out, entry{label: bookmarkLabel(b), url: b.URL})
		}
		return out

	case session.PageSettings:
		var out []entry
		for _, item := range m.settings.items {
			out = append(out, entry{label: item.key})
		}
		return out

	default:
		return nil
	}
}

// Update handles key input while an internal list page is showing.
func (m Model) Update(msg tea.Msg, s session.State, url string) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch {
		case key.Matches(keyMsg, m.keymap.Close) || keyMsg.Type == tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.selected = 0
		return m, cmd
	}

	rows := m.entries(s, url)

	switch {
	case key.Matches(keyMsg, m.keymap.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(keyMsg, m.keymap.Down):
		if m.selected < len(rows)-1 {
			m.selected++
		}

	case key.Matches(keyMsg, m.keymap.Open):
		if url == session.PageSettings {
			return m.cycleSetting()
		}
		if m.selected < len(rows) && rows[m.selected].url != "" {
			target := rows[m.selected].url
			return m, func() tea.Msg { return OpenURLMsg{URL: target} }
		}

	case key.Matches(keyMsg, m.keymap.Delete):
		if url == session.PageBookmarks && m.selected < len(rows) {
			target := rows[m.selected].url
			if m.selected == len(rows)-1 && m.selected > 0 {
				m.selected--
			}
			return m, func() tea.Msg { return RemoveBookmarkMsg{URL: target} }
		}

	case key.Matches(keyMsg, m.keymap.Filter):
		if url == session.PageHistory || url == session.PageBookmarks {
			m.filtering = true
			m.selected = 0
			return m, m.filter.Focus()
		}

	case key.Matches(keyMsg, m.keymap.Sort):
		if url == session.PageBookmarks {
			m.sort = nextSort(m.sort)
			m.selected = 0
		}

	case key.Matches(keyMsg, m.keymap.Clear):
		if url == session.PageHistory {
			m.selected = 0
			return m, func() tea.Msg { return ClearHistoryMsg{} }
		}
	}

	return m, nil
}

// nextSort cycles date, name, url.
func nextSort(s session.BookmarkSort) session.BookmarkSort {
	switch s {
	case session.SortDate:
		return session.SortName
	case session.SortName:
		return session.SortURL
	default:
		return session.SortDate
	}
}

// View renders the internal page at url.
func (m Model) View(s session.State, url, version string) string {
	switch url {
	case session.PageHome:
		return m.viewHome()
	case session.PageHistory:
		return m.viewList("History", m.entries(s, url), m.historyFooter(s))
	case session.PageBookmarks:
		return m.viewList("Bookmarks", m.entries(s, url), m.bookmarksFooter())
	case session.PageDownloads, session.PageDownloadsFolder:
		return m.viewDownloads(s)
	case session.PageVersion:
		return m.viewVersion(version)
	case session.PageSettings:
		return m.viewSettings()
	default:
		return styles.ErrorStyle.Render("Unknown internal page: " + url)
	}
}

func (m Model) viewHome() string {
	lines := []string{
		styles.PanelTitleStyle.Render("mirage"),
		"",
		styles.PanelMetaStyle.Render("an imaginary corner of the web"),
		"",
		styles.PanelMetaStyle.Render("ctrl+l  search or enter address"),
		styles.PanelMetaStyle.Render("ctrl+t  new tab"),
		styles.PanelMetaStyle.Render("?       all keybindings"),
	}
	content := strings.Join(lines, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewList(title string, rows []entry, footer string) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitleStyle.Render(title))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString("\n" + styles.PanelMetaStyle.Render("  nothing here yet"))
	}

	visible := maxVisible(m.height)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	for i := start; i < len(rows) && i < start+visible; i++ {
		b.WriteString("\n")
		if i == m.selected {
			b.WriteString(styles.PanelEntrySelectedStyle.Render("> " + rows[i].label))
		} else {
			b.WriteString(styles.PanelEntryStyle.Render("  " + rows[i].label))
		}
	}

	if footer != "" {
		b.WriteString("\n\n" + styles.PanelMetaStyle.Render(footer))
	}
	return b.String()
}

func (m Model) historyFooter(s session.State) string {
	return fmt.Sprintf("%d entries · enter open · f filter · ctrl+x clear", len(s.History))
}

func (m Model) bookmarksFooter() string {
	return fmt.Sprintf("sort: %s · enter open · x remove · f filter · s sort", m.sort)
}

func (m Model) viewDownloads(s session.State) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitleStyle.Render("Downloads"))

	if len(s.Downloads) == 0 {
		b.WriteString("\n\n" + styles.PanelMetaStyle.Render("  the downloads folder is empty"))
		return b.String()
	}

	for _, d := range s.Downloads {
		b.WriteString("\n" + styles.PanelEntryStyle.Render("  "+downloadLabel(d)))
	}
	return b.String()
}

func (m Model) viewVersion(version string) string {
	rows := []string{
		styles.PanelTitleStyle.Render("About mirage"),
		"",
		"  version   " + version,
		"  engine    generative content provider",
		"  ui        bubbletea",
	}
	return strings.Join(rows, "\n")
}

func historyLabel(h session.HistoryEntry) string {
	title := h.Title
	if title == "" {
		title = h.URL
	}
	return fmt.Sprintf("%-40s %s", truncatePad(title, 40), h.URL)
}

func bookmarkLabel(b session.Bookmark) string {
	title := b.Title
	if title == "" {
		title = b.URL
	}
	star := "★ "
	if b.Favicon != "" {
		star = b.Favicon + " "
	}
	return star + fmt.Sprintf("%-36s %s", truncatePad(title, 36), b.URL)
}

func downloadLabel(d session.Download) string {
	status := string(d.Status)
	if d.Status == session.DownloadInProgress {
		status = fmt.Sprintf("%s %d%%", status, int(d.Progress*100))
	}
	return fmt.Sprintf("%-32s %10s  %s", truncatePad(d.Filename, 32), formatSize(d.Size), status)
}

// formatSize renders a byte count with a binary unit suffix.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for x := n / unit; x >= unit; x /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// truncatePad fits s into exactly w display cells.
func truncatePad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func maxVisible(height int) int {
	if height <= 6 {
		return 10
	}
	return height - 6
}
