package panels

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"mirage/internal/session"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func stateWithHistory(t *testing.T) session.State {
	t.Helper()
	s := session.NewState()
	s, _ = s.Navigate(s.ActiveTabID, "https://a.com", false)
	s = s.CompleteNavigation(s.ActiveTabID, session.PageContent{Title: "Site A", HTML: "<p>a</p>"}, time.Now())
	s, _ = s.Navigate(s.ActiveTabID, "https://b.com", false)
	s = s.CompleteNavigation(s.ActiveTabID, session.PageContent{Title: "Site B", HTML: "<p>b</p>"}, time.Now())
	return s
}

func TestHistoryPage_ListsNewestFirst(t *testing.T) {
	s := stateWithHistory(t)
	out := New().SetSize(100, 30).View(s, session.PageHistory, "dev")

	require.Contains(t, out, "Site A")
	require.Contains(t, out, "Site B")
	require.Less(t, strings.Index(out, "Site B"), strings.Index(out, "Site A"), "newest entry should render first")
}

func TestHistoryPage_EnterOpensSelectedEntry(t *testing.T) {
	s := stateWithHistory(t)
	m := New().SetSize(100, 30)

	m, _ = m.Update(keyMsg("down"), s, session.PageHistory)
	_, cmd := m.Update(keyMsg("enter"), s, session.PageHistory)
	require.NotNil(t, cmd)

	msg, ok := cmd().(OpenURLMsg)
	require.True(t, ok)
	require.Equal(t, "https://a.com", msg.URL, "second row is the older entry")
}

func TestHistoryPage_ClearEmitsMsg(t *testing.T) {
	s := stateWithHistory(t)
	m := New()

	_, cmd := m.Update(keyMsg("ctrl+x"), s, session.PageHistory)
	require.NotNil(t, cmd)
	_, ok := cmd().(ClearHistoryMsg)
	require.True(t, ok)
}

func TestBookmarksPage_DeleteEmitsRemoveMsg(t *testing.T) {
	s := session.NewState()
	s = s.ToggleBookmark("https://a.com", "A", "", time.Now())
	m := New()

	_, cmd := m.Update(keyMsg("x"), s, session.PageBookmarks)
	require.NotNil(t, cmd)
	msg, ok := cmd().(RemoveBookmarkMsg)
	require.True(t, ok)
	require.Equal(t, "https://a.com", msg.URL)
}

func TestBookmarksPage_SortCycles(t *testing.T) {
	s := session.NewState()
	m := New()
	require.Equal(t, session.SortDate, m.Sort())

	m, _ = m.Update(keyMsg("s"), s, session.PageBookmarks)
	require.Equal(t, session.SortName, m.Sort())
	m, _ = m.Update(keyMsg("s"), s, session.PageBookmarks)
	require.Equal(t, session.SortURL, m.Sort())
	m, _ = m.Update(keyMsg("s"), s, session.PageBookmarks)
	require.Equal(t, session.SortDate, m.Sort())
}

func TestFilter_NarrowsHistory(t *testing.T) {
	s := stateWithHistory(t)
	m := New().SetSize(100, 30)

	m, _ = m.Update(keyMsg("f"), s, session.PageHistory)
	for _, r := range "a.com" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, s, session.PageHistory)
	}
	m, _ = m.Update(keyMsg("enter"), s, session.PageHistory)

	rows := m.entries(s, session.PageHistory)
	require.Len(t, rows, 1)
	require.Equal(t, "https://a.com", rows[0].url)
}

func TestDownloadsPage_ShowsEntriesAndEmptyState(t *testing.T) {
	s := session.NewState()
	m := New().SetSize(100, 30)
	require.Contains(t, m.View(s, session.PageDownloads, "dev"), "empty")

	s = s.SetDownloads([]session.Download{{
		Filename: "paper.pdf",
		Status:   session.DownloadCompleted,
		Size:     2048,
	}})
	out := m.View(s, session.PageDownloads, "dev")
	require.Contains(t, out, "paper.pdf")
	require.Contains(t, out, "2.0 KiB")
}

func TestVersionPage_ShowsVersion(t *testing.T) {
	out := New().SetSize(80, 20).View(session.NewState(), session.PageVersion, "1.2.3")
	require.Contains(t, out, "1.2.3")
}

func TestSettingsPage_EnterCyclesAndEmitsChange(t *testing.T) {
	s := session.NewState()
	m := New().SetSize(100, 30)

	m, cmd := m.Update(keyMsg("enter"), s, session.PageSettings)
	require.NotNil(t, cmd)
	msg, ok := cmd().(SettingChangedMsg)
	require.True(t, ok)
	require.Equal(t, SettingSearchEngine, msg.Key)
	require.Equal(t, "https://duckduckgo.com/?q=%s", msg.Value)

	// The displayed value advanced too.
	require.Contains(t, m.viewSettings(), "duckduckgo")
}

func TestSyncSettings_InsertsUnknownValue(t *testing.T) {
	m := New().SyncSettings("https://searx.local/?q=%s", "100", "gemini-2.5-flash", "dark")
	require.Contains(t, m.viewSettings(), "searx.local")
}

func TestDevtools_ShowsSourceAndDiffAfterReload(t *testing.T) {
	d := NewDevtools().SetSize(100, 30)

	d = d.Show("tab1|https://a.com", "<p>first generation</p>")
	require.Contains(t, d.View(), "Source")
	require.NotContains(t, d.View(), "Changes since last load")

	d = d.Show("tab1|https://a.com", "<p>second generation</p>")
	require.Contains(t, d.View(), "Changes since last load")
	require.Contains(t, d.View(), "characters")
}

func TestDevtools_ForgetDropsSnapshot(t *testing.T) {
	d := NewDevtools().SetSize(100, 30)
	d = d.Show("k", "<p>one</p>")
	d = d.Forget("k")
	d = d.Show("k", "<p>two</p>")
	require.NotContains(t, d.View(), "Changes since last load")
}
