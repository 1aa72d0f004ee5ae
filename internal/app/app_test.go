package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"mirage/internal/config"
	"mirage/internal/provider"
	"mirage/internal/session"
	"mirage/internal/ui/omnibox"
	"mirage/internal/ui/panels"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(Config{
		Provider: &provider.Static{Suggestions: []string{"golang.org", "golang news"}},
		Cfg:      config.Defaults(),
		Version:  "test",
	})
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// apply runs one update and discards the command.
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func applyCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect executes a command tree and flattens the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findLoaded(t *testing.T, msgs []tea.Msg) pageLoadedMsg {
	t.Helper()
	for _, msg := range msgs {
		if loaded, ok := msg.(pageLoadedMsg); ok {
			return loaded
		}
	}
	t.Fatal("no pageLoadedMsg produced")
	return pageLoadedMsg{}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOmniboxAccept_NavigatesAndCompletes(t *testing.T) {
	m := newTestModel(t)

	m, cmd := applyCmd(t, m, omnibox.AcceptedMsg{Input: "example.com"})
	st := m.State()
	tab := st.ActiveTab()
	require.Equal(t, "https://example.com", tab.URL)
	require.True(t, tab.IsLoading)

	loaded := findLoaded(t, collect(cmd))
	require.Equal(t, tab.ID, loaded.tabID)

	m = apply(t, m, loaded)
	st = m.State()
	tab = st.ActiveTab()
	require.False(t, tab.IsLoading)
	require.NotNil(t, tab.Content)
	require.Equal(t, "example.com", tab.Content.Title)
	require.Len(t, m.State().History, 1)
}

func TestPageLoadFailure_ShowsErrorState(t *testing.T) {
	m := newTestModel(t)

	m, _ = applyCmd(t, m, omnibox.AcceptedMsg{Input: "example.com"})
	tabID := m.State().ActiveTabID
	m = apply(t, m, pageFailedMsg{tabID: tabID, url: "https://example.com", err: os.ErrDeadlineExceeded})

	st := m.State()
	tab := st.ActiveTab()
	require.False(t, tab.IsLoading)
	require.Equal(t, session.ErrPageLoadFailed, tab.Error)
	require.Contains(t, m.View(), "Failed to load page")
}

func TestPageLoadResult_ForClosedTabIsDropped(t *testing.T) {
	m := newTestModel(t)

	m, cmd := applyCmd(t, m, omnibox.AcceptedMsg{Input: "example.com"})
	loaded := findLoaded(t, collect(cmd))

	// Open a second tab and close the one that was still loading.
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m.state = m.state.SetActiveTab(loaded.tabID)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlW})
	st := m.State()
	require.Nil(t, st.TabByID(loaded.tabID))

	before := m.State()
	m = apply(t, m, loaded)
	require.Equal(t, len(before.Tabs), len(m.State().Tabs))
	require.Empty(t, m.State().History)
}

func TestInternalNavigation_NeverHitsProvider(t *testing.T) {
	m := newTestModel(t)

	m, cmd := applyCmd(t, m, omnibox.AcceptedMsg{Input: "about:history"})
	require.Nil(t, cmd)
	st := m.State()
	require.Equal(t, session.PageHistory, st.ActiveTab().URL)
	require.False(t, st.ActiveTab().IsLoading)
}

func TestSuggestions_StaleTokenIgnored(t *testing.T) {
	m := newTestModel(t)
	m.omnibox, _ = m.omnibox.Focus("")

	m = apply(t, m, omnibox.ChangedMsg{Value: "g"})
	m = apply(t, m, omnibox.ChangedMsg{Value: "go"})
	require.Equal(t, 2, m.suggestToken)

	m = apply(t, m, suggestResultMsg{token: 1, value: "g", items: []string{"golang.org"}})
	require.Empty(t, m.omnibox.Suggestions())
}

func TestSuggestTick_OnlyFiresForCurrentInput(t *testing.T) {
	m := newTestModel(t)
	m.omnibox, _ = m.omnibox.Focus("go")

	m = apply(t, m, omnibox.ChangedMsg{Value: "go"})
	token := m.suggestToken

	_, cmd := applyCmd(t, m, suggestTickMsg{token: token - 1, value: "go"})
	require.Nil(t, cmd, "stale token must not fetch")

	_, cmd = applyCmd(t, m, suggestTickMsg{token: token, value: "go"})
	require.NotNil(t, cmd)

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	result, ok := msgs[0].(suggestResultMsg)
	require.True(t, ok)
	require.Contains(t, result.items, "golang.org")
}

func TestSuggestions_InternalInputSkipsDebounce(t *testing.T) {
	m := newTestModel(t)
	m.omnibox, _ = m.omnibox.Focus("")

	_, cmd := applyCmd(t, m, omnibox.ChangedMsg{Value: "about:hist"})
	require.Nil(t, cmd)
}

func TestToggleBookmark_AddsAndRemoves(t *testing.T) {
	m := newTestModel(t)
	m, cmd := applyCmd(t, m, omnibox.AcceptedMsg{Input: "example.com"})
	m = apply(t, m, findLoaded(t, collect(cmd)))

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	st := m.State()
	require.True(t, st.IsBookmarked("https://example.com"))

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	st = m.State()
	require.False(t, st.IsBookmarked("https://example.com"))
}

func TestCycleTab_WrapsAround(t *testing.T) {
	m := newTestModel(t)
	first := m.State().ActiveTabID
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	second := m.State().ActiveTabID

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, first, m.State().ActiveTabID, "cycling past the end wraps to the first tab")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, second, m.State().ActiveTabID)
}

func TestGroupEditor_SaveRenamesGroup(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.True(t, m.groupEditor.IsOpen())
	require.Len(t, m.State().Groups, 1)

	for _, r := range "Research" {
		m = apply(t, m, keyRunes(string(r)))
	}
	m, cmd := applyCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.groupEditor.IsOpen())

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	m = apply(t, m, msgs[0])
	require.Contains(t, m.State().Groups[0].Name, "Research")
}

func TestDevtools_ToggleShowsSourcePane(t *testing.T) {
	m := newTestModel(t)
	m, cmd := applyCmd(t, m, omnibox.AcceptedMsg{Input: "example.com"})
	m = apply(t, m, findLoaded(t, collect(cmd)))

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyF12})
	require.True(t, m.State().DevtoolsOpen)
	require.Contains(t, m.View(), "Devtools")

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyF12})
	require.False(t, m.State().DevtoolsOpen)
}

func TestSettingChanged_PersistsToConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newTestModel(t)
	m.configPath = path

	m = apply(t, m, panels.SettingChangedMsg{
		Key:   panels.SettingSearchEngine,
		Value: "https://duckduckgo.com/?q=%s",
	})
	require.Equal(t, "https://duckduckgo.com/?q=%s", m.cfg.SearchURL)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "duckduckgo.com")
}

func TestSettingChanged_HistoryLimitAppliesImmediately(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, panels.SettingChangedMsg{Key: panels.SettingHistoryLimit, Value: "25"})
	require.Equal(t, 25, m.State().HistoryLimit)
	require.Equal(t, 25, m.cfg.HistoryLimit)
}

func TestDownloadsScanned_UpdatesState(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, downloadsScannedMsg{entries: []session.Download{{
		Filename: "paper.pdf",
		Status:   session.DownloadCompleted,
	}}})
	require.Len(t, m.State().Downloads, 1)
	require.Equal(t, "paper.pdf", m.State().Downloads[0].Filename)
}

func TestEndToEnd_BrowseAndQuit(t *testing.T) {
	m := New(Config{
		Provider: &provider.Static{},
		Cfg:      config.Defaults(),
		Version:  "test",
	})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlL})
	tm.Type("example.com")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("example.com"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
