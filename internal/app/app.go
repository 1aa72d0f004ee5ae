// Package app contains the root application model. It routes input to the
// focused component, reduces session state, and reconciles asynchronous
// page loads back into the UI.
package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mirage/internal/config"
	"mirage/internal/downloads"
	"mirage/internal/keys"
	"mirage/internal/log"
	"mirage/internal/provider"
	"mirage/internal/pubsub"
	"mirage/internal/session"
	"mirage/internal/tracing"
	"mirage/internal/ui/groupeditor"
	"mirage/internal/ui/logoverlay"
	"mirage/internal/ui/omnibox"
	"mirage/internal/ui/overlay"
	"mirage/internal/ui/page"
	"mirage/internal/ui/panels"
	"mirage/internal/ui/styles"
	"mirage/internal/ui/tabstrip"
	"mirage/internal/ui/toaster"
)

// Config carries the dependencies for the root model.
type Config struct {
	Provider   provider.Provider
	Cfg        config.Config
	ConfigPath string
	Version    string
	Tracing    *tracing.Provider
	Downloads  *downloads.Watcher
}

// Model is the root application state.
type Model struct {
	state      session.State
	provider   provider.Provider
	tracer     trace.Tracer
	cfg        config.Config
	configPath string
	version    string

	omnibox     omnibox.Model
	tabs        tabstrip.Model
	page        page.Model
	panels      panels.Model
	devtools    panels.Devtools
	groupEditor groupeditor.Model
	logOverlay  logoverlay.Model
	toast       toaster.Model
	help        help.Model
	keymap      keys.BrowserKeyMap

	// suggestToken increments on every omnibox edit so only the newest
	// pending suggestion request survives the debounce.
	suggestToken int

	dlWatcher  *downloads.Watcher
	dlCancel   context.CancelFunc
	dlListener *pubsub.ContinuousListener[downloads.ChangedEvent]

	width  int
	height int
}

// New creates the root model.
func New(cfg Config) Model {
	state := session.NewState()
	if cfg.Cfg.HistoryLimit > 0 {
		state.HistoryLimit = cfg.Cfg.HistoryLimit
	}

	tracer := noop.NewTracerProvider().Tracer("noop")
	if cfg.Tracing != nil {
		tracer = cfg.Tracing.Tracer()
	}

	var (
		dlCancel   context.CancelFunc
		dlListener *pubsub.ContinuousListener[downloads.ChangedEvent]
	)
	if cfg.Downloads != nil {
		ctx, cancel := context.WithCancel(context.Background())
		dlCancel = cancel
		dlListener = pubsub.NewContinuousListener(ctx, cfg.Downloads.Broker())
	}

	p := panels.New().SyncSettings(
		cfg.Cfg.SearchURL,
		strconv.Itoa(cfg.Cfg.HistoryLimit),
		cfg.Cfg.Provider.Model,
		cfg.Cfg.UI.MarkdownStyle,
	)

	return Model{
		state:      state,
		provider:   cfg.Provider,
		tracer:     tracer,
		cfg:        cfg.Cfg,
		configPath: cfg.ConfigPath,
		version:    cfg.Version,

		omnibox:     omnibox.New(),
		tabs:        tabstrip.New(),
		page:        page.New(cfg.Cfg.UI.MarkdownStyle),
		panels:      p,
		devtools:    panels.NewDevtools(),
		groupEditor: groupeditor.New(),
		logOverlay:  logoverlay.New(),
		toast:       toaster.New(),
		help:        help.New(),
		keymap:      keys.DefaultBrowserKeyMap(),

		dlWatcher:  cfg.Downloads,
		dlCancel:   dlCancel,
		dlListener: dlListener,
	}
}

// State exposes the current session state for tests.
func (m Model) State() session.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.dlListener != nil {
		cmds = append(cmds, m.dlListener.Listen())
		cmds = append(cmds, scanDownloadsCmd(m.cfg.DownloadsDir))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case tea.MouseMsg:
		if tabID, ok := m.tabs.Clicked(msg, m.state); ok {
			m.state = m.state.SetActiveTab(tabID)
			return m.syncActive()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd

	// Omnibox.
	case omnibox.AcceptedMsg:
		m.omnibox = m.omnibox.Blur()
		return m.navigateTo(msg.Input)
	case omnibox.CanceledMsg:
		m.omnibox = m.omnibox.Blur()
		return m, nil
	case omnibox.ChangedMsg:
		return m.debounceSuggest(msg.Value)
	case suggestTickMsg:
		if msg.token == m.suggestToken && m.omnibox.Focused() && m.omnibox.Value() == msg.value {
			return m, m.suggestCmd(msg.token, msg.value)
		}
		return m, nil
	case suggestResultMsg:
		if msg.token == m.suggestToken {
			m.omnibox = m.omnibox.SetSuggestions(msg.value, msg.items)
		}
		return m, nil

	// Async page loads.
	case pageLoadedMsg:
		return m.applyPageLoaded(msg)
	case pageFailedMsg:
		return m.applyPageFailed(msg)

	// Panel requests.
	case panels.OpenURLMsg:
		return m.navigateTo(msg.URL)
	case panels.RemoveBookmarkMsg:
		m.state = m.state.ToggleBookmark(msg.URL, "", "", time.Now())
		return m.showToast("Bookmark removed", toaster.StyleInfo)
	case panels.ClearHistoryMsg:
		m.state = m.state.ClearHistory()
		return m.showToast("History cleared", toaster.StyleInfo)
	case panels.SettingChangedMsg:
		return m.applySetting(msg)

	// Group editor.
	case groupeditor.SavedMsg:
		m.state = m.state.RenameGroup(msg.GroupID, msg.Name)
		m.state = m.state.RecolorGroup(msg.GroupID, msg.Color)
		return m, nil
	case groupeditor.UngroupMsg:
		m.state = m.state.Ungroup(msg.GroupID)
		return m, nil
	case groupeditor.CanceledMsg:
		return m, nil

	// Downloads folder.
	case pubsub.Event[downloads.ChangedEvent]:
		cmds := []tea.Cmd{scanDownloadsCmd(m.cfg.DownloadsDir)}
		if m.dlListener != nil {
			cmds = append(cmds, m.dlListener.Listen())
		}
		return m, tea.Batch(cmds...)
	case downloadsScannedMsg:
		if msg.err != nil {
			log.Warn(log.CatDownloads, "Downloads scan failed", "error", msg.err)
			return m, nil
		}
		m.state = m.state.SetDownloads(msg.entries)
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case toaster.DismissMsg:
		m.toast = m.toast.Hide()
		return m, nil
	}

	return m, nil
}

// handleKey routes a keypress to the focused component.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.shutdown()
		return m, tea.Quit
	}

	if m.groupEditor.IsOpen() {
		var cmd tea.Cmd
		m.groupEditor, cmd = m.groupEditor.Update(msg)
		return m, cmd
	}

	if m.omnibox.Focused() {
		var cmd tea.Cmd
		m.omnibox, cmd = m.omnibox.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.NewTab):
		m.state = m.state.CreateTab("")
		m.panels = m.panels.Reset()
		return m.syncActive()

	case key.Matches(msg, m.keymap.CloseTab):
		if tab := m.state.ActiveTab(); tab != nil {
			m.devtools = m.devtools.Forget(devtoolsKey(tab))
		}
		m.state = m.state.CloseTab(m.state.ActiveTabID)
		return m.syncActive()

	case key.Matches(msg, m.keymap.DuplicateTab):
		m.state = m.state.DuplicateTab(m.state.ActiveTabID)
		return m.reloadActive()

	case key.Matches(msg, m.keymap.NextTab):
		return m.cycleTab(1)

	case key.Matches(msg, m.keymap.PrevTab):
		return m.cycleTab(-1)

	case key.Matches(msg, m.keymap.Back):
		var target session.Target
		m.state, target = m.state.GoBack(m.state.ActiveTabID)
		return m.afterNavigate(target)

	case key.Matches(msg, m.keymap.Forward):
		var target session.Target
		m.state, target = m.state.GoForward(m.state.ActiveTabID)
		return m.afterNavigate(target)

	case key.Matches(msg, m.keymap.Reload):
		return m.reloadActive()

	case key.Matches(msg, m.keymap.FocusOmnibox):
		url := ""
		if tab := m.state.ActiveTab(); tab != nil && tab.URL != session.PageHome {
			url = tab.URL
		}
		var cmd tea.Cmd
		m.omnibox, cmd = m.omnibox.Focus(url)
		return m, cmd

	case key.Matches(msg, m.keymap.Bookmark):
		return m.toggleBookmark()

	case key.Matches(msg, m.keymap.Bookmarks):
		return m.navigateTo(session.PageBookmarks)

	case key.Matches(msg, m.keymap.History):
		return m.navigateTo(session.PageHistory)

	case key.Matches(msg, m.keymap.Downloads):
		return m.navigateTo(session.PageDownloads)

	case key.Matches(msg, m.keymap.Home):
		return m.navigateTo(session.PageHome)

	case key.Matches(msg, m.keymap.GroupTab):
		return m.openGroupEditor()

	case key.Matches(msg, m.keymap.Devtools):
		return m.toggleDevtools()

	case key.Matches(msg, m.keymap.DebugLog):
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Toggle()
		return m, cmd

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Remaining keys go to the showing pane.
	if tab := m.state.ActiveTab(); tab != nil && session.IsInternal(tab.URL) {
		var cmd tea.Cmd
		m.panels, cmd = m.panels.Update(msg, m.state, tab.URL)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	cmds = append(cmds, cmd)
	if m.state.DevtoolsOpen {
		m.devtools, cmd = m.devtools.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// navigateTo runs a navigation on the active tab from raw omnibox input.
func (m Model) navigateTo(raw string) (tea.Model, tea.Cmd) {
	var target session.Target
	m.state, target = m.state.NavigateWith(m.state.ActiveTabID, raw, false, m.searchFormat())
	return m.afterNavigate(target)
}

// afterNavigate issues the content fetch for remote targets and refreshes
// the content pane.
func (m Model) afterNavigate(target session.Target) (tea.Model, tea.Cmd) {
	switch target.Kind {
	case session.TargetNone:
		return m, nil

	case session.TargetInternal:
		m.panels = m.panels.Reset()
		return m, nil

	default:
		log.Info(log.CatNav, "Navigating", "url", target.URL, "tab", m.state.ActiveTabID)
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.page, cmd = m.page.ShowLoading(target.URL)
		cmds = append(cmds, cmd)
		cmds = append(cmds, m.loadPageCmd(m.state.ActiveTabID, target.URL))
		return m, tea.Batch(cmds...)
	}
}

// reloadActive re-issues the active tab's current entry.
func (m Model) reloadActive() (tea.Model, tea.Cmd) {
	var target session.Target
	m.state, target = m.state.Reload(m.state.ActiveTabID)
	return m.afterNavigate(target)
}

// cycleTab activates the neighbor tab in strip order, wrapping.
func (m Model) cycleTab(delta int) (tea.Model, tea.Cmd) {
	n := len(m.state.Tabs)
	if n < 2 {
		return m, nil
	}
	idx := 0
	for i, tab := range m.state.Tabs {
		if tab.ID == m.state.ActiveTabID {
			idx = i
			break
		}
	}
	next := ((idx+delta)%n + n) % n
	m.state = m.state.SetActiveTab(m.state.Tabs[next].ID)
	return m.syncActive()
}

// toggleBookmark bookmarks or unbookmarks the active tab's page.
func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	tab := m.state.ActiveTab()
	if tab == nil || tab.URL == session.PageHome {
		return m, nil
	}

	was := m.state.IsBookmarked(tab.URL)
	m.state = m.state.ToggleBookmark(tab.URL, tab.Title, tab.Favicon, time.Now())
	if was {
		return m.showToast("Bookmark removed", toaster.StyleInfo)
	}
	return m.showToast("Bookmark added", toaster.StyleSuccess)
}

// openGroupEditor edits the active tab's group, creating one on demand.
func (m Model) openGroupEditor() (tea.Model, tea.Cmd) {
	tab := m.state.ActiveTab()
	if tab == nil {
		return m, nil
	}

	groupID := tab.GroupID
	if groupID == "" {
		m.state, groupID = m.state.CreateGroup(tab.ID)
	}
	group := m.state.GroupByID(groupID)
	if group == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.groupEditor, cmd = m.groupEditor.Open(*group)
	return m, cmd
}

// toggleDevtools opens or closes the source inspector.
func (m Model) toggleDevtools() (tea.Model, tea.Cmd) {
	m.state = m.state.ToggleDevtools()
	m = m.layout()

	if m.state.DevtoolsOpen {
		if tab := m.state.ActiveTab(); tab != nil && tab.Content != nil {
			m.devtools = m.devtools.Show(devtoolsKey(tab), tab.Content.HTML)
		}
	}
	return m, nil
}

func devtoolsKey(tab *session.Tab) string {
	return tab.ID + "|" + tab.URL
}

// debounceSuggest schedules a suggestion fetch after the typing pause.
// Internal targets and empty input never reach the provider.
func (m Model) debounceSuggest(value string) (tea.Model, tea.Cmd) {
	m.suggestToken++
	if value == "" || session.LooksInternal(value) {
		return m, nil
	}

	d := time.Duration(m.cfg.UI.SuggestDebounceMs) * time.Millisecond
	if d <= 0 {
		d = 300 * time.Millisecond
	}
	return m, suggestDebounceCmd(m.suggestToken, value, d)
}

// applyPageLoaded reconciles a finished fetch. Results for tabs closed
// mid-flight reduce to a no-op.
func (m Model) applyPageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.state = m.state.CompleteNavigation(msg.tabID, msg.page, time.Now())

	tab := m.state.TabByID(msg.tabID)
	if tab == nil {
		log.Debug(log.CatNav, "Dropping result for closed tab", "tab", msg.tabID, "url", msg.url)
		return m, nil
	}

	if m.state.DevtoolsOpen {
		m.devtools = m.devtools.Show(devtoolsKey(tab), msg.page.HTML)
	}

	if msg.tabID == m.state.ActiveTabID {
		var err error
		m.page, err = m.page.ShowPage(tab.Content)
		if err != nil {
			log.ErrorErr(log.CatUI, "Page render failed", err, "url", msg.url)
		}
	}
	return m, nil
}

// applyPageFailed reconciles a failed fetch.
func (m Model) applyPageFailed(msg pageFailedMsg) (tea.Model, tea.Cmd) {
	m.state = m.state.FailNavigation(msg.tabID)

	if m.state.TabByID(msg.tabID) == nil || msg.tabID != m.state.ActiveTabID {
		return m, nil
	}
	m.page = m.page.ShowError(session.ErrPageLoadFailed)
	return m, nil
}

// applySetting persists a settings page change and applies what can take
// effect immediately.
func (m Model) applySetting(msg panels.SettingChangedMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.Key {
	case panels.SettingSearchEngine:
		m.cfg.SearchURL = msg.Value
		if m.configPath != "" {
			err = config.SaveSearchURL(m.configPath, msg.Value)
		}

	case panels.SettingHistoryLimit:
		limit, convErr := strconv.Atoi(msg.Value)
		if convErr != nil {
			return m, nil
		}
		m.cfg.HistoryLimit = limit
		m.state.HistoryLimit = limit
		if m.configPath != "" {
			err = config.SaveHistoryLimit(m.configPath, limit)
		}

	case panels.SettingProviderModel:
		m.cfg.Provider.Model = msg.Value
		if m.configPath != "" {
			err = config.SaveProviderModel(m.configPath, msg.Value)
		}
		if err == nil {
			return m.showToast("Model saved, takes effect on restart", toaster.StyleInfo)
		}

	case panels.SettingMarkdownStyle:
		m.cfg.UI.MarkdownStyle = msg.Value
		m.page = page.New(msg.Value)
		m = m.layout()
		if m.configPath != "" {
			err = config.SaveMarkdownStyle(m.configPath, msg.Value)
		}
	}

	if err != nil {
		log.ErrorErr(log.CatConfig, "Saving setting failed", err, "key", msg.Key)
		return m.showToast("Could not save setting", toaster.StyleError)
	}
	return m.showToast("Setting saved", toaster.StyleSuccess)
}

// syncActive refreshes the content pane after the active tab changed.
func (m Model) syncActive() (tea.Model, tea.Cmd) {
	tab := m.state.ActiveTab()
	if tab == nil {
		return m, nil
	}
	if session.IsInternal(tab.URL) {
		m.panels = m.panels.Reset()
		return m, nil
	}

	switch {
	case tab.IsLoading:
		var cmd tea.Cmd
		m.page, cmd = m.page.ShowLoading(tab.URL)
		return m, cmd
	case tab.Error != "":
		m.page = m.page.ShowError(tab.Error)
		return m, nil
	case tab.Content != nil:
		var err error
		m.page, err = m.page.ShowPage(tab.Content)
		if err != nil {
			log.ErrorErr(log.CatUI, "Page render failed", err, "url", tab.URL)
		}
		return m, nil
	default:
		m.page = m.page.ShowBlank()
		return m, nil
	}
}

// showToast displays a toast and schedules its dismissal.
func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	m.toast = m.toast.Show(message, style)
	return m, toaster.ScheduleDismiss(toaster.DefaultDuration)
}

// searchFormat returns the configured search engine format.
func (m Model) searchFormat() string {
	if m.cfg.SearchURL != "" {
		return m.cfg.SearchURL
	}
	return session.DefaultSearchFormat
}

// layout recomputes component sizes for the current terminal and devtools
// split.
func (m Model) layout() Model {
	contentHeight := max(m.height-5, 3)
	contentWidth := m.width

	if m.state.DevtoolsOpen {
		contentWidth = m.width / 2
		m.devtools = m.devtools.SetSize(m.width-contentWidth, contentHeight)
	}

	m.tabs = m.tabs.SetWidth(m.width)
	m.omnibox = m.omnibox.SetWidth(m.width)
	m.page = m.page.SetSize(contentWidth, contentHeight)
	m.panels = m.panels.SetSize(contentWidth, contentHeight)
	m.logOverlay = m.logOverlay.SetSize(m.width, m.height)
	m.help.Width = m.width
	return m
}

// shutdown releases background resources before quitting.
func (m Model) shutdown() {
	m.logOverlay.Close()
	if m.dlCancel != nil {
		m.dlCancel()
	}
	if m.dlWatcher != nil {
		if err := m.dlWatcher.Stop(); err != nil {
			log.Warn(log.CatDownloads, "Stopping downloads watcher failed", "error", err)
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "starting mirage..."
	}

	tab := m.state.ActiveTab()

	content := m.page.View()
	if tab != nil && session.IsInternal(tab.URL) {
		content = m.panels.View(m.state, tab.URL, m.version)
	}
	if m.state.DevtoolsOpen {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.devtools.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.tabs.View(m.state),
		m.omnibox.View(),
		content,
		m.statusBar(tab),
	)

	if m.groupEditor.IsOpen() {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.groupEditor.View(), view)
	}

	if m.logOverlay.Visible() {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Top,
			PadY:     1,
		}, m.logOverlay.View(), view)
	}

	view = m.toast.Overlay(view, m.width, m.height)
	return zone.Scan(view)
}

// statusBar renders the bottom line: current URL, state indicators, and
// the short help.
func (m Model) statusBar(tab *session.Tab) string {
	if !m.cfg.UI.ShowStatusBar {
		return ""
	}

	left := ""
	if tab != nil {
		left = tab.URL
		if m.state.IsBookmarked(tab.URL) {
			left += " ★"
		}
		if tab.IsLoading {
			left += " · loading"
		}
	}

	right := m.help.View(m.keymap)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.StatusBarStyle.Render(left)
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}
