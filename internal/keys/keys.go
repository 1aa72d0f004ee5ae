// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// BrowserKeyMap defines the keybindings for normal browsing.
type BrowserKeyMap struct {
	// Tabs
	NewTab       key.Binding
	CloseTab     key.Binding
	DuplicateTab key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding

	// Navigation
	Back         key.Binding
	Forward      key.Binding
	Reload       key.Binding
	FocusOmnibox key.Binding

	// Pages
	Bookmark  key.Binding
	Bookmarks key.Binding
	History   key.Binding
	Downloads key.Binding
	Home      key.Binding

	// Groups and tools
	GroupTab key.Binding
	Devtools key.Binding
	DebugLog key.Binding

	// Scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultBrowserKeyMap returns the default browsing keybindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		// Tabs
		NewTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		DuplicateTab: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "duplicate tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "ctrl+pgdown"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+pgup"),
			key.WithHelp("shift+tab", "previous tab"),
		),

		// Navigation
		Back: key.NewBinding(
			key.WithKeys("alt+left", "ctrl+o"),
			key.WithHelp("alt+←", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right", "ctrl+i"),
			key.WithHelp("alt+→", "forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "reload"),
		),
		FocusOmnibox: key.NewBinding(
			key.WithKeys("ctrl+l", "/"),
			key.WithHelp("ctrl+l", "address bar"),
		),

		// Pages
		Bookmark: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "toggle bookmark"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bookmarks"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history"),
		),
		Downloads: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "downloads"),
		),
		Home: key.NewBinding(
			key.WithKeys("alt+home"),
			key.WithHelp("alt+home", "home page"),
		),

		// Groups and tools
		GroupTab: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "group tab"),
		),
		Devtools: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "devtools"),
		),
		DebugLog: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "debug log"),
		),

		// Scrolling
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "scroll down"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusOmnibox, k.NewTab, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.CloseTab, k.DuplicateTab, k.NextTab, k.PrevTab}, // Tabs
		{k.Back, k.Forward, k.Reload, k.FocusOmnibox, k.Home},        // Navigation
		{k.Bookmark, k.Bookmarks, k.History, k.Downloads},            // Pages
		{k.GroupTab, k.Devtools, k.DebugLog, k.Help, k.Quit},         // Tools
	}
}

// OmniboxKeyMap defines the keybindings while the address bar is focused.
type OmniboxKeyMap struct {
	Accept         key.Binding
	Cancel         key.Binding
	NextSuggestion key.Binding
	PrevSuggestion key.Binding
}

// DefaultOmniboxKeyMap returns the address bar keybindings.
func DefaultOmniboxKeyMap() OmniboxKeyMap {
	return OmniboxKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextSuggestion: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next suggestion"),
		),
		PrevSuggestion: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous suggestion"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k OmniboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k OmniboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accept, k.Cancel},
		{k.NextSuggestion, k.PrevSuggestion},
	}
}

// PanelKeyMap defines the keybindings inside internal page panels such as
// history and bookmarks.
type PanelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Filter key.Binding
	Sort   key.Binding
	Clear  key.Binding
	Close  key.Binding
}

// DefaultPanelKeyMap returns the panel keybindings.
func DefaultPanelKeyMap() PanelKeyMap {
	return PanelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to page"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k PanelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Close}
}

// FullHelp returns keybindings for the full help view.
func (k PanelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Delete, k.Filter, k.Sort, k.Clear},
		{k.Close},
	}
}

// GroupEditorKeyMap defines the keybindings in the tab group editor.
type GroupEditorKeyMap struct {
	NextColor key.Binding
	PrevColor key.Binding
	Ungroup   key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// DefaultGroupEditorKeyMap returns the group editor keybindings.
func DefaultGroupEditorKeyMap() GroupEditorKeyMap {
	return GroupEditorKeyMap{
		NextColor: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next color"),
		),
		PrevColor: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "previous color"),
		),
		Ungroup: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "remove group"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k GroupEditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k GroupEditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextColor, k.PrevColor, k.Ungroup},
		{k.Save, k.Cancel},
	}
}

// Browser, Omnibox, Panel, and GroupEditor are the shared keymaps used
// across the UI.
var (
	Browser     = DefaultBrowserKeyMap()
	Omnibox     = DefaultOmniboxKeyMap()
	Panel       = DefaultPanelKeyMap()
	GroupEditor = DefaultGroupEditorKeyMap()
)
