// Package session implements the browser session state machine.
//
// All state lives in a single State value. Transitions are value-receiver
// methods that return a new State, never mutating the old one, so every
// transition is independently testable and the UI layer can treat the
// state as a snapshot. Async completions (page loads, downloads) re-enter
// through reducers that look the tab up by id and no-op when it is gone.
package session

import "slices"

// State is the aggregate browser session: tabs in strip order, the active
// tab, tab groups, the global history log, bookmarks, downloads, and the
// devtools flag. It owns every entity it holds; a Tab's GroupID is a
// non-owning back-reference resolved against Groups.
type State struct {
	Tabs        []Tab
	ActiveTabID string
	Groups      []TabGroup
	Bookmarks   []Bookmark
	History     []HistoryEntry
	Downloads   []Download

	DevtoolsOpen bool

	// HistoryLimit caps the global history log. Zero means DefaultHistoryLimit.
	HistoryLimit int
}

// NewState returns a session with a single home tab, which is also active.
func NewState() State {
	tab := NewTab(PageHome)
	return State{
		Tabs:        []Tab{tab},
		ActiveTabID: tab.ID,
	}
}

// TabByID returns the tab with the given id, or nil if no such tab exists.
// The returned pointer aliases the state's slice and must not be retained
// across transitions.
func (s *State) TabByID(id string) *Tab {
	for i := range s.Tabs {
		if s.Tabs[i].ID == id {
			return &s.Tabs[i]
		}
	}
	return nil
}

// ActiveTab returns the active tab. The active-tab invariant guarantees a
// result for any state built through the transition methods.
func (s *State) ActiveTab() *Tab {
	return s.TabByID(s.ActiveTabID)
}

// GroupByID returns the group with the given id, or nil.
func (s *State) GroupByID(id string) *TabGroup {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// ToggleDevtools flips the global devtools-open flag.
func (s State) ToggleDevtools() State {
	s.DevtoolsOpen = !s.DevtoolsOpen
	return s
}

// tabIndex returns the position of a tab in strip order, or -1.
func (s *State) tabIndex(id string) int {
	return slices.IndexFunc(s.Tabs, func(t Tab) bool { return t.ID == id })
}

// withTab replaces the tab with the same id, cloning the slice so the
// previous state stays untouched.
func (s State) withTab(tab Tab) State {
	i := s.tabIndex(tab.ID)
	if i < 0 {
		return s
	}
	s.Tabs = slices.Clone(s.Tabs)
	s.Tabs[i] = tab
	return s
}
