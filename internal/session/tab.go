package session

import (
	"slices"

	"github.com/google/uuid"
)

// Tab is a single browsing context. History is the linear stack of URLs
// visited in this tab and HistoryIndex the cursor of the displayed entry.
// History is never empty; 0 <= HistoryIndex < len(History) always holds.
type Tab struct {
	ID      string
	URL     string
	Title   string
	Favicon string

	History      []string
	HistoryIndex int

	IsLoading bool
	Content   *PageContent
	Error     string

	// GroupID is a non-owning reference to a TabGroup, empty when ungrouped.
	GroupID string
}

// PageContent is the synthesized document displayed in a tab.
type PageContent struct {
	Title   string
	Favicon string
	HTML    string
	Sources []Source
}

// Source is a grounding reference returned alongside generated content,
// used for provenance display only.
type Source struct {
	Title string
	URI   string
}

// NewTab creates a fresh tab pointing at the given URL with a single-entry
// history. The caller is responsible for inserting it into a State.
func NewTab(url string) Tab {
	return Tab{
		ID:           uuid.NewString(),
		URL:          url,
		Title:        defaultTitle(url),
		History:      []string{url},
		HistoryIndex: 0,
	}
}

// CanGoBack reports whether the history cursor has entries behind it.
func (t *Tab) CanGoBack() bool { return t.HistoryIndex > 0 }

// CanGoForward reports whether the history cursor has entries ahead of it.
func (t *Tab) CanGoForward() bool { return t.HistoryIndex < len(t.History)-1 }

// defaultTitle picks a display title for a tab that has not loaded yet.
func defaultTitle(url string) string {
	if title, ok := internalTitles[url]; ok {
		return title
	}
	return url
}

// CreateTab appends a new tab for the given URL (home when empty) and makes
// it active.
func (s State) CreateTab(url string) State {
	if url == "" {
		url = PageHome
	}
	tab := NewTab(url)
	s.Tabs = append(slices.Clone(s.Tabs), tab)
	s.ActiveTabID = tab.ID
	return s
}

// DuplicateTab opens a new tab at the target tab's current URL. Unknown ids
// are ignored.
func (s State) DuplicateTab(id string) State {
	tab := s.TabByID(id)
	if tab == nil {
		return s
	}
	return s.CreateTab(tab.URL)
}

// CloseTab removes a tab from the strip. Closing the last remaining tab
// resets it to the home state instead, so the session always has at least
// one tab. When the closed tab was active, activation moves to the tab
// immediately preceding it in strip order.
func (s State) CloseTab(id string) State {
	i := s.tabIndex(id)
	if i < 0 {
		return s
	}

	if len(s.Tabs) == 1 {
		fresh := NewTab(PageHome)
		fresh.ID = s.Tabs[0].ID
		s.Tabs = []Tab{fresh}
		s.ActiveTabID = fresh.ID
		return s
	}

	s.Tabs = slices.Delete(slices.Clone(s.Tabs), i, i+1)
	if s.ActiveTabID == id {
		s.ActiveTabID = s.Tabs[max(0, i-1)].ID
	}
	return s
}

// SetActiveTab moves activation to the given tab. Ids not present in the
// strip are ignored; switching has no side effects on tab content.
func (s State) SetActiveTab(id string) State {
	if s.tabIndex(id) < 0 {
		return s
	}
	s.ActiveTabID = id
	return s
}
