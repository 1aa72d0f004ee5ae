package session

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Internal page identifiers. These are handled entirely inside the
// application and never reach the content provider. A chrome:// prefix is
// normalized to the canonical about: form before matching.
const (
	PageHome            = "about:home"
	PageHistory         = "about:history"
	PageBookmarks       = "about:bookmarks"
	PageDownloads       = "about:downloads"
	PageDownloadsFolder = "about:downloads-folder"
	PageVersion         = "about:version"
	PageSettings        = "about:settings"
)

// internalTitles maps internal page ids to their display titles: home is
// "New Tab", everything else is the bare identifier uppercased.
var internalTitles = map[string]string{
	PageHome:            "New Tab",
	PageHistory:         "HISTORY",
	PageBookmarks:       "BOOKMARKS",
	PageDownloads:       "DOWNLOADS",
	PageDownloadsFolder: "DOWNLOADS-FOLDER",
	PageVersion:         "VERSION",
	PageSettings:        "SETTINGS",
}

// DefaultSearchFormat turns a free-text query into a search engine URL.
// %s receives the query-escaped input.
const DefaultSearchFormat = "https://www.google.com/search?q=%s"

// ErrPageLoadFailed is the fixed message surfaced on a content fetch
// failure.
const ErrPageLoadFailed = "Failed to load page. Please try again."

// TargetKind classifies a navigation target.
type TargetKind int

const (
	// TargetNone means the input was empty after trimming; the navigation
	// is a no-op.
	TargetNone TargetKind = iota
	// TargetInternal is an internal about: page, resolved without a fetch.
	TargetInternal
	// TargetRemote is anything that requires a content provider fetch:
	// search queries, bare domains, and full URLs.
	TargetRemote
)

// Target is the result of classifying raw omnibox input.
type Target struct {
	Kind TargetKind
	URL  string
}

// Resolve classifies raw input with the default search engine.
func Resolve(raw string) Target {
	return ResolveWith(raw, DefaultSearchFormat)
}

// ResolveWith classifies raw input, first match wins: empty input, internal
// page, search query (no dot or contains whitespace), bare domain (gets an
// https:// prefix), full URL as-is.
func ResolveWith(raw, searchFormat string) Target {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{Kind: TargetNone}
	}

	if id, ok := normalizeInternal(s); ok {
		return Target{Kind: TargetInternal, URL: id}
	}

	if strings.HasPrefix(s, "data:") {
		return Target{Kind: TargetRemote, URL: s}
	}

	if !strings.Contains(s, ".") || strings.ContainsAny(s, " \t") {
		return Target{Kind: TargetRemote, URL: fmt.Sprintf(searchFormat, url.QueryEscape(s))}
	}

	if !strings.Contains(s, "://") {
		return Target{Kind: TargetRemote, URL: "https://" + s}
	}

	return Target{Kind: TargetRemote, URL: s}
}

// normalizeInternal maps chrome://x to about:x and reports whether the
// result is a recognized internal page. Unrecognized pseudo-URLs are not
// special-cased; they fall through to the remote classification.
func normalizeInternal(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "chrome://"); ok {
		s = "about:" + rest
	}
	_, ok := internalTitles[s]
	return s, ok
}

// Navigate runs the synchronous half of a navigation on the given tab:
// classification, history bookkeeping, and the optimistic URL/loading
// update. The returned Target tells the caller whether a content fetch
// must be issued (TargetRemote) and for which resolved URL. fromHistory
// navigations (back/forward/reload) leave the history stack untouched.
func (s State) Navigate(tabID, raw string, fromHistory bool) (State, Target) {
	target := Resolve(raw)
	return s.navigate(tabID, target, fromHistory)
}

// NavigateWith is Navigate with an explicit search engine format.
func (s State) NavigateWith(tabID, raw string, fromHistory bool, searchFormat string) (State, Target) {
	target := ResolveWith(raw, searchFormat)
	return s.navigate(tabID, target, fromHistory)
}

func (s State) navigate(tabID string, target Target, fromHistory bool) (State, Target) {
	tab := s.TabByID(tabID)
	if tab == nil || target.Kind == TargetNone {
		return s, Target{Kind: TargetNone}
	}

	t := *tab
	if !fromHistory {
		// Visiting a new URL from the middle of history discards the
		// stale forward stack.
		t.History = append(slices.Clone(t.History[:t.HistoryIndex+1]), target.URL)
		t.HistoryIndex = len(t.History) - 1
	}
	t.URL = target.URL

	switch target.Kind {
	case TargetInternal:
		t.Title = internalTitles[target.URL]
		t.Favicon = ""
		t.Content = nil
		t.Error = ""
		t.IsLoading = false
	case TargetRemote:
		t.IsLoading = true
		t.Error = ""
	}

	return s.withTab(t), target
}

// GoBack moves the active cursor of the given tab one entry back and
// re-issues the navigation from history.
func (s State) GoBack(tabID string) (State, Target) {
	tab := s.TabByID(tabID)
	if tab == nil || !tab.CanGoBack() {
		return s, Target{Kind: TargetNone}
	}
	t := *tab
	t.HistoryIndex--
	s = s.withTab(t)
	return s.navigate(tabID, Resolve(t.History[t.HistoryIndex]), true)
}

// GoForward moves the cursor one entry forward and re-issues the
// navigation from history.
func (s State) GoForward(tabID string) (State, Target) {
	tab := s.TabByID(tabID)
	if tab == nil || !tab.CanGoForward() {
		return s, Target{Kind: TargetNone}
	}
	t := *tab
	t.HistoryIndex++
	s = s.withTab(t)
	return s.navigate(tabID, Resolve(t.History[t.HistoryIndex]), true)
}

// Reload re-issues the current entry without moving the cursor.
func (s State) Reload(tabID string) (State, Target) {
	tab := s.TabByID(tabID)
	if tab == nil {
		return s, Target{Kind: TargetNone}
	}
	return s.navigate(tabID, Resolve(tab.History[tab.HistoryIndex]), true)
}

// CompleteNavigation reconciles a successful content fetch back into the
// owning tab and appends to the global history log. The tab is looked up
// by id against the current state; if it was closed while the fetch was in
// flight the result is dropped silently.
func (s State) CompleteNavigation(tabID string, page PageContent, now time.Time) State {
	tab := s.TabByID(tabID)
	if tab == nil {
		return s
	}
	t := *tab
	t.IsLoading = false
	t.Content = &page
	t.Title = page.Title
	t.Favicon = page.Favicon
	t.Error = ""
	s = s.withTab(t)
	return s.appendHistory(HistoryEntry{URL: t.URL, Title: page.Title, Timestamp: now})
}

// FailNavigation reconciles a failed content fetch: loading stops and the
// fixed failure message is surfaced. Previous content is left in place so
// a retry can render over it. Closed tabs drop the failure silently.
func (s State) FailNavigation(tabID string) State {
	tab := s.TabByID(tabID)
	if tab == nil {
		return s
	}
	t := *tab
	t.IsLoading = false
	t.Error = ErrPageLoadFailed
	return s.withTab(t)
}

// IsInternal reports whether a URL is a recognized internal page.
func IsInternal(url string) bool {
	_, ok := internalTitles[url]
	return ok
}

// LooksInternal reports whether omnibox input is headed for an internal
// page, recognized or not. Suggestion fetches are skipped for these.
func LooksInternal(input string) bool {
	return strings.HasPrefix(input, "about:") || strings.HasPrefix(input, "chrome://")
}
