package session

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Bookmark is a saved page. At most one bookmark exists per URL.
type Bookmark struct {
	URL       string
	Title     string
	Favicon   string
	Timestamp time.Time
}

// BookmarkSort selects the ordering of the bookmark view.
type BookmarkSort string

const (
	// SortDate orders by creation time, newest first.
	SortDate BookmarkSort = "date"
	// SortName orders lexicographically by title.
	SortName BookmarkSort = "name"
	// SortURL orders lexicographically by URL.
	SortURL BookmarkSort = "url"
)

// ToggleBookmark adds a bookmark for the URL when absent and removes it
// when present.
func (s State) ToggleBookmark(url, title, favicon string, now time.Time) State {
	i := slices.IndexFunc(s.Bookmarks, func(b Bookmark) bool { return b.URL == url })
	if i >= 0 {
		s.Bookmarks = slices.Delete(slices.Clone(s.Bookmarks), i, i+1)
		return s
	}
	s.Bookmarks = append(slices.Clone(s.Bookmarks), Bookmark{
		URL:       url,
		Title:     title,
		Favicon:   favicon,
		Timestamp: now,
	})
	return s
}

// IsBookmarked reports whether a URL has a bookmark.
func (s *State) IsBookmarked(url string) bool {
	return slices.ContainsFunc(s.Bookmarks, func(b Bookmark) bool { return b.URL == url })
}

// FilterBookmarks is the pure projection behind the bookmark view: a
// case-insensitive substring filter over title and URL, then a stable sort
// by the requested key. The input slice is left untouched.
func FilterBookmarks(bookmarks []Bookmark, query string, key BookmarkSort) []Bookmark {
	out := make([]Bookmark, 0, len(bookmarks))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, b := range bookmarks {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.URL), q) {
			out = append(out, b)
		}
	}

	switch key {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortURL:
		sort.SliceStable(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	default: // SortDate
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	}
	return out
}
