package session

import (
	"slices"
	"time"
)

// HistoryEntry is one row of the global, cross-tab history log.
type HistoryEntry struct {
	URL       string
	Title     string
	Timestamp time.Time
}

// DefaultHistoryLimit caps the global history log. The oldest entries are
// evicted first once the cap is reached.
const DefaultHistoryLimit = 100

// appendHistory prepends an entry (the log is newest-first) and evicts
// from the tail past the cap.
func (s State) appendHistory(entry HistoryEntry) State {
	limit := s.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	s.History = append([]HistoryEntry{entry}, s.History...)
	if len(s.History) > limit {
		s.History = slices.Clone(s.History[:limit])
	}
	return s
}

// ClearHistory empties the global history log.
func (s State) ClearHistory() State {
	s.History = nil
	return s
}
