package session

// TabRun is a maximal run of consecutive tabs sharing the same group
// reference in strip order. Ungrouped tabs form runs with an empty GroupID.
type TabRun struct {
	GroupID string
	Tabs    []Tab

	// Header is true when this run should render a group label: the run is
	// grouped and its group id has not been seen earlier in the strip.
	// Tabs of the same group separated by other tabs get one header only.
	Header bool
}

// Runs projects the tab strip into rendering order: consecutive tabs with
// the same group id collapse into a run, scanning left to right.
func (s *State) Runs() []TabRun {
	var runs []TabRun
	seen := make(map[string]bool)
	for _, tab := range s.Tabs {
		if n := len(runs); n > 0 && runs[n-1].GroupID == tab.GroupID {
			runs[n-1].Tabs = append(runs[n-1].Tabs, tab)
			continue
		}
		run := TabRun{GroupID: tab.GroupID, Tabs: []Tab{tab}}
		if tab.GroupID != "" && !seen[tab.GroupID] {
			run.Header = true
			seen[tab.GroupID] = true
		}
		runs = append(runs, run)
	}
	return runs
}
