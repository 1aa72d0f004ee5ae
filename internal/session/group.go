package session

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
)

// TabGroup is a named, colored label attachable to any number of tabs.
// Groups persist until explicitly ungrouped, even with zero member tabs.
type TabGroup struct {
	ID    string
	Name  string
	Color string
}

// DefaultGroupName is the label a freshly created group starts with.
const DefaultGroupName = "Group"

// GroupPalette is the fixed set of colors a group may take.
var GroupPalette = []string{
	"#54A0FF", // blue
	"#FF8787", // red
	"#FECA57", // yellow
	"#73F59F", // green
	"#CBA6F7", // pink
	"#7D56F4", // purple
	"#89DCEB", // cyan
	"#FF9F43", // orange
}

// CreateGroup makes a new group with the default name and a random palette
// color, and assigns the given tab to it. Unknown tab ids are ignored.
// The new group's id is returned so the caller can open its editor.
func (s State) CreateGroup(tabID string) (State, string) {
	tab := s.TabByID(tabID)
	if tab == nil {
		return s, ""
	}

	group := TabGroup{
		ID:    uuid.NewString(),
		Name:  DefaultGroupName,
		Color: GroupPalette[rand.IntN(len(GroupPalette))],
	}
	s.Groups = append(slices.Clone(s.Groups), group)

	t := *tab
	t.GroupID = group.ID
	return s.withTab(t), group.ID
}

// AssignGroup sets a tab's group reference to an existing group. Either id
// being unknown makes this a no-op.
func (s State) AssignGroup(tabID, groupID string) State {
	if s.GroupByID(groupID) == nil {
		return s
	}
	tab := s.TabByID(tabID)
	if tab == nil {
		return s
	}
	t := *tab
	t.GroupID = groupID
	return s.withTab(t)
}

// RenameGroup sets a group's label.
func (s State) RenameGroup(groupID, name string) State {
	return s.updateGroup(groupID, func(g *TabGroup) { g.Name = name })
}

// RecolorGroup sets a group's color. Colors outside the palette are
// rejected.
func (s State) RecolorGroup(groupID, color string) State {
	if !slices.Contains(GroupPalette, color) {
		return s
	}
	return s.updateGroup(groupID, func(g *TabGroup) { g.Color = color })
}

// Ungroup deletes a group and clears the reference on every tab that
// pointed at it, so no dangling group ids survive.
func (s State) Ungroup(groupID string) State {
	i := slices.IndexFunc(s.Groups, func(g TabGroup) bool { return g.ID == groupID })
	if i < 0 {
		return s
	}
	s.Groups = slices.Delete(slices.Clone(s.Groups), i, i+1)

	s.Tabs = slices.Clone(s.Tabs)
	for j := range s.Tabs {
		if s.Tabs[j].GroupID == groupID {
			s.Tabs[j].GroupID = ""
		}
	}
	return s
}

func (s State) updateGroup(groupID string, apply func(*TabGroup)) State {
	i := slices.IndexFunc(s.Groups, func(g TabGroup) bool { return g.ID == groupID })
	if i < 0 {
		return s
	}
	s.Groups = slices.Clone(s.Groups)
	apply(&s.Groups[i])
	return s
}
