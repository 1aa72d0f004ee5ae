package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sergi/go-diff/diffmatchpatch"

	"mirage/internal/ui/styles"
)

// Devtools is the source inspector pane. It shows the raw generated HTML
// for the active tab and, after a reload, a diff against the previous
// generation of the same URL.
type Devtools struct {
	viewport  viewport.Model
	snapshots map[string]string
	width     int
	height    int
}

// NewDevtools creates the inspector pane.
func NewDevtools() Devtools {
	return Devtools{
		viewport:  viewport.New(0, 0),
		snapshots: make(map[string]string),
	}
}

// SetSize updates the pane dimensions.
func (d Devtools) SetSize(width, height int) Devtools {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = max(height-2, 1)
	return d
}

// Show loads the source view for a tab. The previous snapshot for the
// same key, when present and different, yields a change summary: the
// provider regenerates pages on every load, so no two reloads are alike.
func (d Devtools) Show(key, html string) Devtools {
	var b strings.Builder

	if prev, ok := d.snapshots[key]; ok && prev != html {
		b.WriteString(styles.PanelTitleStyle.Render("Changes since last load"))
		b.WriteString("\n")
		b.WriteString(diffSummary(prev, html))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.PanelTitleStyle.Render("Source"))
	b.WriteString("\n")
	b.WriteString(html)

	snapshots := make(map[string]string, len(d.snapshots)+1)
	for k, v := range d.snapshots {
		snapshots[k] = v
	}
	snapshots[key] = html
	d.snapshots = snapshots

	d.viewport.SetContent(b.String())
	d.viewport.GotoTop()
	return d
}

// Forget drops the stored snapshot for a tab, for when it closes.
func (d Devtools) Forget(key string) Devtools {
	snapshots := make(map[string]string, len(d.snapshots))
	for k, v := range d.snapshots {
		if k != key {
			snapshots[k] = v
		}
	}
	d.snapshots = snapshots
	return d
}

// Update forwards scrolling to the viewport.
func (d Devtools) Update(msg tea.Msg) (Devtools, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the inspector.
func (d Devtools) View() string {
	header := styles.PanelTitleStyle.Render("Devtools") +
		styles.PanelMetaStyle.Render("  f12 to close")
	return header + "\n" + d.viewport.View()
}

// diffSummary renders an inline diff with counts of inserted and deleted
// characters.
func diffSummary(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var inserted, deleted int
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(diff.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(diff.Text)
		}
	}

	counts := styles.PanelMetaStyle.Render(fmt.Sprintf("+%d / -%d characters", inserted, deleted))
	return counts + "\n" + dmp.DiffPrettyText(diffs)
}
