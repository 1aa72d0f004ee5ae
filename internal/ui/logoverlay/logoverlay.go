// Package logoverlay shows a live tail of the debug log over the browser,
// fed by the log package's pubsub broker.
package logoverlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mirage/internal/log"
	"mirage/internal/ui/styles"
)

// maxLines bounds the in-memory tail.
const maxLines = 200

// Model holds the overlay state. The listener is created lazily on first
// open so the overlay works whether or not logging was initialized.
type Model struct {
	viewport viewport.Model
	lines    []string
	visible  bool
	width    int
	height   int

	listener *log.LogListener
	cancel   context.CancelFunc
}

// New creates a hidden overlay.
func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

// SetSize updates the overlay dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 1)
	m.viewport.Height = max(height/3, 3)
	return m
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay, starting the log subscription on
// first use.
func (m Model) Toggle() (Model, tea.Cmd) {
	m.visible = !m.visible
	if !m.visible || m.listener != nil {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.listener = log.NewListener(ctx)
	if m.listener == nil {
		cancel()
		m.lines = []string{"logging is disabled, run with --debug"}
		m.viewport.SetContent(m.lines[0])
		return m, nil
	}
	m.cancel = cancel
	return m, m.listener.Listen()
}

// Close tears down the subscription.
func (m Model) Close() Model {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return m
}

// Update appends incoming log entries and forwards scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.lines = append(m.lines, strings.TrimRight(msg.Payload, "\n"))
		if len(m.lines) > maxLines {
			m.lines = m.lines[len(m.lines)-maxLines:]
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		if m.listener == nil {
			return m, nil
		}
		return m, m.listener.Listen()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the log tail box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	title := styles.PanelTitleStyle.Render("Debug log")
	body := m.viewport.View()
	if len(m.lines) == 0 {
		body = styles.PanelMetaStyle.Render("waiting for log entries...")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(max(m.width-2, 10)).
		Render(title + "\n" + body)
}
