// Package page renders the content pane for the active tab: a spinner
// while the provider works, the generated page once it resolves, or an
// error pane when generation failed.
package page

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"mirage/internal/htmltext"
	"mirage/internal/session"
	"mirage/internal/ui/markdown"
	"mirage/internal/ui/styles"
)

type mode int

const (
	modeBlank mode = iota
	modeLoading
	modeContent
	modeError
)

// Model holds the page pane state.
type Model struct {
	viewport      viewport.Model
	spinner       spinner.Model
	mode          mode
	errText       string
	loadingURL    string
	markdownStyle string
	width         int
	height        int
}

// New creates an empty page pane.
func New(markdownStyle string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)

	return Model{
		viewport:      viewport.New(0, 0),
		spinner:       sp,
		markdownStyle: markdownStyle,
	}
}

// SetSize updates the pane dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	return m
}

// ShowLoading switches to the spinner state.
func (m Model) ShowLoading(url string) (Model, tea.Cmd) {
	m.mode = modeLoading
	m.loadingURL = url
	return m, m.spinner.Tick
}

// ShowError switches to the error pane.
func (m Model) ShowError(message string) Model {
	m.mode = modeError
	m.errText = message
	return m
}

// ShowBlank empties the pane.
func (m Model) ShowBlank() Model {
	m.mode = modeBlank
	m.viewport.SetContent("")
	return m
}

// ShowPage renders generated page content into the viewport. The HTML is
// flattened to markdown, styled, and followed by the grounding source
// list when present.
func (m Model) ShowPage(content *session.PageContent) (Model, error) {
	if content == nil {
		return m.ShowBlank(), nil
	}

	md, err := htmltext.ToMarkdown(content.HTML)
	if err != nil {
		return m.ShowError(session.ErrPageLoadFailed), err
	}

	renderer, err := markdown.New(max(m.width-2, 20), m.markdownStyle)
	if err != nil {
		return m.ShowError(session.ErrPageLoadFailed), err
	}
	body, err := renderer.Render(md)
	if err != nil {
		return m.ShowError(session.ErrPageLoadFailed), err
	}

	if footer := sourcesFooter(content.Sources); footer != "" {
		body += "\n" + footer
	}

	m.mode = modeContent
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
	return m, nil
}

// Loading reports whether the spinner state is showing.
func (m Model) Loading() bool {
	return m.mode == modeLoading
}

// Update advances the spinner and forwards scrolling to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == modeLoading {
		if tick, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(tick)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pane for the current state.
func (m Model) View() string {
	switch m.mode {
	case modeLoading:
		msg := fmt.Sprintf("%s Loading %s", m.spinner.View(), m.loadingURL)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)

	case modeError:
		text := m.errText + "\n\n" + styles.PanelMetaStyle.Render("ctrl+r to retry")
		box := styles.ErrorStyle.Render(wordwrap.String(text, max(m.width-8, 20)))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)

	case modeContent:
		return m.viewport.View()

	default:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "")
	}
}

// sourcesFooter formats the grounding sources as clickable OSC 8
// hyperlinks, one per line.
func sourcesFooter(sources []session.Source) string {
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PanelMetaStyle.Render("Sources:"))
	for i, src := range sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		link := termenv.Hyperlink(src.URI, title)
		b.WriteString("\n" + styles.SourceStyle.Render(fmt.Sprintf("[%d] %s", i+1, link)))
	}
	return b.String()
}
