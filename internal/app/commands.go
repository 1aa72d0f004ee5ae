package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mirage/internal/downloads"
	"mirage/internal/log"
	"mirage/internal/provider"
	"mirage/internal/session"
	"mirage/internal/tracing"
)

// pageLoadedMsg carries a resolved page back to the update loop.
type pageLoadedMsg struct {
	tabID string
	url   string
	page  session.PageContent
}

// pageFailedMsg reports a failed content fetch.
type pageFailedMsg struct {
	tabID string
	url   string
	err   error
}

// suggestTickMsg fires when the typing debounce expires.
type suggestTickMsg struct {
	token int
	value string
}

// suggestResultMsg carries fetched suggestions.
type suggestResultMsg struct {
	token int
	value string
	items []string
}

// downloadsScannedMsg carries a fresh downloads folder listing.
type downloadsScannedMsg struct {
	entries []session.Download
	err     error
}

// loadPageCmd asks the content provider for a page. The returned message
// identifies the requesting tab so the reducer can drop results for tabs
// closed mid-flight.
func (m Model) loadPageCmd(tabID, url string) tea.Cmd {
	prov := m.provider
	tracer := m.tracer
	tabCount := len(m.state.Tabs)
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), tracing.SpanPrefixNavigate+"fetch",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String(tracing.AttrURL, url),
				attribute.String(tracing.AttrTabID, tabID),
				attribute.Int(tracing.AttrTabCount, tabCount),
			),
		)
		defer span.End()
		span.AddEvent(tracing.EventPageRequested)

		page, err := prov.LoadPage(ctx, url)
		if err != nil {
			span.AddEvent(tracing.EventPageFailed)
			span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.ErrorErr(log.CatProvider, "Page load failed", err, "url", url)
			return pageFailedMsg{tabID: tabID, url: url, err: err}
		}

		span.AddEvent(tracing.EventPageResolved)
		span.SetAttributes(attribute.Int(tracing.AttrSourceCount, len(page.Sources)))
		return pageLoadedMsg{tabID: tabID, url: url, page: toPageContent(page)}
	}
}

// suggestDebounceCmd waits out the typing pause before a suggestion fetch.
func suggestDebounceCmd(token int, value string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return suggestTickMsg{token: token, value: value}
	})
}

// suggestCmd fetches omnibox suggestions.
func (m Model) suggestCmd(token int, value string) tea.Cmd {
	prov := m.provider
	tracer := m.tracer
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), tracing.SpanPrefixSuggest+"fetch",
			trace.WithAttributes(attribute.String(tracing.AttrSuggestPartial, value)),
		)
		defer span.End()

		items := prov.Suggest(ctx, value)
		span.SetAttributes(attribute.Int(tracing.AttrSuggestCount, len(items)))
		return suggestResultMsg{token: token, value: value, items: items}
	}
}

// scanDownloadsCmd lists the downloads folder.
func scanDownloadsCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := downloads.Scan(dir)
		return downloadsScannedMsg{entries: entries, err: err}
	}
}

// toPageContent converts a provider page to the session representation.
func toPageContent(p *provider.Page) session.PageContent {
	sources := make([]session.Source, 0, len(p.Sources))
	for _, s := range p.Sources {
		sources = append(sources, session.Source{Title: s.Title, URI: s.URI})
	}
	return session.PageContent{
		Title:   p.Title,
		Favicon: p.Favicon,
		HTML:    p.HTML,
		Sources: sources,
	}
}
