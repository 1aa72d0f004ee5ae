package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", "<html></html>", "<html></html>"},
		{"html fence", "```html\n<html></html>\n```", "<html></html>"},
		{"bare fence", "```\n<p>hi</p>\n```", "<p>hi</p>"},
		{"surrounding whitespace", "  ```html\n<p>hi</p>\n```  ", "<p>hi</p>"},
		{"fence mid-document kept", "<p>a</p>\n```\ncode\n```", "<p>a</p>\n```\ncode\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	html := "<html><head><TITLE> Wikipedia — Home </TITLE></head></html>"
	require.Equal(t, "Wikipedia — Home", ExtractTitle(html, "https://wikipedia.org"))

	require.Equal(t, "wikipedia.org", ExtractTitle("<html></html>", "https://wikipedia.org/wiki/Go"))
	require.Equal(t, "not a url", ExtractTitle("", "not a url"))
}

func TestExtractFavicon(t *testing.T) {
	html := `<head><meta name="page-icon" content="📰"></head>`
	require.Equal(t, "📰", ExtractFavicon(html))
	require.Equal(t, "🌐", ExtractFavicon("<head></head>"))
}

func TestStatic_KnownAndPlaceholderPages(t *testing.T) {
	p := &Static{Pages: map[string]*Page{
		"https://a.com": {Title: "A", HTML: "<h1>A</h1>"},
	}}

	page, err := p.LoadPage(context.Background(), "https://a.com")
	require.NoError(t, err)
	require.Equal(t, "A", page.Title)

	page, err = p.LoadPage(context.Background(), "https://unknown.org/x")
	require.NoError(t, err)
	require.Equal(t, "unknown.org", page.Title)
	require.Contains(t, page.HTML, "unknown.org")
}

func TestStatic_Err(t *testing.T) {
	p := &Static{Err: errors.New("boom")}
	_, err := p.LoadPage(context.Background(), "https://a.com")
	require.Error(t, err)
}

func TestStatic_SuggestPrefixFilter(t *testing.T) {
	p := &Static{Suggestions: []string{"wikipedia.org", "wiktionary.org", "weather today"}}

	require.Equal(t, []string{"wikipedia.org", "wiktionary.org"}, p.Suggest(context.Background(), "wik"))
	require.Empty(t, p.Suggest(context.Background(), ""))
	require.Empty(t, p.Suggest(context.Background(), "zzz"))
}

// countingProvider records LoadPage invocations per URL.
type countingProvider struct {
	Static
	loads int
}

func (c *countingProvider) LoadPage(ctx context.Context, url string) (*Page, error) {
	c.loads++
	return c.Static.LoadPage(ctx, url)
}

func TestCached_ReplaysWithinTTL(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCached(inner, time.Minute)

	first, err := cached.LoadPage(context.Background(), "https://a.com")
	require.NoError(t, err)
	second, err := cached.LoadPage(context.Background(), "https://a.com")
	require.NoError(t, err)

	require.Equal(t, 1, inner.loads)
	require.Same(t, first, second)
}

func TestCached_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{Static: Static{Err: errors.New("boom")}}
	cached := NewCached(inner, time.Minute)

	_, err := cached.LoadPage(context.Background(), "https://a.com")
	require.Error(t, err)
	_, err = cached.LoadPage(context.Background(), "https://a.com")
	require.Error(t, err)
	require.Equal(t, 2, inner.loads)
}

func TestCached_SuggestionsCached(t *testing.T) {
	inner := &Static{Suggestions: []string{"wikipedia.org"}}
	cached := NewCached(inner, time.Minute)

	require.Equal(t, []string{"wikipedia.org"}, cached.Suggest(context.Background(), "wik"))
	inner.Suggestions = nil
	require.Equal(t, []string{"wikipedia.org"}, cached.Suggest(context.Background(), "wik"))
}
