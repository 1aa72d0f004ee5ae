package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Static is an offline provider used for demo mode and tests. Known URLs
// return their canned page; unknown URLs get a minimal placeholder
// document so navigation still works without an API key.
type Static struct {
	// Pages maps URL to canned content.
	Pages map[string]*Page
	// Suggestions are returned for any non-empty input, filtered by prefix.
	Suggestions []string
	// Err, when set, makes every LoadPage call fail with it.
	Err error
}

// LoadPage implements Provider.
func (s *Static) LoadPage(_ context.Context, pageURL string) (*Page, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if page, ok := s.Pages[pageURL]; ok {
		return page, nil
	}

	host := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &Page{
		Title:   host,
		Favicon: "🌐",
		HTML: fmt.Sprintf(
			"<html><head><title>%s</title></head><body><h1>%s</h1><p>Offline placeholder for %s.</p></body></html>",
			host, host, pageURL),
	}, nil
}

// Suggest implements Provider.
func (s *Static) Suggest(_ context.Context, partial string) []string {
	if partial == "" {
		return nil
	}
	var out []string
	for _, item := range s.Suggestions {
		if strings.HasPrefix(strings.ToLower(item), strings.ToLower(partial)) {
			out = append(out, item)
		}
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
