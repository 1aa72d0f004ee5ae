// Package provider defines the content provider boundary: the external
// collaborator that turns a URL into a synthesized page and omnibox input
// into suggestions. The session core never talks to a provider directly;
// the app layer issues calls and reconciles results through session
// reducers.
package provider

import "context"

// Source is an external grounding reference for a generated page.
type Source struct {
	Title string
	URI   string
}

// Page is the result of a successful load.
type Page struct {
	Title   string
	Favicon string
	HTML    string
	Sources []Source
}

// MaxSuggestions bounds the omnibox suggestion list.
const MaxSuggestions = 5

// Provider synthesizes page content and omnibox suggestions.
type Provider interface {
	// LoadPage generates a page for the given URL. It may fail with a
	// transport or generation error; callers surface that as the tab's
	// error state.
	LoadPage(ctx context.Context, url string) (*Page, error)

	// Suggest returns up to MaxSuggestions completions for partial omnibox
	// input. Failures are swallowed at this boundary: any error manifests
	// as an empty list.
	Suggest(ctx context.Context, partial string) []string
}
