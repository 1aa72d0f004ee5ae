package tracing

// Span attribute keys used across the browser. Keeping them here gives
// trace queries a stable vocabulary.
const (
	// Navigation attributes
	AttrURL       = "page.url"
	AttrFromCache = "page.from_cache"

	// Tab attributes
	AttrTabID    = "tab.id"
	AttrTabCount = "tab.count"

	// Provider attributes
	AttrProviderModel  = "provider.model"
	AttrProviderPrompt = "provider.prompt_chars"
	AttrSourceCount    = "provider.source_count"

	// Suggestion attributes
	AttrSuggestPartial = "suggest.partial"
	AttrSuggestCount   = "suggest.count"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixNavigate = "navigate."
	SpanPrefixProvider = "provider."
	SpanPrefixSuggest  = "suggest."
)

// Event names for span events.
const (
	EventPageRequested = "page.requested"
	EventPageResolved  = "page.resolved"
	EventPageFailed    = "page.failed"
	EventCacheHit      = "cache.hit"
)
