package provider

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mirage/internal/cachemanager"
	"mirage/internal/log"
	"mirage/internal/tracing"
)

// DefaultCacheTTL is how long a synthesized page is replayed for repeat
// visits before being regenerated.
const DefaultCacheTTL = 15 * time.Minute

// Cached decorates a Provider with a TTL cache so revisiting a URL within
// the TTL replays the same synthesized page instead of generating a new
// one. Suggestions are cached per input prefix.
type Cached struct {
	inner       Provider
	pages       cachemanager.CacheManager[string, *Page]
	suggestions cachemanager.CacheManager[string, []string]
	ttl         time.Duration
}

// NewCached wraps a provider with page and suggestion caches.
func NewCached(inner Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		inner:       inner,
		pages:       cachemanager.NewInMemoryCacheManager[string, *Page]("pages", ttl, 2*ttl),
		suggestions: cachemanager.NewInMemoryCacheManager[string, []string]("suggestions", ttl, 2*ttl),
		ttl:         ttl,
	}
}

// LoadPage implements Provider.
func (c *Cached) LoadPage(ctx context.Context, url string) (*Page, error) {
	if page, ok := c.pages.Get(ctx, url); ok {
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(attribute.Bool(tracing.AttrFromCache, true))
		span.AddEvent(tracing.EventCacheHit)
		log.Debug(log.CatProvider, "page served from cache", "url", url)
		return page, nil
	}
	page, err := c.inner.LoadPage(ctx, url)
	if err != nil {
		return nil, err
	}
	c.pages.Set(ctx, url, page, c.ttl)
	return page, nil
}

// Suggest implements Provider.
func (c *Cached) Suggest(ctx context.Context, partial string) []string {
	if items, ok := c.suggestions.Get(ctx, partial); ok {
		return items
	}
	items := c.inner.Suggest(ctx, partial)
	if len(items) > 0 {
		c.suggestions.Set(ctx, partial, items, c.ttl)
	}
	return items
}
