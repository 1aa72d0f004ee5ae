package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"mirage/internal/log"
	"mirage/internal/tracing"
)

// DefaultModel is the Gemini model used when the config does not name one.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single generation call. The session core has no
// timeout concept; an expired call surfaces as an ordinary load failure.
const DefaultTimeout = 90 * time.Second

// GeminiConfig configures the Gemini-backed provider.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gemini synthesizes pages with the Gemini API. Page loads run with the
// Google Search grounding tool so generated content carries provenance
// sources; suggestions use a constrained JSON response schema.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini provider. The API key is required.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// LoadPage implements Provider.
func (g *Gemini) LoadPage(ctx context.Context, pageURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := pagePrompt(pageURL)
	ctx, span := otel.Tracer("mirage/provider").Start(ctx, tracing.SpanPrefixProvider+"generate")
	span.SetAttributes(
		attribute.String(tracing.AttrProviderModel, g.model),
		attribute.Int(tracing.AttrProviderPrompt, len(prompt)),
	)
	defer span.End()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatProvider, "page generation failed", err, "url", pageURL)
		return nil, fmt.Errorf("generating page for %s: %w", pageURL, err)
	}

	html := StripFences(resp.Text())
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("generating page for %s: empty response", pageURL)
	}

	page := &Page{
		Title:   ExtractTitle(html, pageURL),
		Favicon: ExtractFavicon(html),
		HTML:    html,
		Sources: groundingSources(resp),
	}
	log.Info(log.CatProvider, "page generated",
		"url", pageURL, "sources", len(page.Sources), "elapsed", time.Since(start))
	return page, nil
}

// Suggest implements Provider. Any failure returns an empty list.
func (g *Gemini) Suggest(ctx context.Context, partial string) []string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(suggestPrompt(partial)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	)
	if err != nil {
		log.Debug(log.CatProvider, "suggestion fetch failed", "error", err.Error())
		return nil
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(resp.Text()), &suggestions); err != nil {
		log.Debug(log.CatProvider, "suggestion parse failed", "error", err.Error())
		return nil
	}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

func pagePrompt(pageURL string) string {
	return fmt.Sprintf(`You are a web server. Generate the complete HTML document that would
plausibly be served at the URL %q. Requirements:
- A single self-contained HTML document, no external resources.
- Include a <title> matching the site and page.
- Include <meta name="page-icon" content="X"> where X is one emoji that
  suits the site.
- Realistic, substantive content: headings, paragraphs, links (as absolute
  URLs on the same fictional site), lists where natural.
- Output only the HTML document, no commentary and no code fences.`, pageURL)
}

func suggestPrompt(partial string) string {
	return fmt.Sprintf(`Complete the browser omnibox input %q. Return a JSON array of at most %d
strings: likely URLs or search queries the user may be typing. Return only
the JSON array.`, partial, MaxSuggestions)
}

func groundingSources(resp *genai.GenerateContentResponse) []Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

var (
	fenceRe   = regexp.MustCompile("(?s)^```[a-zA-Z]*\\n(.*?)\\n?```\\s*$")
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	faviconRe = regexp.MustCompile(`(?is)<meta\s+name="page-icon"\s+content="([^"]+)"`)
)

// StripFences removes a wrapping markdown code fence that models sometimes
// emit despite instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// ExtractTitle pulls the document title, falling back to the URL host.
func ExtractTitle(html, pageURL string) string {
	if m := titleRe.FindStringSubmatch(html); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		return u.Host
	}
	return pageURL
}

// ExtractFavicon pulls the emoji icon from the page-icon meta tag.
func ExtractFavicon(html string) string {
	if m := faviconRe.FindStringSubmatch(html); m != nil {
		if icon := strings.TrimSpace(m[1]); icon != "" {
			return icon
		}
	}
	return "🌐"
}
