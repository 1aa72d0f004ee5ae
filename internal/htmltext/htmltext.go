// Package htmltext converts generated HTML documents into markdown the
// page pane can render. The HTML comes from a language model, so it is
// sanitized before parsing and only block-level content survives.
package htmltext

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// ToMarkdown sanitizes the document and flattens it into markdown:
// headings, paragraphs, list items, blockquotes, code blocks, and inline
// links in document order.
func ToMarkdown(html string) (string, error) {
	sanitized := policy.Sanitize(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return "", fmt.Errorf("parsing generated html: %w", err)
	}

	// Rewrite links in place so the surrounding block picks them up as
	// markdown text.
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := normalize(s.Text())
		if text == "" {
			text = href
		}
		s.SetText(fmt.Sprintf("[%s](%s)", text, href))
	})

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)

		// Blocks nested inside an already-emitted container would render
		// twice; the container wins.
		switch name {
		case "p":
			if s.ParentsFiltered("blockquote, li, pre").Length() > 0 {
				return
			}
		case "li":
			if s.ParentsFiltered("li").Length() > 0 {
				return
			}
		}

		switch name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := normalize(s.Text()); text != "" {
				depth := int(name[1] - '0')
				fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", depth), text)
			}
		case "p":
			if text := normalize(s.Text()); text != "" {
				b.WriteString(text + "\n\n")
			}
		case "li":
			if text := normalize(s.Text()); text != "" {
				b.WriteString("- " + text + "\n")
			}
		case "blockquote":
			if text := normalize(s.Text()); text != "" {
				b.WriteString("> " + text + "\n\n")
			}
		case "pre":
			if text := strings.TrimRight(s.Text(), "\n"); strings.TrimSpace(text) != "" {
				b.WriteString("```\n" + text + "\n```\n\n")
			}
		}
	})

	return strings.TrimSpace(b.String()), nil
}

// normalize collapses runs of whitespace, which HTML treats as a single
// space anyway.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
