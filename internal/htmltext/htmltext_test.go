package htmltext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToMarkdown_Headings(t *testing.T) {
	md, err := ToMarkdown("<h1>Top</h1><h2>Sub</h2><h3>Deep</h3>")
	require.NoError(t, err)
	require.Equal(t, "# Top\n\n## Sub\n\n### Deep", md)
}

func TestToMarkdown_ParagraphsAndWhitespace(t *testing.T) {
	md, err := ToMarkdown("<p>Hello\n   world</p><p>Second</p>")
	require.NoError(t, err)
	require.Equal(t, "Hello world\n\nSecond", md)
}

func TestToMarkdown_Links(t *testing.T) {
	md, err := ToMarkdown(`<p>See <a href="https://a.com/docs">the docs</a> for more.</p>`)
	require.NoError(t, err)
	require.Equal(t, "See [the docs](https://a.com/docs) for more.", md)
}

func TestToMarkdown_LinkWithoutText(t *testing.T) {
	md, err := ToMarkdown(`<p><a href="https://a.com"></a></p>`)
	require.NoError(t, err)
	require.Contains(t, md, "[https://a.com](https://a.com)")
}

func TestToMarkdown_Lists(t *testing.T) {
	md, err := ToMarkdown("<ul><li>one</li><li>two</li></ul>")
	require.NoError(t, err)
	require.Equal(t, "- one\n- two", md)
}

func TestToMarkdown_Blockquote(t *testing.T) {
	md, err := ToMarkdown("<blockquote><p>quoted text</p></blockquote>")
	require.NoError(t, err)
	require.Equal(t, "> quoted text", md)
}

func TestToMarkdown_CodeBlock(t *testing.T) {
	md, err := ToMarkdown("<pre>func main() {}\n</pre>")
	require.NoError(t, err)
	require.Equal(t, "```\nfunc main() {}\n```", md)
}

func TestToMarkdown_StripsScripts(t *testing.T) {
	md, err := ToMarkdown(`<p>safe</p><script>alert("xss")</script>`)
	require.NoError(t, err)
	require.Equal(t, "safe", md)
}

func TestToMarkdown_FullDocument(t *testing.T) {
	html := `<html><head><title>T</title></head><body>
		<h1>News</h1>
		<p>A story about <a href="https://a.com/x">things</a>.</p>
		<ul><li>first</li><li>second</li></ul>
	</body></html>`
	md, err := ToMarkdown(html)
	require.NoError(t, err)
	require.Contains(t, md, "# News")
	require.Contains(t, md, "[things](https://a.com/x)")
	require.Contains(t, md, "- first")
	require.NotContains(t, md, "<")
}

func TestToMarkdown_EmptyDocument(t *testing.T) {
	md, err := ToMarkdown("")
	require.NoError(t, err)
	require.Empty(t, md)
}
