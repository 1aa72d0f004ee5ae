package page

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mirage/internal/session"
)

func TestShowLoading_DisplaysURL(t *testing.T) {
	m := New("dark").SetSize(60, 20)
	m, cmd := m.ShowLoading("https://example.com")

	require.True(t, m.Loading())
	require.NotNil(t, cmd, "loading should start the spinner tick")
	require.Contains(t, m.View(), "Loading https://example.com")
}

func TestShowError_DisplaysMessageAndRetryHint(t *testing.T) {
	m := New("dark").SetSize(60, 20)
	m = m.ShowError(session.ErrPageLoadFailed)

	out := m.View()
	require.Contains(t, out, "Failed to load page")
	require.Contains(t, out, "ctrl+r to retry")
	require.False(t, m.Loading())
}

func TestShowPage_RendersContentAndSources(t *testing.T) {
	m := New("dark").SetSize(80, 24)
	content := &session.PageContent{
		Title: "Example",
		HTML:  "<h1>Example Domain</h1><p>Some generated text.</p>",
		Sources: []session.Source{
			{Title: "Example source", URI: "https://real.example/ref"},
		},
	}

	m, err := m.ShowPage(content)
	require.NoError(t, err)
	require.False(t, m.Loading())

	out := m.View()
	require.Contains(t, out, "Example Domain")
	require.Contains(t, out, "Some generated text")
	require.Contains(t, out, "Sources:")
	require.Contains(t, out, "[1]")
}

func TestShowPage_NilContentBlanksPane(t *testing.T) {
	m := New("dark").SetSize(80, 24)
	m, err := m.ShowPage(nil)
	require.NoError(t, err)
	require.False(t, m.Loading())
}

func TestShowPage_NoSourcesNoFooter(t *testing.T) {
	m := New("dark").SetSize(80, 24)
	content := &session.PageContent{HTML: "<p>body</p>"}

	m, err := m.ShowPage(content)
	require.NoError(t, err)
	require.NotContains(t, m.View(), "Sources:")
}
