package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mirage/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "https://www.google.com/search?q=%s", cfg.SearchURL)
	require.Equal(t, 100, cfg.HistoryLimit)
	require.Equal(t, "gemini-2.5-flash", cfg.Provider.Model)
	require.Equal(t, "GEMINI_API_KEY", cfg.Provider.APIKeyEnv)
	require.Equal(t, 90, cfg.Provider.TimeoutSeconds)
	require.Equal(t, 15, cfg.Provider.CacheTTLMinutes)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, 300, cfg.UI.SuggestDebounceMs)
	require.True(t, cfg.UI.ShowStatusBar)
	require.False(t, cfg.Tracing.Enabled)
}

func TestDefaults_PassValidation(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_SearchURL(t *testing.T) {
	cfg := Defaults()

	cfg.SearchURL = "https://duckduckgo.com/?q=%s"
	require.NoError(t, Validate(cfg))

	cfg.SearchURL = "https://example.com/search"
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "placeholder")

	cfg.SearchURL = "https://a.com/%s/and/%s"
	require.Error(t, Validate(cfg))

	// Empty means "use default"
	cfg.SearchURL = ""
	require.NoError(t, Validate(cfg))
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := Defaults()
	cfg.HistoryLimit = -1
	require.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.Provider.TimeoutSeconds = -5
	require.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.Provider.CacheTTLMinutes = -1
	require.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.UI.SuggestDebounceMs = -10
	require.Error(t, Validate(cfg))
}

func TestValidate_MarkdownStyle(t *testing.T) {
	cfg := Defaults()

	for _, style := range []string{"", "dark", "light"} {
		cfg.UI.MarkdownStyle = style
		require.NoError(t, Validate(cfg), "style %q should be valid", style)
	}

	cfg.UI.MarkdownStyle = "sepia"
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "markdown_style")
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(tracing.Config{SampleRate: 0.5, Exporter: "stdout"}))

	err := ValidateTracing(tracing.Config{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(tracing.Config{Exporter: "kafka"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exporter")

	err = ValidateTracing(tracing.Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file_path")

	err = ValidateTracing(tracing.Config{Enabled: true, Exporter: "otlp"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "otlp_endpoint")

	// Disabled config does not require paths
	require.NoError(t, ValidateTracing(tracing.Config{Enabled: false, Exporter: "file"}))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "search_url:")
	require.Contains(t, content, "history_limit: 100")
	require.Contains(t, content, "gemini-2.5-flash")
	require.True(t, strings.HasPrefix(content, "# Mirage Configuration"))
}
