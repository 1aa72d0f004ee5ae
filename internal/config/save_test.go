package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type savedConfig struct {
	SearchURL    string `yaml:"search_url"`
	HistoryLimit int    `yaml:"history_limit"`
	Provider     struct {
		Model string `yaml:"model"`
	} `yaml:"provider"`
	UI struct {
		MarkdownStyle string `yaml:"markdown_style"`
	} `yaml:"ui"`
}

func readSaved(t *testing.T, path string) savedConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg savedConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	return cfg
}

func TestSaveSearchURL_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveSearchURL(path, "https://duckduckgo.com/?q=%s"))

	cfg := readSaved(t, path)
	require.Equal(t, "https://duckduckgo.com/?q=%s", cfg.SearchURL)
}

func TestSaveHistoryLimit_ReplacesExistingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 100\nsearch_url: keep-me\n"), 0o600))

	require.NoError(t, SaveHistoryLimit(path, 250))

	cfg := readSaved(t, path)
	require.Equal(t, 250, cfg.HistoryLimit)
	require.Equal(t, "keep-me", cfg.SearchURL)
}

func TestSaveProviderModel_CreatesNestedSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 50\n"), 0o600))

	require.NoError(t, SaveProviderModel(path, "gemini-2.5-pro"))

	cfg := readSaved(t, path)
	require.Equal(t, "gemini-2.5-pro", cfg.Provider.Model)
	require.Equal(t, 50, cfg.HistoryLimit)
}

func TestSaveMarkdownStyle_UpdatesNestedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	seed := "ui:\n  markdown_style: dark\n  show_status_bar: true\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	require.NoError(t, SaveMarkdownStyle(path, "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "show_status_bar: true")

	cfg := readSaved(t, path)
	require.Equal(t, "light", cfg.UI.MarkdownStyle)
}

func TestSaveScalar_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	seed := "# my personal setup\nsearch_url: old\n\n# keep history small\nhistory_limit: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	require.NoError(t, SaveSearchURL(path, "https://a.com/?q=%s"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# my personal setup")
	require.Contains(t, content, "# keep history small")
	require.Contains(t, content, "history_limit: 10")
}

func TestSaveScalar_RejectsNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a\n- list\n"), 0o600))

	err := SaveSearchURL(path, "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}
