package cmd

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"mirage/internal/config"
	"mirage/internal/provider"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfig_UsesDefaultsWithoutFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	cfgFile = ""
	t.Cleanup(func() { cfg = config.Config{} })

	initConfig()

	defaults := config.Defaults()
	require.Equal(t, defaults.SearchURL, cfg.SearchURL)
	require.Equal(t, defaults.HistoryLimit, cfg.HistoryLimit)
	require.Equal(t, defaults.Provider.Model, cfg.Provider.Model)

	// A default config file was materialized for later edits.
	_, err := os.Stat(".mirage/config.yaml")
	require.NoError(t, err)
}

func TestInitConfig_ReadsExplicitFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := dir + "/config.yaml"
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 7\nui:\n  markdown_style: light\n"), 0o644))

	cfgFile = path
	t.Cleanup(func() { cfgFile = ""; cfg = config.Config{} })

	initConfig()
	require.Equal(t, 7, cfg.HistoryLimit)
	require.Equal(t, "light", cfg.UI.MarkdownStyle)
}

func TestBuildProvider_FallsBackToDemoWithoutKey(t *testing.T) {
	cfg = config.Defaults()
	cfg.Provider.APIKeyEnv = "MIRAGE_TEST_MISSING_KEY"
	cfg.Provider.CacheTTLMinutes = 0
	t.Cleanup(func() { cfg = config.Config{} })

	prov, err := buildProvider(rootCmd)
	require.NoError(t, err)
	_, ok := prov.(*provider.Static)
	require.True(t, ok, "missing API key should select the demo provider")
}

func TestBuildProvider_WrapsInCacheWhenTTLSet(t *testing.T) {
	cfg = config.Defaults()
	cfg.Provider.APIKeyEnv = "MIRAGE_TEST_MISSING_KEY"
	cfg.Provider.CacheTTLMinutes = 10
	t.Cleanup(func() { cfg = config.Config{} })

	prov, err := buildProvider(rootCmd)
	require.NoError(t, err)
	_, ok := prov.(*provider.Cached)
	require.True(t, ok)
}

func TestSetVersion_PropagatesToCommand(t *testing.T) {
	old := version
	t.Cleanup(func() { SetVersion(old) })

	SetVersion("9.9.9")
	require.Equal(t, "9.9.9", rootCmd.Version)
}
