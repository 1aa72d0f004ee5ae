package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mirage/internal/app"
	"mirage/internal/config"
	"mirage/internal/downloads"
	"mirage/internal/log"
	"mirage/internal/provider"
	"mirage/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "mirage",
	Short:   "A terminal web browser for an imagined internet",
	Long:    `Mirage is a terminal browser whose pages are synthesized on demand by a generative model: tabs, history, bookmarks, and tab groups over content that never existed until you asked for it.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/mirage/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to .mirage/debug.log")
	rootCmd.Flags().String("model", "",
		"generative model for page synthesis")
	rootCmd.Flags().Bool("demo", false,
		"force the offline demo provider even when an API key is set")

	_ = viper.BindPFlag("provider.model", rootCmd.Flags().Lookup("model"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("search_url", defaults.SearchURL)
	viper.SetDefault("history_limit", defaults.HistoryLimit)
	viper.SetDefault("downloads_dir", defaults.DownloadsDir)
	viper.SetDefault("provider.model", defaults.Provider.Model)
	viper.SetDefault("provider.api_key_env", defaults.Provider.APIKeyEnv)
	viper.SetDefault("provider.timeout_seconds", defaults.Provider.TimeoutSeconds)
	viper.SetDefault("provider.cache_ttl_minutes", defaults.Provider.CacheTTLMinutes)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.suggest_debounce_ms", defaults.UI.SuggestDebounceMs)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .mirage/config.yaml (current directory)
		// 2. ~/.config/mirage/config.yaml (user config)
		if _, err := os.Stat(".mirage/config.yaml"); err == nil {
			viper.SetConfigFile(".mirage/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "mirage"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .mirage/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".mirage/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug {
		cleanup, err := log.Init(".mirage/debug.log")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	tracer, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracer.Shutdown(ctx)
	}()

	prov, err := buildProvider(cmd)
	if err != nil {
		return err
	}

	var watcher *downloads.Watcher
	if cfg.DownloadsDir != "" {
		if w, werr := downloads.New(downloads.DefaultConfig(cfg.DownloadsDir)); werr == nil {
			if serr := w.Start(); serr == nil {
				watcher = w
			} else {
				log.Warn(log.CatDownloads, "Downloads watcher disabled", "error", serr)
			}
		}
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".mirage/config.yaml"
	}

	zone.NewGlobal()
	model := app.New(app.Config{
		Provider:   prov,
		Cfg:        cfg,
		ConfigPath: configFilePath,
		Version:    version,
		Tracing:    tracer,
		Downloads:  watcher,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// buildProvider picks the content provider: Gemini when an API key is
// available, the offline demo provider otherwise. Either way the result
// is wrapped in the page cache.
func buildProvider(cmd *cobra.Command) (provider.Provider, error) {
	demo, _ := cmd.Flags().GetBool("demo")

	apiKey := ""
	if cfg.Provider.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.Provider.APIKeyEnv)
	}

	var prov provider.Provider
	if demo || apiKey == "" {
		if !demo {
			fmt.Fprintf(os.Stderr, "%s is not set, starting in offline demo mode\n", cfg.Provider.APIKeyEnv)
		}
		prov = &provider.Static{}
	} else {
		gemini, err := provider.NewGemini(context.Background(), provider.GeminiConfig{
			APIKey:  apiKey,
			Model:   cfg.Provider.Model,
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("creating content provider: %w", err)
		}
		prov = gemini
	}

	ttl := time.Duration(cfg.Provider.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		return prov, nil
	}
	return provider.NewCached(prov, ttl), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
