package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/pickr/internal/catalog"
	"github.com/pders01/pickr/internal/config"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/lookup"
	"github.com/pders01/pickr/internal/storage"
	"github.com/pders01/pickr/internal/tui"
	"github.com/pders01/pickr/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	dbPath     string
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "pickr",
	Short:        "Combobox playground for the terminal",
	Long:         "pickr shows five comboboxes over a shared, persistent catalog of languages and frameworks.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		p, err := validation.ExpandPath(dbPath)
		if err != nil {
			return nil, fmt.Errorf("invalid --db: %w", err)
		}
		cfg.Database.Path = p
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the catalog database, seeding it on first use.
func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.NewStoreWithTimeout(cfg.Database.Path, cfg.Database.Timeout)
	if err != nil {
		return nil, err
	}
	seeded, err := catalog.Seed(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if seeded {
		debuglog.Infof("Seeded catalog at %s", cfg.Database.Path)
	}
	return store, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ApplyColors(cfg.UI.Colors)
		tui.ShowBanner(cmd.OutOrStdout(), Version)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	options, err := store.AllOptions()
	if err != nil {
		return err
	}

	source, err := lookup.New(cfg, options)
	if err != nil {
		return err
	}
	defer source.Close()

	app := tui.NewApp(store, source, options, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	// Stop lookups before the deferred source.Close.
	app.Close()
	if err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
