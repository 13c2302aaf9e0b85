package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/pickr/internal/catalog"
	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/config"
	"github.com/pders01/pickr/internal/storage"
	"github.com/pders01/pickr/internal/validation"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pickr %s\n", Version)
		fmt.Fprintln(out, "Combobox playground")
		fmt.Fprintln(out, "github.com/pders01/pickr")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) == 1 {
			p, err := validation.ExpandPath(args[0])
			if err != nil {
				return err
			}
			path = p
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and edit the option catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every option with its origin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(_ *config.Config, store *storage.Store) error {
			records, err := store.AllRecords()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(records))
			return nil
		})
	},
}

var (
	importFile  string
	importFeeds []string
)

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import options from a TOML file or RSS/Atom feeds",
	Long: "Import options from a TOML catalog file and/or feed URLs. Each feed item title becomes an option.\n" +
		"Without flags the feeds listed under catalog.feeds in the config are used.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(func(cfg *config.Config, store *storage.Store) error {
			feeds := importFeeds
			if importFile == "" && len(feeds) == 0 {
				feeds = cfg.Catalog.Feeds
			}
			if importFile == "" && len(feeds) == 0 {
				return errors.New("nothing to import: pass --file or --feed, or set catalog.feeds")
			}

			var (
				options []combobox.Option
				errs    []error
			)
			if importFile != "" {
				path, err := validation.ExpandPath(importFile)
				if err != nil {
					return err
				}
				fromFile, err := catalog.LoadFile(path)
				if err != nil {
					return err
				}
				options = append(options, fromFile...)
			}
			if len(feeds) > 0 {
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
				defer stop()
				fromFeeds, err := newImporter(cfg).ImportAll(ctx, feeds)
				if err != nil {
					errs = append(errs, err)
				}
				options = append(options, fromFeeds...)
			}

			options = catalog.Normalize(options)
			if err := store.SaveOptions(options, storage.OriginImported); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d options\n", len(options))

			if err := errors.Join(errs...); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Some sources failed:\n%v\n", err)
				if len(options) == 0 {
					return errors.New("import failed")
				}
			}
			return nil
		})
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the catalog to a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := validation.ExpandPath(args[0])
		if err != nil {
			return err
		}
		return withStore(func(_ *config.Config, store *storage.Store) error {
			options, err := store.AllOptions()
			if err != nil {
				return err
			}
			if err := catalog.SaveFile(path, options); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d options to %s\n", len(options), path)
			return nil
		})
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <value>...",
	Short: "Remove options by value",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(_ *config.Config, store *storage.Store) error {
			for _, v := range args {
				if err := store.DeleteOption(v); err != nil {
					if errors.Is(err, storage.ErrNotFound) {
						return fmt.Errorf("no option with value %q", v)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", v)
			}
			return nil
		})
	},
}

func init() {
	catalogImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "TOML catalog file to import")
	catalogImportCmd.Flags().StringSliceVar(&importFeeds, "feed", nil, "Feed URL to import (repeatable)")

	configCmd.AddCommand(configGenCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd, catalogExportCmd, catalogRemoveCmd)
	rootCmd.AddCommand(versionCmd, configCmd, catalogCmd)
}

// withStore runs fn against the configured store and closes it afterwards.
func withStore(fn func(*config.Config, *storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func newImporter(cfg *config.Config) *catalog.FeedImporter {
	validator := validation.NewURLValidator()
	if cfg.Search.AllowLocal {
		validator = validation.NewPermissiveURLValidator()
	}
	return catalog.NewFeedImporter(catalog.ImporterOptions{
		Timeout:   cfg.Catalog.HTTPTimeout,
		UserAgent: cfg.Catalog.UserAgent,
		Validator: validator,
	})
}

func renderRecords(records []storage.Record) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("VALUE", "LABEL", "ORIGIN", "ADDED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range records {
		t.Row(r.Value, r.Label, string(r.Origin), r.CreatedAt.Format("2006-01-02"))
	}
	return t.Render()
}
