package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/pickr/internal/validation"
)

// Lookup backends selectable through search.backend.
const (
	BackendSimulated = "simulated"
	BackendIndex     = "index"
	BackendHTTP      = "http"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	Widgets  WidgetsConfig  `mapstructure:"widgets"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	Debounce         time.Duration `mapstructure:"debounce"`
	MinChars         int           `mapstructure:"min_chars"`
	Limit            int           `mapstructure:"limit"`
	Backend          string        `mapstructure:"backend"`
	IndexPath        string        `mapstructure:"index_path"`
	RemoteURL        string        `mapstructure:"remote_url"`
	RemoteRate       float64       `mapstructure:"remote_rate"`
	RemoteTimeout    time.Duration `mapstructure:"remote_timeout"`
	AllowLocal       bool          `mapstructure:"allow_local"`
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
	Placeholder      string        `mapstructure:"placeholder"`
}

type WidgetsConfig struct {
	MaxSelections int `mapstructure:"max_selections"`
	MaxRows       int `mapstructure:"max_rows"`
}

type CatalogConfig struct {
	Feeds       []string      `mapstructure:"feeds"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "pickr", "config.toml")
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".pickr", "pickr.db"),
			Timeout: 1 * time.Second,
		},
		Search: SearchConfig{
			Debounce:         300 * time.Millisecond,
			MinChars:         1,
			Limit:            20,
			Backend:          BackendSimulated,
			IndexPath:        filepath.Join(homeDir, ".pickr", "index.bleve"),
			RemoteRate:       5,
			RemoteTimeout:    10 * time.Second,
			SimulatedLatency: 500 * time.Millisecond,
			Placeholder:      "Type to search…",
		},
		Widgets: WidgetsConfig{
			MaxSelections: 0,
			MaxRows:       6,
		},
		Catalog: CatalogConfig{
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "pickr/1.0 (https://github.com/pders01/pickr)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
			},
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

// flatten lists every setting under its dotted viper key.
func flatten(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"database.path":            cfg.Database.Path,
		"database.timeout":         cfg.Database.Timeout,
		"search.debounce":          cfg.Search.Debounce,
		"search.min_chars":         cfg.Search.MinChars,
		"search.limit":             cfg.Search.Limit,
		"search.backend":           cfg.Search.Backend,
		"search.index_path":        cfg.Search.IndexPath,
		"search.remote_url":        cfg.Search.RemoteURL,
		"search.remote_rate":       cfg.Search.RemoteRate,
		"search.remote_timeout":    cfg.Search.RemoteTimeout,
		"search.allow_local":       cfg.Search.AllowLocal,
		"search.simulated_latency": cfg.Search.SimulatedLatency,
		"search.placeholder":       cfg.Search.Placeholder,
		"widgets.max_selections":   cfg.Widgets.MaxSelections,
		"widgets.max_rows":         cfg.Widgets.MaxRows,
		"catalog.feeds":            cfg.Catalog.Feeds,
		"catalog.http_timeout":     cfg.Catalog.HTTPTimeout,
		"catalog.user_agent":       cfg.Catalog.UserAgent,
		"ui.colors.primary":        cfg.UI.Colors.Primary,
		"ui.colors.secondary":      cfg.UI.Colors.Secondary,
		"ui.colors.accent":         cfg.UI.Colors.Accent,
		"ui.colors.background":     cfg.UI.Colors.Background,
		"ui.colors.text":           cfg.UI.Colors.Text,
		"ui.colors.muted":          cfg.UI.Colors.Muted,
		"ui.colors.error":          cfg.UI.Colors.Error,
		"log.level":                cfg.Log.Level,
		"log.file":                 cfg.Log.File,
	}
}

// Load reads configPath, or the default location when empty, on top of
// the built-in defaults. A missing default file is not an error. PICKR_*
// environment variables override both, e.g. PICKR_SEARCH_BACKEND.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	for key, value := range flatten(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PICKR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Database.Path, &c.Search.IndexPath, &c.Log.File} {
		expanded, err := validation.ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	switch c.Search.Backend {
	case BackendSimulated, BackendIndex:
	case BackendHTTP:
		if c.Search.RemoteURL == "" {
			return fmt.Errorf("search.remote_url is required for the %q backend", BackendHTTP)
		}
	default:
		return fmt.Errorf("unknown search.backend %q", c.Search.Backend)
	}
	if c.Search.MinChars < 0 {
		return fmt.Errorf("search.min_chars must not be negative")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.Widgets.MaxSelections < 0 {
		return fmt.Errorf("widgets.max_selections must not be negative")
	}
	if c.Widgets.MaxRows < 1 {
		return fmt.Errorf("widgets.max_rows must be at least 1")
	}
	return nil
}

func Save(cfg *Config, path string) error {
	v := viper.New()

	// Durations are written as strings for readability.
	for key, value := range flatten(cfg) {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		if key == "catalog.feeds" && cfg.Catalog.Feeds == nil {
			value = []string{}
		}
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
