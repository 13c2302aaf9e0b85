package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Timeout != 1*time.Second {
		t.Errorf("Database.Timeout = %v, want 1s", cfg.Database.Timeout)
	}
	if !strings.HasSuffix(cfg.Database.Path, filepath.Join(".pickr", "pickr.db")) {
		t.Errorf("Database.Path = %s, want it under ~/.pickr", cfg.Database.Path)
	}

	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want 300ms", cfg.Search.Debounce)
	}
	if cfg.Search.MinChars != 1 {
		t.Errorf("Search.MinChars = %d, want 1", cfg.Search.MinChars)
	}
	if cfg.Search.Backend != BackendSimulated {
		t.Errorf("Search.Backend = %s, want %s", cfg.Search.Backend, BackendSimulated)
	}
	if cfg.Search.SimulatedLatency != 500*time.Millisecond {
		t.Errorf("Search.SimulatedLatency = %v, want 500ms", cfg.Search.SimulatedLatency)
	}
	if cfg.Catalog.UserAgent == "" {
		t.Error("Catalog.UserAgent should not be empty")
	}
	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %s, want off", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.Limit != 20 {
		t.Errorf("Search.Limit = %d, want 20", cfg.Search.Limit)
	}
	if cfg.UI.Colors.Primary != "#FF6B6B" {
		t.Errorf("UI.Colors.Primary = %s, want #FF6B6B", cfg.UI.Colors.Primary)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[database]
path = "/tmp/test.db"
timeout = "10s"

[search]
debounce = "150ms"
min_chars = 3
backend = "index"

[widgets]
max_selections = 4
max_rows = 8

[ui.colors]
primary = "#FF0000"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %s, want '/tmp/test.db'", cfg.Database.Path)
	}
	if cfg.Database.Timeout != 10*time.Second {
		t.Errorf("Database.Timeout = %v, want 10s", cfg.Database.Timeout)
	}
	if cfg.Search.Debounce != 150*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want 150ms", cfg.Search.Debounce)
	}
	if cfg.Search.MinChars != 3 {
		t.Errorf("Search.MinChars = %d, want 3", cfg.Search.MinChars)
	}
	if cfg.Search.Backend != BackendIndex {
		t.Errorf("Search.Backend = %s, want index", cfg.Search.Backend)
	}
	if cfg.Widgets.MaxSelections != 4 {
		t.Errorf("Widgets.MaxSelections = %d, want 4", cfg.Widgets.MaxSelections)
	}
	if cfg.Widgets.MaxRows != 8 {
		t.Errorf("Widgets.MaxRows = %d, want 8", cfg.Widgets.MaxRows)
	}
	if cfg.UI.Colors.Primary != "#FF0000" {
		t.Errorf("UI.Colors.Primary = %s, want '#FF0000'", cfg.UI.Colors.Primary)
	}
	// Keys absent from the file keep their defaults.
	if cfg.UI.Colors.Secondary != "#4ECDC4" {
		t.Errorf("UI.Colors.Secondary = %s, want default", cfg.UI.Colors.Secondary)
	}
	if cfg.Search.Limit != 20 {
		t.Errorf("Search.Limit = %d, want default 20", cfg.Search.Limit)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[search]\nmin_chars = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PICKR_SEARCH_MIN_CHARS", "2")
	t.Setenv("PICKR_SEARCH_BACKEND", "index")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.MinChars != 2 {
		t.Errorf("Search.MinChars = %d, want 2 from env", cfg.Search.MinChars)
	}
	if cfg.Search.Backend != BackendIndex {
		t.Errorf("Search.Backend = %s, want index from env", cfg.Search.Backend)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("Load() error = %v, want a read error", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown backend", "[search]\nbackend = \"grpc\"\n", "unknown search.backend"},
		{"http without url", "[search]\nbackend = \"http\"\n", "remote_url is required"},
		{"negative min chars", "[search]\nmin_chars = -1\n", "min_chars"},
		{"negative max selections", "[widgets]\nmax_selections = -2\n", "max_selections"},
		{"zero max rows", "[widgets]\nmax_rows = 0\n", "max_rows"},
		{"malformed toml", "[search\n", "reading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := defaultConfig()
	cfg.Database.Path = "/test/path.db"
	cfg.Search.Backend = BackendHTTP
	cfg.Search.RemoteURL = "https://lookup.dev/options"
	cfg.Search.Debounce = 250 * time.Millisecond
	cfg.Catalog.Feeds = []string{"https://blog.golang.org/feed.atom"}
	cfg.UI.Colors.Primary = "#00FF00"

	savePath := filepath.Join(tmpDir, "nested", "saved-config.toml")
	if err := Save(cfg, savePath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("Save() did not create config file: %v", err)
	}
	if !strings.Contains(string(data), "250ms") {
		t.Errorf("durations should be written as strings, got:\n%s", data)
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Database.Path != cfg.Database.Path {
		t.Errorf("Loaded Database.Path = %s, want %s", loaded.Database.Path, cfg.Database.Path)
	}
	if loaded.Search.RemoteURL != cfg.Search.RemoteURL {
		t.Errorf("Loaded Search.RemoteURL = %s, want %s", loaded.Search.RemoteURL, cfg.Search.RemoteURL)
	}
	if loaded.Search.Debounce != cfg.Search.Debounce {
		t.Errorf("Loaded Search.Debounce = %v, want %v", loaded.Search.Debounce, cfg.Search.Debounce)
	}
	if len(loaded.Catalog.Feeds) != 1 || loaded.Catalog.Feeds[0] != cfg.Catalog.Feeds[0] {
		t.Errorf("Loaded Catalog.Feeds = %v, want %v", loaded.Catalog.Feeds, cfg.Catalog.Feeds)
	}
	if loaded.UI.Colors.Primary != "#00FF00" {
		t.Errorf("Loaded UI.Colors.Primary = %s, want #00FF00", loaded.UI.Colors.Primary)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := GenerateDefaultConfig(path); err != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want 300ms", cfg.Search.Debounce)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()
	if cfg.Database.Path != "" {
		t.Errorf("TestConfig Database.Path = %s, want empty", cfg.Database.Path)
	}
	if cfg.Search.SimulatedLatency != 0 {
		t.Errorf("TestConfig SimulatedLatency = %v, want 0", cfg.Search.SimulatedLatency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("TestConfig should validate: %v", err)
	}
}
