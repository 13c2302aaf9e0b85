package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Path:    "",
		Timeout: 1 * time.Second,
	}
	cfg.Search.Debounce = 5 * time.Millisecond
	cfg.Search.IndexPath = ""
	cfg.Search.SimulatedLatency = 0
	cfg.Search.RemoteTimeout = 2 * time.Second
	cfg.Search.RemoteRate = 0
	cfg.Search.AllowLocal = true
	cfg.Catalog.HTTPTimeout = 5 * time.Second
	cfg.Catalog.UserAgent = "pickr-test/1.0"
	return cfg
}
