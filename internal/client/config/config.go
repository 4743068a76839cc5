// Package config handles configuration for the CLI client component.
package config

import "time"

// Config holds runtime settings for the clipstream CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API (no trailing slash).
//   - HistoryDBPath: path to the local SQLite upload history database.
//   - RequestTimeout: per-request timeout for API calls. Transfers are not
//     bounded by it; a 3 GiB upload can legitimately run for hours.
type Config struct {
	ServerURL      string
	HistoryDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HistoryDBPath = "clipstream.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
