// FILE: loglens/src/internal/config/config.go
package config

import (
	"time"

	"loglens/src/internal/filter"
)

// Config is the full loglens configuration tree.
type Config struct {
	Input   InputConfig     `toml:"input"`
	Logging *LogConfig      `toml:"logging"`
	Geo     GeoConfig       `toml:"geo"`
	Filters []filter.Config `toml:"filters"`
	Report  ReportConfig    `toml:"report"`
}

type InputConfig struct {
	// File path, pattern such as /var/log/nginx/access*.log, or "-" for stdin
	Path string `toml:"path"`

	// "auto", "generic", "common", "combined"
	Format string `toml:"format"`

	MaxLineKB int `toml:"max_line_kb"`
}

type GeoConfig struct {
	Enabled bool `toml:"enabled"`

	// MaxMind City database; empty skips straight to the fallback service
	DatabasePath string `toml:"database_path"`

	// 0 = unbounded
	CacheSize       int   `toml:"cache_size"`
	CacheTTLSeconds int64 `toml:"cache_ttl_seconds"`

	// Concurrent lookups during enrichment
	Workers int `toml:"workers"`

	Fallback FallbackConfig `toml:"fallback"`
}

type FallbackConfig struct {
	Enabled    bool    `toml:"enabled"`
	URL        string  `toml:"url"`
	TimeoutMS  int64   `toml:"timeout_ms"`
	RatePerSec float64 `toml:"rate_per_sec"`
	Burst      int     `toml:"burst"`
}

type ReportConfig struct {
	// Aggregation names to run; empty runs all applicable to the format
	Aggregations []string `toml:"aggregations"`

	// "text", "json", "auto"
	Output string `toml:"output"`

	// Rows per aggregation, 0 = all
	Top int `toml:"top"`

	// JSON array of drill-down selectors narrowing the entries before aggregation
	SelectorFile string `toml:"selector_file"`
}

// Report output modes
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputAuto = "auto"
)

func (g GeoConfig) CacheTTL() time.Duration {
	return time.Duration(g.CacheTTLSeconds) * time.Second
}

func (f FallbackConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

func defaults() *Config {
	return &Config{
		Input: InputConfig{
			Path:      "-",
			Format:    "auto",
			MaxLineKB: 1024,
		},
		Logging: DefaultLogConfig(),
		Geo: GeoConfig{
			Enabled:         false,
			DatabasePath:    "",
			CacheSize:       0,
			CacheTTLSeconds: 0,
			Workers:         8,
			Fallback: FallbackConfig{
				Enabled:    true,
				URL:        "https://ip2c.org/",
				TimeoutMS:  5000,
				RatePerSec: 5,
				Burst:      5,
			},
		},
		Filters: []filter.Config{},
		Report: ReportConfig{
			Aggregations: []string{},
			Output:       OutputAuto,
			Top:          20,
		},
	}
}

// Defaults returns a fresh default configuration.
func Defaults() *Config {
	return defaults()
}
