// FILE: loglens/src/internal/config/validation.go
package config

import (
	"fmt"
	"strings"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/entry"
)

func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateInput(&c.Input); err != nil {
		return fmt.Errorf("input config: %w", err)
	}

	if err := validateLogConfig(c.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := validateGeo(&c.Geo); err != nil {
		return fmt.Errorf("geo config: %w", err)
	}

	for i := range c.Filters {
		if err := validateFilter(i, &c.Filters[i]); err != nil {
			return err
		}
	}

	if err := validateReport(&c.Report); err != nil {
		return fmt.Errorf("report config: %w", err)
	}

	return nil
}

func validateInput(in *InputConfig) error {
	if strings.TrimSpace(in.Path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.EqualFold(in.Format, entry.FormatAuto) && in.Format != "" {
		if _, err := entry.Lookup(in.Format); err != nil {
			return fmt.Errorf("format: %w (known: %s)", err, strings.Join(entry.Names(), ", "))
		}
	}

	if in.MaxLineKB < 0 {
		return fmt.Errorf("max_line_kb must be non-negative: %d", in.MaxLineKB)
	}
	return nil
}

func validateGeo(g *GeoConfig) error {
	if g.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative: %d", g.CacheSize)
	}
	if g.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must be non-negative: %d", g.CacheTTLSeconds)
	}
	if g.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %d", g.Workers)
	}

	if !g.Enabled || !g.Fallback.Enabled {
		return nil
	}

	if strings.TrimSpace(g.Fallback.URL) == "" {
		return fmt.Errorf("fallback url cannot be empty")
	}
	if !strings.HasPrefix(g.Fallback.URL, "http://") && !strings.HasPrefix(g.Fallback.URL, "https://") {
		return fmt.Errorf("fallback url must be http or https: %s", g.Fallback.URL)
	}
	if g.Fallback.TimeoutMS <= 0 {
		return fmt.Errorf("fallback timeout_ms must be positive: %d", g.Fallback.TimeoutMS)
	}
	if g.Fallback.RatePerSec < 0 || g.Fallback.Burst < 0 {
		return fmt.Errorf("fallback rate_per_sec and burst must be non-negative")
	}
	return nil
}

func validateReport(r *ReportConfig) error {
	switch r.Output {
	case OutputText, OutputJSON, OutputAuto:
	default:
		return fmt.Errorf("invalid output mode: %s", r.Output)
	}

	if r.Top < 0 {
		return fmt.Errorf("top must be non-negative: %d", r.Top)
	}

	for _, name := range r.Aggregations {
		if _, ok := aggregate.Lookup(name, aggregate.Groups()...); !ok {
			return fmt.Errorf("unknown aggregation: %s", name)
		}
	}
	return nil
}
