// FILE: loglens/src/internal/service/service.go
package service

import (
	"context"
	"fmt"

	"loglens/src/internal/config"
	"loglens/src/internal/filter"
	"loglens/src/internal/geo"
	"loglens/src/internal/source"

	"github.com/lixenwraith/log"
)

// Service wires configuration into an analysis run.
type Service struct {
	cfg      *config.Config
	resolver *geo.Resolver
	pipeline *Pipeline
	logger   *log.Logger
}

// NewService creates the service and its geo providers.
func NewService(cfg *config.Config, logger *log.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	s := &Service{cfg: cfg, logger: logger}

	if cfg.Geo.Enabled {
		resolver, err := s.createResolver()
		if err != nil {
			return nil, err
		}
		s.resolver = resolver
	}

	return s, nil
}

// createResolver is a factory for the provider chain configured under [geo].
func (s *Service) createResolver() (*geo.Resolver, error) {
	gc := s.cfg.Geo

	var primary, fallback geo.Provider
	if gc.DatabasePath != "" {
		mm, err := geo.NewMaxMindProvider(gc.DatabasePath)
		if err != nil {
			return nil, err
		}
		primary = mm
	}
	if gc.Fallback.Enabled {
		fallback = geo.NewIP2CProvider(geo.IP2CConfig{
			URL:        gc.Fallback.URL,
			Timeout:    gc.Fallback.Timeout(),
			RatePerSec: gc.Fallback.RatePerSec,
			Burst:      gc.Fallback.Burst,
		})
	}

	if primary == nil && fallback == nil {
		s.logger.Warn("msg", "Geo enrichment enabled without a database or fallback, all locations will be unknown",
			"component", "service")
	}

	s.logger.Info("msg", "Geo resolver created",
		"component", "service",
		"database", gc.DatabasePath,
		"fallback", gc.Fallback.Enabled,
		"cache_size", gc.CacheSize,
		"cache_ttl_seconds", gc.CacheTTLSeconds)

	return geo.NewResolver(primary, fallback, geo.ResolverOptions{
		CacheSize: gc.CacheSize,
		CacheTTL:  gc.CacheTTL(),
	}, s.logger), nil
}

// Analyze reads the configured input and returns the report.
func (s *Service) Analyze(ctx context.Context) (*Report, error) {
	sources, err := source.Open(s.cfg.Input.Path, s.cfg.Input.MaxLineKB, s.logger)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeSources(ctx, sources)
}

// AnalyzeSources runs the configured pipeline over the given sources.
func (s *Service) AnalyzeSources(ctx context.Context, sources []source.Source) (*Report, error) {
	var selectors []filter.Selector
	if path := s.cfg.Report.SelectorFile; path != "" {
		loaded, err := filter.LoadSelectors(path)
		if err != nil {
			return nil, err
		}
		selectors = loaded
	}

	opts := PipelineOptions{
		Format:       s.cfg.Input.Format,
		MaxLineKB:    s.cfg.Input.MaxLineKB,
		Filters:      s.cfg.Filters,
		Selectors:    selectors,
		Aggregations: s.cfg.Report.Aggregations,
		GeoWorkers:   s.cfg.Geo.Workers,
	}

	var resolver GeoResolver
	if s.resolver != nil {
		resolver = s.resolver
	}

	pipeline, err := NewPipeline(opts, resolver, s.logger)
	if err != nil {
		return nil, err
	}
	s.pipeline = pipeline

	report, err := pipeline.Run(ctx, sources)
	if err != nil {
		return nil, err
	}
	if s.resolver != nil {
		report.Stats["geo"] = s.resolver.GetStats()
	}
	return report, nil
}

// GetGlobalStats returns statistics of the last run.
func (s *Service) GetGlobalStats() map[string]any {
	stats := map[string]any{}
	if s.pipeline != nil {
		stats["pipeline"] = s.pipeline.GetStats()
	}
	if s.resolver != nil {
		stats["geo"] = s.resolver.GetStats()
	}
	return stats
}

// Shutdown releases the geo providers.
func (s *Service) Shutdown() {
	if s.resolver == nil {
		return
	}
	if err := s.resolver.Close(); err != nil {
		s.logger.Warn("msg", "Failed to close geo resolver",
			"component", "service",
			"error", err)
	}
	s.logger.Debug("msg", "Service shutdown complete", "component", "service")
}
