// FILE: loglens/src/internal/service/pipeline.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/core"
	"loglens/src/internal/entry"
	"loglens/src/internal/filter"
	"loglens/src/internal/geo"
	"loglens/src/internal/source"

	"github.com/lixenwraith/log"
	"golang.org/x/sync/errgroup"
)

// GeoResolver resolves IP addresses to locations.
type GeoResolver interface {
	Resolve(ctx context.Context, addr string) (core.GeoRecord, error)
}

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	// Format name or "auto" for detection by input name
	Format    string
	MaxLineKB int

	// Regex line filters, applied after enrichment
	Filters []filter.Config

	// Drill-down selectors applied after enrichment, with AND semantics
	Selectors []filter.Selector

	// Aggregation names; empty runs every aggregation applicable to the inputs
	Aggregations []string

	// Concurrent geo lookups
	GeoWorkers int
}

// Pipeline reads sources to completion, assembles and parses entries, enriches
// them with location data and runs the selected aggregations.
type Pipeline struct {
	opts        PipelineOptions
	FilterChain *filter.Chain
	Resolver    GeoResolver
	Stats       *PipelineStats
	logger      *log.Logger

	mu         sync.Mutex
	assemblers []*entry.Assembler
}

// PipelineStats contains statistics for a pipeline
type PipelineStats struct {
	StartTime             time.Time
	TotalEntriesProcessed atomic.Uint64
	TotalEntriesFiltered  atomic.Uint64
	TotalEntriesNarrowed  atomic.Uint64
	GeoLookups            atomic.Uint64
	GeoFailures           atomic.Uint64
}

// Aggregation is one computed distribution.
type Aggregation struct {
	aggregate.Definition
	aggregate.Result
}

// Report is the outcome of a pipeline run.
type Report struct {
	Entries      int              `json:"entries"`
	Formats      []string         `json:"formats"`
	Aggregations []Aggregation    `json:"aggregations"`
	Stats        map[string]any   `json:"stats"`
	Records      []*core.LogEntry `json:"-"`
}

// inputEntries are the parsed entries of one source
type inputEntries struct {
	format  entry.Format
	entries []*core.LogEntry
}

// NewPipeline creates a pipeline. resolver may be nil to skip enrichment.
func NewPipeline(opts PipelineOptions, resolver GeoResolver, logger *log.Logger) (*Pipeline, error) {
	if opts.Format != "" && opts.Format != entry.FormatAuto {
		if _, err := entry.Lookup(opts.Format); err != nil {
			return nil, err
		}
	}
	for i, sel := range opts.Selectors {
		if err := sel.Validate(); err != nil {
			return nil, fmt.Errorf("selector[%d]: %w", i, err)
		}
	}
	if opts.GeoWorkers < 1 {
		opts.GeoWorkers = 1
	}

	p := &Pipeline{
		opts:     opts,
		Resolver: resolver,
		Stats:    &PipelineStats{StartTime: time.Now()},
		logger:   logger,
	}

	if len(opts.Filters) > 0 {
		chain, err := filter.NewChain(opts.Filters, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter chain: %w", err)
		}
		p.FilterChain = chain
	}

	return p, nil
}

// Run processes all sources and aggregates the result.
func (p *Pipeline) Run(ctx context.Context, sources []source.Source) (*Report, error) {
	if len(sources) == 0 {
		return nil, errors.New("no input sources")
	}

	inputs := make([]inputEntries, len(sources))
	for i, src := range sources {
		format, err := entry.Resolve(p.opts.Format, src.Name())
		if err != nil {
			return nil, err
		}
		inputs[i].format = format
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			entries, err := p.readSource(gctx, src, inputs[i].format)
			inputs[i].entries = entries
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []*core.LogEntry
	var geoEntries []*core.LogEntry
	formats := make([]entry.Format, 0, len(inputs))
	for _, in := range inputs {
		formats = append(formats, in.format)
		records = append(records, in.entries...)
		if in.format.UsesIPLocation() {
			geoEntries = append(geoEntries, in.entries...)
		}
	}

	if p.Resolver != nil && len(geoEntries) > 0 {
		if err := p.enrich(ctx, geoEntries); err != nil {
			return nil, err
		}
	}

	// Filters may name location fields, so they see enriched entries
	if p.FilterChain != nil {
		kept := make([]*core.LogEntry, 0, len(records))
		for _, e := range records {
			if p.FilterChain.Apply(e) {
				kept = append(kept, e)
			} else {
				p.Stats.TotalEntriesFiltered.Add(1)
			}
		}
		records = kept
	}

	if len(p.opts.Selectors) > 0 {
		before := len(records)
		records = filter.Narrow(records, p.opts.Selectors)
		p.Stats.TotalEntriesNarrowed.Add(uint64(before - len(records)))
	}

	defs := p.definitions(formats)
	view := make([]core.Record, len(records))
	for i, e := range records {
		view[i] = e
	}

	report := &Report{
		Entries: len(records),
		Records: records,
	}
	seen := make(map[string]bool)
	for _, f := range formats {
		if !seen[f.Name()] {
			seen[f.Name()] = true
			report.Formats = append(report.Formats, f.Name())
		}
	}
	for _, d := range defs {
		report.Aggregations = append(report.Aggregations, Aggregation{Definition: d, Result: d.Run(view)})
	}
	report.Stats = p.GetStats()

	p.logger.Info("msg", "Analysis complete",
		"component", "pipeline",
		"entries", report.Entries,
		"aggregations", len(report.Aggregations),
		"duration_ms", time.Since(p.Stats.StartTime).Milliseconds())

	return report, nil
}

// readSource assembles one source's lines into entries.
func (p *Pipeline) readSource(ctx context.Context, src source.Source, format entry.Format) ([]*core.LogEntry, error) {
	asm := entry.NewAssembler(format, src.Name(), p.logger)
	p.mu.Lock()
	p.assemblers = append(p.assemblers, asm)
	p.mu.Unlock()

	p.logger.Debug("msg", "Reading source",
		"component", "pipeline",
		"source", src.Name(),
		"format", format.Name())

	lines := make(chan source.Line, 1024)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		readErr <- src.Read(ctx, lines)
	}()

	var entries []*core.LogEntry
	keep := func(e *core.LogEntry) {
		p.Stats.TotalEntriesProcessed.Add(1)
		entries = append(entries, e)
	}

	for line := range lines {
		if e, ok := asm.Feed(line.Text); ok {
			keep(e)
		}
	}
	if e, ok := asm.Flush(); ok {
		keep(e)
	}

	if err := <-readErr; err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name(), err)
	}
	return entries, nil
}

// enrich resolves every distinct remote host once and merges the location
// fields into the entries. A failed address leaves its entries without location.
func (p *Pipeline) enrich(ctx context.Context, entries []*core.LogEntry) error {
	byAddr := make(map[string][]*core.LogEntry)
	var order []string
	for _, e := range entries {
		addr, ok := e.Get(core.FieldRemoteHost)
		if core.IsMissing(addr, ok) {
			continue
		}
		if _, exists := byAddr[addr]; !exists {
			order = append(order, addr)
		}
		byAddr[addr] = append(byAddr[addr], e)
	}

	results := make([]core.GeoRecord, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.GeoWorkers)
	for i, addr := range order {
		g.Go(func() error {
			p.Stats.GeoLookups.Add(1)
			rec, err := p.Resolver.Resolve(gctx, addr)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.Stats.GeoFailures.Add(1)
				level := p.logger.Warn
				if errors.Is(err, geo.ErrInvalidAddress) {
					level = p.logger.Debug
				}
				level("msg", "Geo resolution failed",
					"component", "pipeline",
					"ip", addr,
					"error", err)
				return nil
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, addr := range order {
		fields := results[i].Fields()
		if len(fields) == 0 {
			continue
		}
		for _, e := range byAddr[addr] {
			e.Merge(fields)
		}
	}
	return nil
}

// definitions picks the aggregations to run for the given input formats.
func (p *Pipeline) definitions(formats []entry.Format) []aggregate.Definition {
	seen := make(map[string]bool)
	var groups []string
	for _, f := range formats {
		for _, g := range f.Groups() {
			if g == aggregate.GroupGeo && p.Resolver == nil {
				continue
			}
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}

	if len(p.opts.Aggregations) == 0 {
		return aggregate.ForGroups(groups...)
	}

	defs := make([]aggregate.Definition, 0, len(p.opts.Aggregations))
	for _, name := range p.opts.Aggregations {
		d, ok := aggregate.Lookup(name, groups...)
		if !ok {
			p.logger.Warn("msg", "Aggregation not applicable to input, skipping",
				"component", "pipeline",
				"aggregation", name)
			continue
		}
		defs = append(defs, d)
	}
	return defs
}

// GetStats returns pipeline statistics
func (p *Pipeline) GetStats() map[string]any {
	p.mu.Lock()
	asmStats := make([]entry.AssemblerStats, 0, len(p.assemblers))
	for _, a := range p.assemblers {
		asmStats = append(asmStats, a.GetStats())
	}
	p.mu.Unlock()

	var filterStats map[string]any
	if p.FilterChain != nil {
		filterStats = p.FilterChain.GetStats()
	}

	return map[string]any{
		"duration_ms":     time.Since(p.Stats.StartTime).Milliseconds(),
		"total_processed": p.Stats.TotalEntriesProcessed.Load(),
		"total_filtered":  p.Stats.TotalEntriesFiltered.Load(),
		"total_narrowed":  p.Stats.TotalEntriesNarrowed.Load(),
		"geo_lookups":     p.Stats.GeoLookups.Load(),
		"geo_failures":    p.Stats.GeoFailures.Load(),
		"inputs":          asmStats,
		"filters":         filterStats,
	}
}
