// FILE: loglens/src/internal/service/pipeline_test.go
package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/config"
	"loglens/src/internal/core"
	"loglens/src/internal/filter"
	"loglens/src/internal/source"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource serves fixed lines under a file-like name
type memSource struct {
	name  string
	lines []string
	err   error
}

func (m *memSource) Name() string { return m.name }

func (m *memSource) Read(ctx context.Context, out chan<- source.Line) error {
	for i, l := range m.lines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- source.Line{Source: m.name, Number: uint64(i + 1), Text: l}:
		}
	}
	return m.err
}

func (m *memSource) GetStats() source.SourceStats { return source.SourceStats{Type: "memory", Name: m.name} }

// fakeResolver answers from a table and counts calls per address
type fakeResolver struct {
	mu      sync.Mutex
	records map[string]core.GeoRecord
	calls   map[string]int
}

func newFakeResolver(records map[string]core.GeoRecord) *fakeResolver {
	return &fakeResolver{records: records, calls: make(map[string]int)}
}

func (f *fakeResolver) Resolve(_ context.Context, addr string) (core.GeoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[addr]++
	rec, ok := f.records[addr]
	if !ok {
		return core.GeoRecord{}, errors.New("lookup failed")
	}
	return rec, nil
}

var accessLines = []string{
	`203.0.113.7 - - [10/Oct/2024:13:55:36 +0000] "GET /index.html HTTP/1.1" 200 512 "https://www.google.com/search?q=log+viewer" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`,
	`203.0.113.7 - - [10/Oct/2024:13:55:37 +0000] "GET /style.css HTTP/1.1" 200 128 "https://example.com/index.html" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`,
	`198.51.100.2 - - [10/Oct/2024:13:56:00 +0000] "POST /login HTTP/1.1" 302 0 "-" "curl/8.4.0"`,
	`192.0.2.55 - - [10/Oct/2024:13:57:00 +0000] "GET /missing HTTP/1.1" 404 0 "-" "-"`,
	`this line is not an access log entry`,
}

func findAggregation(t *testing.T, r *Report, name string) Aggregation {
	t.Helper()
	for _, a := range r.Aggregations {
		if a.Name == name {
			return a
		}
	}
	require.Failf(t, "aggregation not found", "%s", name)
	return Aggregation{}
}

func TestPipeline_AccessLog(t *testing.T) {
	resolver := newFakeResolver(map[string]core.GeoRecord{
		"203.0.113.7":  {CountryCode: "US", Country: "United States"},
		"198.51.100.2": {CountryCode: "DE", Country: "Germany", City: "Berlin"},
	})

	p, err := NewPipeline(PipelineOptions{GeoWorkers: 4}, resolver, log.NewLogger())
	require.NoError(t, err)

	report, err := p.Run(context.Background(), []source.Source{&memSource{name: "/var/log/nginx/access.log", lines: accessLines}})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Entries)
	assert.Equal(t, []string{"combined"}, report.Formats)

	status := findAggregation(t, report, "responseStatusCode")
	assert.Equal(t, []aggregate.Point{
		{Label: "200 (50%, 2)", Value: 2},
		{Label: "302 (25%, 1)", Value: 1},
		{Label: "404 (25%, 1)", Value: 1},
	}, status.Data)

	country := findAggregation(t, report, "country")
	assert.Equal(t, []aggregate.Point{
		{Label: "United States (50%, 2)", Value: 2},
		{Label: "Germany (25%, 1)", Value: 1},
		{Label: "Unknown (25%, 1)", Value: 1},
	}, country.Data)

	terms := findAggregation(t, report, "searchTerms")
	assert.Equal(t, []aggregate.Point{{Label: "log viewer (25%, 1)", Value: 1}}, terms.Data)

	// One lookup per distinct address
	assert.Equal(t, map[string]int{"203.0.113.7": 1, "198.51.100.2": 1, "192.0.2.55": 1}, resolver.calls)
	assert.Equal(t, uint64(1), p.Stats.GeoFailures.Load())
}

func TestPipeline_WithoutResolverSkipsGeo(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{}, nil, log.NewLogger())
	require.NoError(t, err)

	report, err := p.Run(context.Background(), []source.Source{&memSource{name: "access.log", lines: accessLines}})
	require.NoError(t, err)

	for _, a := range report.Aggregations {
		assert.NotEqual(t, "country", a.Name)
	}
}

func TestPipeline_SelectedAggregations(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{
		Format:       "common",
		Aggregations: []string{"methods", "browser"},
	}, nil, log.NewLogger())
	require.NoError(t, err)

	report, err := p.Run(context.Background(), []source.Source{&memSource{name: "x.log", lines: accessLines}})
	require.NoError(t, err)

	// browser needs the user agent of the combined layout
	require.Len(t, report.Aggregations, 1)
	assert.Equal(t, "methods", report.Aggregations[0].Name)
	assert.Equal(t, "GET (60%, 3)", report.Aggregations[0].Data[0].Label)
}

func TestPipeline_FiltersAndSelectors(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{
		Filters: []filter.Config{{Type: filter.TypeExclude, Patterns: []string{`curl/`}}},
	}, nil, log.NewLogger())
	require.NoError(t, err)

	report, err := p.Run(context.Background(), []source.Source{&memSource{name: "access.log", lines: accessLines}})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Entries)
	assert.Equal(t, uint64(1), p.Stats.TotalEntriesFiltered.Load())

	// Drill into the 200 bucket through its generated selector
	status := findAggregation(t, report, "responseStatusCode")
	selectors, ok := status.AddFilter("200 (66.67%, 2)", nil)
	require.True(t, ok)

	p, err = NewPipeline(PipelineOptions{Selectors: selectors}, nil, log.NewLogger())
	require.NoError(t, err)
	report, err = p.Run(context.Background(), []source.Source{&memSource{name: "access.log", lines: accessLines}})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Entries)
	assert.Equal(t, uint64(2), p.Stats.TotalEntriesNarrowed.Load())
}

func TestPipeline_FilterOnLocationField(t *testing.T) {
	resolver := newFakeResolver(map[string]core.GeoRecord{
		"203.0.113.7":  {CountryCode: "US", Country: "United States"},
		"198.51.100.2": {CountryCode: "DE", Country: "Germany"},
	})
	lines := []source.Source{&memSource{name: "access.log", lines: accessLines}}

	t.Run("Include", func(t *testing.T) {
		p, err := NewPipeline(PipelineOptions{
			Filters: []filter.Config{{Field: core.FieldCountry, Patterns: []string{`^United States$`}}},
		}, resolver, log.NewLogger())
		require.NoError(t, err)

		report, err := p.Run(context.Background(), lines)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Entries)
		assert.Equal(t, uint64(2), p.Stats.TotalEntriesFiltered.Load())

		country := findAggregation(t, report, "country")
		assert.Equal(t, []aggregate.Point{{Label: "United States (100%, 2)", Value: 2}}, country.Data)
	})

	t.Run("Exclude", func(t *testing.T) {
		p, err := NewPipeline(PipelineOptions{
			Filters: []filter.Config{{Type: filter.TypeExclude, Field: core.FieldCountry, Patterns: []string{`Germany`}}},
		}, resolver, log.NewLogger())
		require.NoError(t, err)

		report, err := p.Run(context.Background(), lines)
		require.NoError(t, err)
		// The unresolved 192.0.2.55 entry has no country and is kept
		assert.Equal(t, 3, report.Entries)
		assert.Equal(t, uint64(1), p.Stats.TotalEntriesFiltered.Load())
	})
}

func TestPipeline_GenericMultiline(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{}, newFakeResolver(nil), log.NewLogger())
	require.NoError(t, err)

	report, err := p.Run(context.Background(), []source.Source{&memSource{name: "app.txt", lines: []string{
		"ERROR boom",
		"  at a()",
		"INFO ok",
	}}})
	require.NoError(t, err)

	assert.Equal(t, []string{"generic"}, report.Formats)
	require.Len(t, report.Aggregations, 1)
	raw := report.Aggregations[0]
	assert.Equal(t, "rawLogLine", raw.Name)
	assert.Equal(t, []aggregate.Point{{Label: "ERROR boom\n  at a()", Value: 1}, {Label: "INFO ok", Value: 1}}, raw.Data)
}

func TestPipeline_Errors(t *testing.T) {
	_, err := NewPipeline(PipelineOptions{Format: "syslog"}, nil, log.NewLogger())
	assert.Error(t, err)

	_, err = NewPipeline(PipelineOptions{Selectors: []filter.Selector{{Kind: "bogus"}}}, nil, log.NewLogger())
	assert.Error(t, err)

	p, err := NewPipeline(PipelineOptions{}, nil, log.NewLogger())
	require.NoError(t, err)

	_, err = p.Run(context.Background(), nil)
	assert.Error(t, err)

	readErr := errors.New("disk gone")
	_, err = p.Run(context.Background(), []source.Source{&memSource{name: "a.log", lines: []string{"x"}, err: readErr}})
	assert.ErrorIs(t, err, readErr)
}

func TestService_Analyze(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "access.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(accessLines, "\n")+"\n"), 0o644))

	selectorPath := filepath.Join(dir, "selectors.json")
	require.NoError(t, os.WriteFile(selectorPath, []byte(`[{"kind":"equal","field":"method","value":"GET"}]`), 0o644))

	cfg := config.Defaults()
	cfg.Input.Path = path
	cfg.Report.SelectorFile = selectorPath

	svc, err := NewService(cfg, log.NewLogger())
	require.NoError(t, err)
	defer svc.Shutdown()

	report, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Entries)
	assert.Contains(t, svc.GetGlobalStats(), "pipeline")
}

func TestService_GeoWithoutDatabase(t *testing.T) {
	cfg := config.Defaults()
	cfg.Geo.Enabled = true
	cfg.Geo.DatabasePath = filepath.Join(t.TempDir(), "missing.mmdb")

	_, err := NewService(cfg, log.NewLogger())
	assert.Error(t, err)
}
