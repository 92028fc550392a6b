// FILE: loglens/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"loglens/src/internal/core"

	"github.com/lixenwraith/log"
)

// Line filter types
const (
	TypeInclude = "include"
	TypeExclude = "exclude"
)

// Line filter logic
const (
	LogicOr  = "or"
	LogicAnd = "and"
)

// Config describes a regex filter applied to entries before aggregation.
// Field selects a parsed field; empty means the raw entry text.
type Config struct {
	Type     string   `toml:"type"`
	Logic    string   `toml:"logic"`
	Field    string   `toml:"field"`
	Patterns []string `toml:"patterns"`
}

// Filter keeps or drops entries by regex match on one field.
type Filter struct {
	include  bool
	all      bool
	field    string
	patterns []*regexp.Regexp

	seen    atomic.Uint64
	matched atomic.Uint64
	dropped atomic.Uint64
}

// NewFilter compiles cfg. Type defaults to include, Logic to or.
func NewFilter(cfg Config, logger *log.Logger) (*Filter, error) {
	f := &Filter{
		include:  cfg.Type != TypeExclude,
		all:      cfg.Logic == LogicAnd,
		field:    cfg.Field,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)),
	}
	if f.field == "" {
		f.field = core.FieldLine
	}

	for i, pattern := range cfg.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, pattern, err)
		}
		f.patterns = append(f.patterns, re)
	}

	logger.Debug("msg", "Filter compiled",
		"component", "filter",
		"type", f.Type(),
		"field", f.field,
		"match_all", f.all,
		"pattern_count", len(f.patterns))

	return f, nil
}

// Type returns include or exclude.
func (f *Filter) Type() string {
	if f.include {
		return TypeInclude
	}
	return TypeExclude
}

// Apply reports whether the entry passes. A filter without patterns passes
// everything. A missing field never matches.
func (f *Filter) Apply(e *core.LogEntry) bool {
	f.seen.Add(1)
	if len(f.patterns) == 0 {
		return true
	}

	hit := false
	if value, ok := e.Get(f.field); ok {
		hit = f.match(value)
	}
	if hit {
		f.matched.Add(1)
	}

	if hit != f.include {
		f.dropped.Add(1)
		return false
	}
	return true
}

func (f *Filter) match(value string) bool {
	for _, re := range f.patterns {
		if re.MatchString(value) != f.all {
			// First miss under and, first hit under or
			return !f.all
		}
	}
	return f.all
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":          f.Type(),
		"field":         f.field,
		"pattern_count": len(f.patterns),
		"seen":          f.seen.Load(),
		"matched":       f.matched.Load(),
		"dropped":       f.dropped.Load(),
	}
}
