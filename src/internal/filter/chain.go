// FILE: loglens/src/internal/filter/chain.go
package filter

import (
	"fmt"
	"sync/atomic"

	"loglens/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain is the conjunction of the configured filters, evaluated in order.
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	seen   atomic.Uint64
	passed atomic.Uint64
}

// NewChain compiles every filter; the first bad pattern fails the chain.
func NewChain(configs []Config, logger *log.Logger) (*Chain, error) {
	c := &Chain{logger: logger}
	for i, cfg := range configs {
		f, err := NewFilter(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		c.filters = append(c.filters, f)
	}
	return c, nil
}

// Apply reports whether the entry passes every filter.
func (c *Chain) Apply(e *core.LogEntry) bool {
	c.seen.Add(1)
	for i, f := range c.filters {
		if !f.Apply(e) {
			c.logger.Debug("msg", "Entry dropped by filter",
				"component", "filter_chain",
				"source", e.Source,
				"filter_index", i)
			return false
		}
	}
	c.passed.Add(1)
	return true
}

// Len returns the number of filters.
func (c *Chain) Len() int {
	return len(c.filters)
}

// GetStats returns chain and per-filter statistics.
func (c *Chain) GetStats() map[string]any {
	perFilter := make([]map[string]any, 0, len(c.filters))
	for _, f := range c.filters {
		perFilter = append(perFilter, f.GetStats())
	}

	return map[string]any{
		"filter_count": len(c.filters),
		"seen":         c.seen.Load(),
		"passed":       c.passed.Load(),
		"filters":      perFilter,
	}
}
