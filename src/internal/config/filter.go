// FILE: loglens/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"

	"loglens/src/internal/filter"
)

// validateFilter checks one [[filters]] table. Empty patterns pass everything.
func validateFilter(index int, cfg *filter.Config) error {
	if cfg.Type != "" && cfg.Type != filter.TypeInclude && cfg.Type != filter.TypeExclude {
		return fmt.Errorf("filter[%d]: type must be %q or %q, got %q",
			index, filter.TypeInclude, filter.TypeExclude, cfg.Type)
	}
	if cfg.Logic != "" && cfg.Logic != filter.LogicOr && cfg.Logic != filter.LogicAnd {
		return fmt.Errorf("filter[%d]: logic must be %q or %q, got %q",
			index, filter.LogicOr, filter.LogicAnd, cfg.Logic)
	}

	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d]: %w", index, i, err)
		}
	}
	return nil
}
