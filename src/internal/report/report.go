// FILE: loglens/src/internal/report/report.go
package report

import (
	"fmt"
	"io"
	"os"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/config"
	"loglens/src/internal/filter"
	"loglens/src/internal/service"

	"golang.org/x/term"
)

// ResolveMode turns "auto" into text on a terminal and JSON otherwise.
func ResolveMode(mode string, out *os.File) string {
	if mode != config.OutputAuto {
		return mode
	}
	if out != nil && term.IsTerminal(int(out.Fd())) {
		return config.OutputText
	}
	return config.OutputJSON
}

// Write renders the report in the given mode, keeping at most top rows per
// aggregation (0 keeps all).
func Write(w io.Writer, mode string, rep *service.Report, top int) error {
	if rep == nil {
		return fmt.Errorf("report is nil")
	}

	aggs := truncate(rep.Aggregations, top)
	switch mode {
	case config.OutputText:
		return writeText(w, rep, aggs)
	case config.OutputJSON:
		return writeJSON(w, rep, aggs)
	default:
		return fmt.Errorf("unknown output mode: %s", mode)
	}
}

// truncate cuts each aggregation to top rows, dropping the selectors of cut rows.
func truncate(aggs []service.Aggregation, top int) []service.Aggregation {
	if top <= 0 {
		return aggs
	}

	out := make([]service.Aggregation, len(aggs))
	for i, a := range aggs {
		out[i] = a
		if len(a.Data) <= top {
			continue
		}

		data := a.Data[:top]
		filters := make(map[string]filter.Selector, len(data))
		for _, p := range data {
			if sel, ok := a.Filters[p.Label]; ok {
				filters[p.Label] = sel
			}
		}
		out[i].Result = aggregate.Result{Data: data, Filters: filters}
	}
	return out
}
