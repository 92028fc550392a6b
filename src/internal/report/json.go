// FILE: loglens/src/internal/report/json.go
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"loglens/src/internal/service"
)

type jsonReport struct {
	Entries      int                   `json:"entries"`
	Formats      []string              `json:"formats"`
	Aggregations []service.Aggregation `json:"aggregations"`
	Stats        map[string]any        `json:"stats,omitempty"`
}

func writeJSON(w io.Writer, rep *service.Report, aggs []service.Aggregation) error {
	if aggs == nil {
		aggs = []service.Aggregation{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{
		Entries:      rep.Entries,
		Formats:      rep.Formats,
		Aggregations: aggs,
		Stats:        rep.Stats,
	}); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
