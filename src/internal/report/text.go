// FILE: loglens/src/internal/report/text.go
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"loglens/src/internal/service"

	"github.com/olekukonko/tablewriter"
)

func writeText(w io.Writer, rep *service.Report, aggs []service.Aggregation) error {
	fmt.Fprintf(w, "%d entries (%s)\n", rep.Entries, strings.Join(rep.Formats, ", "))

	for _, a := range aggs {
		fmt.Fprintf(w, "\n%s [%s]\n", a.Title, a.Name)

		all := a.Result.Data
		if len(all) == 0 {
			fmt.Fprintln(w, "  no data")
			continue
		}

		rows := make([][]string, 0, len(all))
		for _, p := range all {
			rows = append(rows, []string{p.Label, strconv.Itoa(p.Value)})
		}

		table := tablewriter.NewWriter(w)
		table.Header(a.AxisLabel, "Count")
		if err := table.Bulk(rows); err != nil {
			return fmt.Errorf("failed to render %s: %w", a.Name, err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render %s: %w", a.Name, err)
		}
	}

	if hidden := hiddenRows(rep, aggs); hidden > 0 {
		fmt.Fprintf(w, "\n%d rows hidden, raise report.top to see more\n", hidden)
	}
	return nil
}

// hiddenRows counts rows removed by truncation.
func hiddenRows(rep *service.Report, shown []service.Aggregation) int {
	hidden := 0
	for i, a := range rep.Aggregations {
		hidden += len(a.Data) - len(shown[i].Data)
	}
	return hidden
}
