// FILE: loglens/src/cmd/loglens/commands/aggregations.go
package commands

import (
	"fmt"
	"io"
	"strings"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/entry"

	"github.com/olekukonko/tablewriter"
)

// AggregationsCommand lists the named aggregations.
type AggregationsCommand struct {
	out io.Writer
}

func NewAggregationsCommand(out io.Writer) *AggregationsCommand {
	return &AggregationsCommand{out: out}
}

// Execute lists every aggregation, or those of the named groups.
func (c *AggregationsCommand) Execute(args []string) error {
	groups := aggregate.Groups()
	if len(args) > 0 {
		known := make(map[string]bool, len(groups))
		for _, g := range groups {
			known[g] = true
		}
		for _, g := range args {
			if !known[g] {
				return fmt.Errorf("unknown aggregation group: %s (known: %s)", g, strings.Join(groups, ", "))
			}
		}
		groups = args
	}

	var rows [][]string
	for _, g := range groups {
		for _, d := range aggregate.ForGroups(g) {
			field := d.Field
			if d.AppendField != "" {
				field += " + " + d.AppendField
			}
			if d.Custom != nil {
				field = "(derived)"
			}
			rows = append(rows, []string{g, d.Name, d.Title, string(d.Chart), field})
		}
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Group", "Name", "Title", "Chart", "Field")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (c *AggregationsCommand) Description() string {
	return "List available aggregations"
}

func (c *AggregationsCommand) Help() string {
	return `Aggregations Command - List available aggregations

Usage:
  loglens aggregations [group ...]

Groups: ` + strings.Join(aggregate.Groups(), ", ") + `
`
}

// FormatsCommand lists the log formats.
type FormatsCommand struct {
	out io.Writer
}

func NewFormatsCommand(out io.Writer) *FormatsCommand {
	return &FormatsCommand{out: out}
}

func (c *FormatsCommand) Execute(args []string) error {
	for _, name := range entry.Names() {
		f, err := entry.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "  %-10s groups: %s\n", name, strings.Join(f.Groups(), ", "))
	}
	return nil
}

func (c *FormatsCommand) Description() string {
	return "List supported log formats"
}

func (c *FormatsCommand) Help() string {
	return `Formats Command - List supported log formats

Usage:
  loglens formats

With --input.format=auto the format is picked from the file name.
Files named like access*.log use the combined layout, everything else is generic.
`
}
