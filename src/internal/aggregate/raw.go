// FILE: loglens/src/internal/aggregate/raw.go
package aggregate

import (
	"loglens/src/internal/core"
	"loglens/src/internal/filter"
)

// RawLines lists every entry's text as its own row with value 1.
func RawLines(records []core.Record) Result {
	res := emptyResult()

	for _, rec := range records {
		line, ok := rec.Get(core.FieldLine)
		if !ok {
			continue
		}
		res.Data = append(res.Data, Point{Label: line, Value: 1})
		res.Filters[line] = filter.Equal(core.FieldLine, line)
	}

	return res
}
