// FILE: loglens/src/internal/aggregate/engine.go
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"loglens/src/internal/core"
	"loglens/src/internal/filter"
)

// Point is one rendered row of a distribution.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Result is a distribution sorted by descending count, plus the drill-down
// selector for each label.
type Result struct {
	Data    []Point                    `json:"data"`
	Filters map[string]filter.Selector `json:"filters"`
}

// AddFilter appends a fresh copy of the selector generated for label to the
// given list. Each call appends again; the caller decides whether to repeat.
func (r Result) AddFilter(label string, selectors []filter.Selector) ([]filter.Selector, bool) {
	sel, ok := r.Filters[label]
	if !ok {
		return selectors, false
	}
	return append(selectors, sel.Clone()), true
}

func emptyResult() Result {
	return Result{Data: []Point{}, Filters: map[string]filter.Selector{}}
}

// bucket is one group inside a tally
type bucket struct {
	key       string
	count     int
	primary   string
	secondary string
	selector  *filter.Selector
}

// tally counts keys in first-seen order
type tally struct {
	order []*bucket
	index map[string]*bucket
}

func newTally() *tally {
	return &tally{index: make(map[string]*bucket)}
}

// seed registers a zero-count bucket so it keeps its position in encounter order.
func (t *tally) seed(key string) *bucket {
	if b, ok := t.index[key]; ok {
		return b
	}
	b := &bucket{key: key}
	t.index[key] = b
	t.order = append(t.order, b)
	return b
}

// add increments key, creating it on first sight. The returned bool is true
// when the bucket was created by this call.
func (t *tally) add(key string) (*bucket, bool) {
	b, ok := t.index[key]
	if !ok {
		b = t.seed(key)
	}
	b.count++
	return b, !ok
}

// result renders every non-empty bucket against total records.
func (t *tally) result(total int, selectorFor func(*bucket) (filter.Selector, bool)) Result {
	res := emptyResult()
	if total <= 0 {
		return res
	}

	for _, b := range t.order {
		if b.count == 0 {
			continue
		}
		label := formatLabel(b.key, b.count, total)
		res.Data = append(res.Data, Point{Label: label, Value: b.count})
		if selectorFor == nil {
			continue
		}
		if sel, ok := selectorFor(b); ok {
			res.Filters[label] = sel
		}
	}

	sortPoints(res.Data)
	return res
}

// Percentage returns count/total as a percentage rounded to two decimals.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

func formatLabel(key string, count, total int) string {
	pct := strconv.FormatFloat(Percentage(count, total), 'f', -1, 64)
	return fmt.Sprintf("%s (%s%%, %d)", key, pct, count)
}

// sortPoints orders by descending value, keeping encounter order on ties.
func sortPoints(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
}

// ExtractBy groups records by field, or by field and appendField joined with
// a space. Records whose field is unset, empty or "-" are counted under
// unknown. A missing appendField value is shown as "-" and does not move the
// record to the unknown bucket.
func ExtractBy[R core.Record](records []R, field, unknown, appendField string) Result {
	t := newTally()

	for _, rec := range records {
		value, ok := rec.Get(field)
		if core.IsMissing(value, ok) {
			t.add(unknown)
			continue
		}

		key := value
		appendValue := ""
		if appendField != "" {
			appendValue, _ = rec.Get(appendField)
			if appendValue == "" {
				appendValue = core.MissingValue
			}
			key += " " + appendValue
		}

		if b, created := t.add(key); created {
			b.primary = value
			b.secondary = appendValue
		}
	}

	return t.result(len(records), func(b *bucket) (filter.Selector, bool) {
		if b.key == unknown {
			return filter.Missing(field, core.MissingValue), true
		}
		if appendField == "" {
			return filter.Equal(field, b.primary), true
		}
		if b.secondary == core.MissingValue {
			return filter.And(
				filter.Missing(appendField, core.MissingValue),
				filter.Equal(field, b.primary),
			), true
		}
		return filter.And(
			filter.Equal(field, b.primary),
			filter.Equal(appendField, b.secondary),
		), true
	})
}
