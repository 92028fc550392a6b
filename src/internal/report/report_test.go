// FILE: loglens/src/internal/report/report_test.go
package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"loglens/src/internal/aggregate"
	"loglens/src/internal/config"
	"loglens/src/internal/filter"
	"loglens/src/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *service.Report {
	def, _ := aggregate.Lookup("responseStatusCode", aggregate.GroupHTTP)
	return &service.Report{
		Entries: 4,
		Formats: []string{"combined"},
		Aggregations: []service.Aggregation{{
			Definition: def,
			Result: aggregate.Result{
				Data: []aggregate.Point{
					{Label: "200 (50%, 2)", Value: 2},
					{Label: "404 (25%, 1)", Value: 1},
					{Label: "500 (25%, 1)", Value: 1},
				},
				Filters: map[string]filter.Selector{
					"200 (50%, 2)": filter.Equal("statusCode", "200"),
					"404 (25%, 1)": filter.Equal("statusCode", "404"),
					"500 (25%, 1)": filter.Equal("statusCode", "500"),
				},
			},
		}},
		Stats: map[string]any{"total_processed": 4},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.OutputJSON, sampleReport(), 2))

	var decoded struct {
		Entries      int `json:"entries"`
		Aggregations []struct {
			Name    string                     `json:"name"`
			Title   string                     `json:"title"`
			Chart   string                     `json:"chart"`
			Data    []aggregate.Point          `json:"data"`
			Filters map[string]filter.Selector `json:"filters"`
		} `json:"aggregations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 4, decoded.Entries)
	require.Len(t, decoded.Aggregations, 1)
	a := decoded.Aggregations[0]
	assert.Equal(t, "responseStatusCode", a.Name)
	assert.Equal(t, "horizontalBar", a.Chart)
	assert.Len(t, a.Data, 2)
	assert.Len(t, a.Filters, 2)
	assert.Equal(t, filter.Equal("statusCode", "404"), a.Filters["404 (25%, 1)"])
	assert.NotContains(t, a.Filters, "500 (25%, 1)")
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.OutputText, sampleReport(), 0))

	out := buf.String()
	assert.Contains(t, out, "4 entries (combined)")
	assert.Contains(t, out, "Response Status Code [responseStatusCode]")
	assert.Contains(t, out, "200 (50%, 2)")
	assert.Contains(t, out, "500 (25%, 1)")
	assert.NotContains(t, out, "rows hidden")
}

func TestWrite_TextTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.OutputText, sampleReport(), 1))
	assert.NotContains(t, buf.String(), "404 (25%, 1)")
	assert.Contains(t, buf.String(), "2 rows hidden")
}

func TestWrite_EmptyAndErrors(t *testing.T) {
	rep := sampleReport()
	rep.Aggregations[0].Result = aggregate.Result{Data: []aggregate.Point{}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.OutputText, rep, 0))
	assert.Contains(t, buf.String(), "no data")

	assert.Error(t, Write(&buf, "html", rep, 0))
	assert.Error(t, Write(&buf, config.OutputJSON, nil, 0))
}

func TestTruncateKeepsOriginal(t *testing.T) {
	rep := sampleReport()
	_ = truncate(rep.Aggregations, 1)
	assert.Len(t, rep.Aggregations[0].Data, 3)
	assert.Len(t, rep.Aggregations[0].Filters, 3)
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, config.OutputText, ResolveMode(config.OutputText, nil))
	assert.Equal(t, config.OutputJSON, ResolveMode(config.OutputJSON, nil))

	// A regular file is never a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out.json"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, config.OutputJSON, ResolveMode(config.OutputAuto, f))
}
