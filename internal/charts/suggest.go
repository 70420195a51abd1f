// Package charts selects which chart kinds suit a profiled dataset. It only
// decides what to draw; rasterization belongs to an external collaborator.
package charts

import (
	"fmt"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

// Kind names a chart family the rendering collaborator understands.
type Kind string

const (
	Bar  Kind = "bar"
	Line Kind = "line"
	Pie  Kind = "pie"
)

// Suggestion is one chart the renderer should produce.
type Suggestion struct {
	Kind   Kind   `json:"kind"`
	Column string `json:"column"`
	// XColumn is the x-axis column for line charts; empty means row index.
	XColumn string `json:"x_column,omitempty"`
	Title   string `json:"title"`
	// MeanLine and MedianLine are overlay values for line charts.
	MeanLine   float64 `json:"mean_line,omitempty"`
	MedianLine float64 `json:"median_line,omitempty"`
	// TopN caps how many categories the chart shows.
	TopN int `json:"top_n,omitempty"`
}

// Suggest picks at most one bar, one line, and one pie chart using the first
// suitable column of each type, in type-map order.
func Suggest(types *dataset.TypeMap, b *stats.Bundle) []Suggestion {
	var out []Suggestion
	categorical := types.ColumnsOf(dataset.Categorical)
	numeric := types.ColumnsOf(dataset.Numeric)
	datetimes := types.ColumnsOf(dataset.Datetime)

	if len(categorical) > 0 {
		col := categorical[0]
		out = append(out, Suggestion{
			Kind:   Bar,
			Column: col,
			Title:  fmt.Sprintf("Top 10 %s Distribution", col),
			TopN:   10,
		})
	}
	if len(numeric) > 0 {
		col := numeric[0]
		s := Suggestion{
			Kind:   Line,
			Column: col,
			Title:  fmt.Sprintf("%s Trend", col),
		}
		if len(datetimes) > 0 {
			s.XColumn = datetimes[0]
		}
		if st, ok := b.Numeric[col]; ok {
			s.MeanLine = st.Mean
			s.MedianLine = st.Median
		}
		out = append(out, s)
	}
	if len(categorical) > 0 {
		col := categorical[0]
		out = append(out, Suggestion{
			Kind:   Pie,
			Column: col,
			Title:  fmt.Sprintf("%s Distribution (Top 5)", col),
			TopN:   5,
		})
	}
	return out
}
