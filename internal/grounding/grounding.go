// Package grounding builds deterministic descriptive documents about a
// profile result for retrieval-index and chat collaborators. It produces
// text only; embedding and indexing happen outside the core.
package grounding

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
)

// Builder assembles per-column, per-row, and summary documents.
type Builder struct {
	// SampleRows caps how many leading rows are described. Leading rows keep
	// the output reproducible across runs.
	SampleRows int
}

var _ profile.ContextBuilder = Builder{}

// Documents describes every column, a capped set of sample rows, and the
// dataset as a whole, in that order.
func (g Builder) Documents(res *profile.Result) []profile.Document {
	if res == nil {
		return nil
	}
	var docs []profile.Document
	for _, name := range res.Types.Columns() {
		docs = append(docs, profile.Document{
			ID:   "col_" + name,
			Kind: "column_metadata",
			Text: g.columnDocument(res, name),
		})
	}
	limit := g.SampleRows
	if limit <= 0 {
		limit = 5
	}
	if limit > res.Cleaned.Rows() {
		limit = res.Cleaned.Rows()
	}
	for i := 0; i < limit; i++ {
		docs = append(docs, profile.Document{
			ID:   fmt.Sprintf("row_%d", i),
			Kind: "data_row",
			Text: g.rowDocument(res, i),
		})
	}
	docs = append(docs, profile.Document{
		ID:   "summary",
		Kind: "dataset_summary",
		Text: g.summaryDocument(res),
	})
	return docs
}

func (g Builder) columnDocument(res *profile.Result, name string) string {
	t, _ := res.Types.Get(name)
	switch t {
	case dataset.Numeric:
		if st, ok := res.Stats.Numeric[name]; ok {
			return fmt.Sprintf("Column '%s' is numeric. Values range from %.2f to %.2f with an average of %.2f and a median of %.2f.",
				name, st.Min, st.Max, st.Mean, st.Median)
		}
		return fmt.Sprintf("Column '%s' is numeric.", name)
	case dataset.Categorical:
		if st, ok := res.Stats.Categorical[name]; ok {
			return fmt.Sprintf("Column '%s' is categorical with %d unique values. The most common value is '%s' (%d occurrences).",
				name, st.UniqueValues, st.MostCommon, st.MostCommonCount)
		}
		return fmt.Sprintf("Column '%s' is categorical.", name)
	default:
		return fmt.Sprintf("Column '%s' contains datetime values.", name)
	}
}

func (g Builder) rowDocument(res *profile.Result, i int) string {
	parts := make([]string, 0, res.Cleaned.Cols())
	for j := 0; j < res.Cleaned.Cols(); j++ {
		col := res.Cleaned.ColumnAt(j)
		parts = append(parts, fmt.Sprintf("%s: %s", col.Name, col.Cells[i].String()))
	}
	return strings.Join(parts, ", ")
}

func (g Builder) summaryDocument(res *profile.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset '%s' contains %d rows and %d columns.", res.SourceName, res.Report.CleanedRows, res.Report.CleanedCols)
	if numeric := res.Types.ColumnsOf(dataset.Numeric); len(numeric) > 0 {
		fmt.Fprintf(&b, " Numeric columns: %s.", strings.Join(numeric, ", "))
	}
	if categorical := res.Types.ColumnsOf(dataset.Categorical); len(categorical) > 0 {
		fmt.Fprintf(&b, " Categorical columns: %s.", strings.Join(categorical, ", "))
	}
	if datetimes := res.Types.ColumnsOf(dataset.Datetime); len(datetimes) > 0 {
		fmt.Fprintf(&b, " Datetime columns: %s.", strings.Join(datetimes, ", "))
	}
	for _, in := range res.Insights {
		fmt.Fprintf(&b, " %s.", strings.TrimSuffix(in, "."))
	}
	return b.String()
}
