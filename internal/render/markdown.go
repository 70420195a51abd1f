// Package render implements the report and export collaborators: a markdown
// profile report, a JSON payload mirroring the original API shape, and a CSV
// export of the cleaned dataset.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
)

// Markdown renders a compact profile report suitable for terminals, prompts,
// or standalone docs.
type Markdown struct{}

var _ profile.Renderer = Markdown{}

// Render builds the bracket-section report for one profile result.
func (Markdown) Render(res *profile.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil profile result")
	}
	var b strings.Builder
	b.WriteString("[DATASET PROFILE]\n")
	if res.SourceName != "" {
		fmt.Fprintf(&b, "File: %s\n", res.SourceName)
	}
	fmt.Fprintf(&b, "Profile: %s\n", res.ID)
	fmt.Fprintf(&b, "Rows: %d (from %d)\n", res.Report.CleanedRows, res.Report.OriginalRows)
	fmt.Fprintf(&b, "Columns: %d (from %d)\n", res.Report.CleanedCols, res.Report.OriginalCols)

	if len(res.Report.Actions) > 0 {
		b.WriteString("\n[CLEANING]\n")
		for _, a := range res.Report.Actions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	b.WriteString("\n[SCHEMA]\n")
	for _, name := range res.Types.Columns() {
		t, _ := res.Types.Get(name)
		fmt.Fprintf(&b, "- %s: %s\n", name, t)
	}

	if len(res.Stats.Numeric) > 0 {
		b.WriteString("\n[NUMERIC STATS]\n")
		for _, name := range res.Types.ColumnsOf(dataset.Numeric) {
			st, ok := res.Stats.Numeric[name]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s: mean %.4g, median %.4g, std %s, min %.4g, max %.4g (n=%d)\n",
				name, st.Mean, st.Median, fmtStd(st.Std), st.Min, st.Max, st.Count)
		}
	}

	if len(res.Stats.Categorical) > 0 {
		b.WriteString("\n[CATEGORICAL STATS]\n")
		for _, name := range res.Types.ColumnsOf(dataset.Categorical) {
			st, ok := res.Stats.Categorical[name]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s: %d unique — top: ", name, st.UniqueValues)
			for i, vc := range st.Top {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s(%d)", safeVal(vc.Value), vc.Count)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Stats.Correlations.Top) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range res.Stats.Correlations.Top {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f\n", p.Col1, p.Col2, p.Correlation)
		}
	}

	if len(res.Insights) > 0 {
		b.WriteString("\n[INSIGHTS]\n")
		for _, in := range res.Insights {
			fmt.Fprintf(&b, "- %s\n", in)
		}
	}
	return b.String(), nil
}

func fmtStd(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
