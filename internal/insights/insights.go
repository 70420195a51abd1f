// Package insights derives a short, ordered list of natural-language
// observations from a cleaned dataset and its statistics bundle. Rules run in
// a fixed sequence and the output is byte-stable for identical input.
package insights

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

// Options holds the rule thresholds.
type Options struct {
	// HighVariabilityCV flags a numeric column when its coefficient of
	// variation (std/mean*100) exceeds it.
	HighVariabilityCV float64
	// DominancePercent flags a categorical value covering more than this
	// share of rows.
	DominancePercent float64
	// TrendChangePercent is the minimum half-over-half mean change to call a
	// trend.
	TrendChangePercent float64
	// StrongCorrelation is the |r| threshold for the correlation rule.
	StrongCorrelation float64
	// TrendColumns caps how many numeric columns the trend rule inspects.
	TrendColumns int
	// MaxInsights caps the emitted list.
	MaxInsights int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		HighVariabilityCV:  50,
		DominancePercent:   50,
		TrendChangePercent: 10,
		StrongCorrelation:  0.7,
		TrendColumns:       2,
		MaxInsights:        7,
	}
}

// Generate runs the rule sequence over the cleaned dataset, type map, and
// statistics bundle. Column iteration follows type-map insertion order.
func Generate(ds *dataset.Dataset, types *dataset.TypeMap, b *stats.Bundle, opt Options) []string {
	var out []string
	out = append(out, numericVariability(types, b, opt)...)
	out = append(out, categoricalDominance(types, b, opt)...)
	out = append(out, trends(ds, types, opt)...)
	out = append(out, correlationStrength(b, opt)...)
	out = append(out, dataQuality(b))
	if len(out) > opt.MaxInsights {
		out = out[:opt.MaxInsights]
	}
	return out
}

// numericVariability emits one line per numeric column with a defined
// standard deviation: high variability above the CV threshold, consistent
// values otherwise. A constant column has CV 0 and lands in the consistent
// branch.
func numericVariability(types *dataset.TypeMap, b *stats.Bundle, opt Options) []string {
	var out []string
	for _, col := range types.ColumnsOf(dataset.Numeric) {
		st, ok := b.Numeric[col]
		if !ok || math.IsNaN(st.Std) {
			continue
		}
		cv := 0.0
		if st.Mean != 0 {
			cv = st.Std / st.Mean * 100
		}
		if cv > opt.HighVariabilityCV {
			out = append(out, fmt.Sprintf("High variability detected in '%s' (CV: %.1f%%) - values range from %.2f to %.2f", col, cv, st.Min, st.Max))
		} else {
			out = append(out, fmt.Sprintf("'%s' shows consistent values with an average of %.2f (±%.2f)", col, st.Mean, st.Std))
		}
	}
	return out
}

func categoricalDominance(types *dataset.TypeMap, b *stats.Bundle, opt Options) []string {
	total := b.Overview.TotalRows
	if total == 0 {
		return nil
	}
	var out []string
	for _, col := range types.ColumnsOf(dataset.Categorical) {
		st, ok := b.Categorical[col]
		if !ok {
			continue
		}
		pct := float64(st.MostCommonCount) / float64(total) * 100
		if pct > opt.DominancePercent {
			out = append(out, fmt.Sprintf("'%s' dominates '%s' with %.1f%% of all records", st.MostCommon, col, pct))
		} else {
			out = append(out, fmt.Sprintf("'%s' has %d unique values, with '%s' being most common (%.1f%%)", col, st.UniqueValues, st.MostCommon, pct))
		}
	}
	return out
}

// trends compares first-half and second-half means of the leading numeric
// columns. Columns with fewer than three values, or a zero first-half mean,
// are skipped.
func trends(ds *dataset.Dataset, types *dataset.TypeMap, opt Options) []string {
	var out []string
	numeric := types.ColumnsOf(dataset.Numeric)
	if len(numeric) > opt.TrendColumns {
		numeric = numeric[:opt.TrendColumns]
	}
	for _, name := range numeric {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		vals := col.Numbers()
		if len(vals) < 3 {
			continue
		}
		mid := len(vals) / 2
		firstMean := mean(vals[:mid])
		if firstMean == 0 {
			continue
		}
		change := (mean(vals[mid:]) - firstMean) / firstMean * 100
		if math.Abs(change) > opt.TrendChangePercent {
			dir := "upward"
			if change < 0 {
				dir = "downward"
			}
			out = append(out, fmt.Sprintf("'%s' shows %s trend with %.1f%% change over time", name, dir, math.Abs(change)))
		}
	}
	return out
}

// correlationStrength inspects only the strongest precomputed pair.
func correlationStrength(b *stats.Bundle, opt Options) []string {
	top := b.Correlations.Top
	if len(top) == 0 {
		return nil
	}
	strongest := top[0]
	if math.Abs(strongest.Correlation) <= opt.StrongCorrelation {
		return nil
	}
	kind := "Strong positive"
	if strongest.Correlation < 0 {
		kind = "Strong negative"
	}
	return []string{fmt.Sprintf("%s correlation (%.2f) found between '%s' and '%s'", kind, strongest.Correlation, strongest.Col1, strongest.Col2)}
}

func dataQuality(b *stats.Bundle) string {
	return fmt.Sprintf("Dataset contains %d rows and %d columns with clean, processed data", b.Overview.TotalRows, b.Overview.TotalColumns)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
