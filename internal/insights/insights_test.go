package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

func numColumn(name string, vals ...float64) dataset.Column {
	cells := make([]dataset.Cell, len(vals))
	for i, v := range vals {
		cells[i] = dataset.Number(v)
	}
	return dataset.Column{Name: name, Cells: cells}
}

func textColumn(name string, vals ...string) dataset.Column {
	cells := make([]dataset.Cell, len(vals))
	for i, v := range vals {
		cells[i] = dataset.Text(v)
	}
	return dataset.Column{Name: name, Cells: cells}
}

func buildBundle(t *testing.T, types *dataset.TypeMap, cols ...dataset.Column) (*dataset.Dataset, *stats.Bundle) {
	t.Helper()
	ds, err := dataset.New(cols...)
	require.NoError(t, err)
	return ds, stats.Compute(ds, types, stats.DefaultOptions())
}

func TestConstantColumnReadsAsConsistent(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("flat", dataset.Numeric)
	ds, b := buildBundle(t, types, numColumn("flat", 5, 5, 5, 5))

	out := Generate(ds, types, b, DefaultOptions())
	assert.Contains(t, out, "'flat' shows consistent values with an average of 5.00 (±0.00)")
}

func TestHighVariabilityFires(t *testing.T) {
	// CV of {1,2,3,100} is well above 50%.
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	ds, b := buildBundle(t, types, numColumn("v", 1, 2, 3, 100))

	out := Generate(ds, types, b, DefaultOptions())
	require.NotEmpty(t, out)
	assert.Contains(t, out[0], "High variability detected in 'v'")
	assert.Contains(t, out[0], "values range from 1.00 to 100.00")
}

func TestSingleValueColumnSkipsVariabilityRule(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	_, b := buildBundle(t, types, numColumn("v", 7))

	out := numericVariability(types, b, DefaultOptions())
	assert.Empty(t, out, "undefined std must not produce a variability line")
}

func TestCategoricalDominance(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("cat", dataset.Categorical)
	ds, b := buildBundle(t, types, textColumn("cat",
		"A", "A", "A", "A", "A", "A", "B", "B", "B", "B"))

	out := Generate(ds, types, b, DefaultOptions())
	assert.Contains(t, out, "'A' dominates 'cat' with 60.0% of all records")
}

func TestCategoricalDiversityBelowThreshold(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("cat", dataset.Categorical)
	ds, b := buildBundle(t, types, textColumn("cat", "A", "A", "B", "B", "C"))

	out := Generate(ds, types, b, DefaultOptions())
	assert.Contains(t, out, "'cat' has 3 unique values, with 'A' being most common (40.0%)")
}

func TestUpwardTrend(t *testing.T) {
	// First half mean 2, second half mean 12: +500% change.
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	ds, _ := buildBundle(t, types, numColumn("v", 1, 3, 10, 14))

	out := trends(ds, types, DefaultOptions())
	require.Len(t, out, 1)
	assert.Equal(t, "'v' shows upward trend with 500.0% change over time", out[0])
}

func TestDownwardTrend(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	ds, _ := buildBundle(t, types, numColumn("v", 10, 10, 5, 5))

	out := trends(ds, types, DefaultOptions())
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "downward trend with 50.0% change")
}

func TestTrendSkipsZeroFirstHalfMean(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	ds, _ := buildBundle(t, types, numColumn("v", 0, 0, 5, 5))

	assert.Empty(t, trends(ds, types, DefaultOptions()))
}

func TestTrendInspectsLeadingColumnsOnly(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("a", dataset.Numeric)
	types.Set("b", dataset.Numeric)
	types.Set("c", dataset.Numeric)
	ds, _ := buildBundle(t, types,
		numColumn("a", 1, 1, 5, 5),
		numColumn("b", 1, 1, 5, 5),
		numColumn("c", 1, 1, 5, 5),
	)

	out := trends(ds, types, DefaultOptions())
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "'a'")
	assert.Contains(t, out[1], "'b'")
}

func TestStrongCorrelationRule(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("x", dataset.Numeric)
	types.Set("y", dataset.Numeric)
	_, b := buildBundle(t, types,
		numColumn("x", 1, 2, 3, 4, 5),
		numColumn("y", 2, 4, 6, 8, 10),
	)

	out := correlationStrength(b, DefaultOptions())
	require.Len(t, out, 1)
	assert.Equal(t, "Strong positive correlation (1.00) found between 'x' and 'y'", out[0])
}

func TestStrongNegativeCorrelation(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("x", dataset.Numeric)
	types.Set("y", dataset.Numeric)
	_, b := buildBundle(t, types,
		numColumn("x", 1, 2, 3, 4, 5),
		numColumn("y", 10, 8, 6, 4, 2),
	)

	out := correlationStrength(b, DefaultOptions())
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Strong negative correlation (-1.00)")
}

func TestWeakCorrelationStaysQuiet(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("x", dataset.Numeric)
	types.Set("y", dataset.Numeric)
	_, b := buildBundle(t, types,
		numColumn("x", 1, 2, 3, 4, 5, 6),
		numColumn("y", 4, 1, 5, 2, 6, 3),
	)

	assert.Empty(t, correlationStrength(b, DefaultOptions()))
}

func TestDataQualityLineAlwaysPresent(t *testing.T) {
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	ds, b := buildBundle(t, types, numColumn("v", 1, 2, 3))

	out := Generate(ds, types, b, DefaultOptions())
	assert.Equal(t, "Dataset contains 3 rows and 1 columns with clean, processed data", out[len(out)-1])
}

func TestGenerateCapsAtMaxInsights(t *testing.T) {
	types := dataset.NewTypeMap()
	cols := make([]dataset.Column, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		types.Set(name, dataset.Numeric)
		cols = append(cols, numColumn(name, 1, 2, 3, 100))
	}
	ds, b := buildBundle(t, types, cols...)

	out := Generate(ds, types, b, DefaultOptions())
	assert.Len(t, out, 7)
}
