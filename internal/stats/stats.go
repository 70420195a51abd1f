// Package stats computes descriptive statistics and pairwise correlations
// over a cleaned dataset, keyed by the type map the cleaner produced.
package stats

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Options controls list sizes in the bundle.
type Options struct {
	// TopCorrelations caps the ranked correlation list.
	TopCorrelations int
	// TopValues caps the per-column categorical frequency table.
	TopValues int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{TopCorrelations: 5, TopValues: 5}
}

// Overview summarizes dataset shape by column type.
type Overview struct {
	TotalRows          int `json:"total_rows"`
	TotalColumns       int `json:"total_columns"`
	NumericColumns     int `json:"numeric_columns"`
	CategoricalColumns int `json:"categorical_columns"`
	DatetimeColumns    int `json:"datetime_columns"`
}

// NumericStats is the fixed-field record for one numeric column. Std is NaN
// when fewer than two values exist; consumers must tolerate that.
type NumericStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Sum    float64 `json:"sum"`
	Count  int     `json:"count"`
}

// MarshalJSON emits NaN and infinities as null so the bundle stays valid JSON
// for downstream consumers.
func (s NumericStats) MarshalJSON() ([]byte, error) {
	type field struct {
		name string
		val  float64
	}
	fields := []field{
		{"mean", s.Mean}, {"median", s.Median}, {"mode", s.Mode}, {"std", s.Std},
		{"min", s.Min}, {"max", s.Max}, {"q1", s.Q1}, {"q3", s.Q3}, {"sum", s.Sum},
	}
	out := make(map[string]any, len(fields)+1)
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			out[f.name] = nil
		} else {
			out[f.name] = f.val
		}
	}
	out["count"] = s.Count
	return json.Marshal(out)
}

// ValueCount is one entry of a categorical frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalStats describes value frequencies for one categorical column.
type CategoricalStats struct {
	UniqueValues    int          `json:"unique_values"`
	MostCommon      string       `json:"most_common"`
	MostCommonCount int          `json:"most_common_count"`
	Top             []ValueCount `json:"top_5"`
}

// PairCorrelation is the Pearson coefficient for one unordered column pair.
type PairCorrelation struct {
	Col1        string  `json:"col1"`
	Col2        string  `json:"col2"`
	Correlation float64 `json:"correlation"`
}

// Matrix is the full pairwise correlation matrix over numeric columns, in
// type-map order. Values[i][j] is the coefficient between Columns[i] and
// Columns[j]; the diagonal is 1.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Correlations holds the full matrix and the ranked top pairs. Both are empty
// when fewer than two numeric columns exist.
type Correlations struct {
	Matrix *Matrix           `json:"matrix,omitempty"`
	Top    []PairCorrelation `json:"top_correlations"`
}

// Bundle is the complete statistics output for one cleaned dataset.
type Bundle struct {
	Overview     Overview                    `json:"overview"`
	Numeric      map[string]NumericStats     `json:"numeric_stats"`
	Categorical  map[string]CategoricalStats `json:"categorical_stats"`
	Correlations Correlations                `json:"correlations"`
}

// Compute builds the statistics bundle for a cleaned dataset and its type
// map. Columns whose computation is degenerate are omitted from the relevant
// map; the pass never aborts.
func Compute(ds *dataset.Dataset, types *dataset.TypeMap, opt Options) *Bundle {
	b := &Bundle{
		Overview: Overview{
			TotalRows:          ds.Rows(),
			TotalColumns:       ds.Cols(),
			NumericColumns:     types.CountOf(dataset.Numeric),
			CategoricalColumns: types.CountOf(dataset.Categorical),
			DatetimeColumns:    types.CountOf(dataset.Datetime),
		},
		Numeric:     make(map[string]NumericStats),
		Categorical: make(map[string]CategoricalStats),
	}
	for _, name := range types.ColumnsOf(dataset.Numeric) {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		if st, ok := numericStats(col.Numbers()); ok {
			b.Numeric[name] = st
		}
	}
	for _, name := range types.ColumnsOf(dataset.Categorical) {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		if st, ok := categoricalStats(col, opt.TopValues); ok {
			b.Categorical[name] = st
		}
	}
	b.Correlations = correlations(ds, types, opt.TopCorrelations)
	return b
}

func numericStats(vals []float64) (NumericStats, bool) {
	if len(vals) == 0 {
		return NumericStats{}, false
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	return NumericStats{
		Mean:   mean,
		Median: quantile(sorted, 0.5),
		Mode:   numericMode(vals),
		Std:    sampleStd(vals, mean),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		Sum:    sum,
		Count:  len(vals),
	}, true
}

// numericMode returns the most frequent value; ties break toward the value
// first encountered in row order.
func numericMode(vals []float64) float64 {
	counts := make(map[float64]int)
	first := make(map[float64]int)
	for i, v := range vals {
		if _, ok := counts[v]; !ok {
			first[v] = i
		}
		counts[v]++
	}
	best := vals[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && first[v] < first[best]) {
			best = v
		}
	}
	return best
}

// sampleStd is the n-1 standard deviation; NaN when n <= 1.
func sampleStd(vals []float64, mean float64) float64 {
	if len(vals) <= 1 {
		return math.NaN()
	}
	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// quantile interpolates linearly over sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func categoricalStats(col *dataset.Column, topN int) (CategoricalStats, bool) {
	counts := make(map[string]int)
	first := make(map[string]int)
	for i, c := range col.Cells {
		if c.IsNull() {
			continue
		}
		v := c.String()
		if _, ok := counts[v]; !ok {
			first[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return CategoricalStats{}, false
	}
	ordered := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		ordered = append(ordered, ValueCount{Value: v, Count: n})
	}
	// Descending count; ties toward the value first seen in row order.
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return first[ordered[i].Value] < first[ordered[j].Value]
	})
	top := ordered
	if len(top) > topN {
		top = top[:topN]
	}
	return CategoricalStats{
		UniqueValues:    len(counts),
		MostCommon:      ordered[0].Value,
		MostCommonCount: ordered[0].Count,
		Top:             top,
	}, true
}

// correlations computes the full Pearson matrix over numeric columns and the
// ranked top pairs. Pair enumeration follows type-map order (i ascending,
// then j); the ranking sort is stable so equal magnitudes preserve it.
func correlations(ds *dataset.Dataset, types *dataset.TypeMap, topN int) Correlations {
	names := types.ColumnsOf(dataset.Numeric)
	if len(names) < 2 {
		return Correlations{Top: []PairCorrelation{}}
	}
	series := make([][]float64, len(names))
	for i, n := range names {
		col, _ := ds.Column(n)
		series[i] = col.Numbers()
	}
	n := len(names)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	var pairs []PairCorrelation
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(series[i], series[j])
			mat[i][j] = r
			mat[j][i] = r
			pairs = append(pairs, PairCorrelation{Col1: names[i], Col2: names[j], Correlation: r})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Correlation) > math.Abs(pairs[b].Correlation)
	})
	if len(pairs) > topN {
		pairs = pairs[:topN]
	}
	return Correlations{
		Matrix: &Matrix{Columns: names, Values: mat},
		Top:    pairs,
	}
}

// pearson computes the correlation coefficient of two equal-length series.
// Zero-variance input yields 0 rather than NaN.
func pearson(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	var ma, mb float64
	for i := 0; i < n; i++ {
		ma += a[i]
		mb += b[i]
	}
	ma /= float64(n)
	mb /= float64(n)
	var num, da2, db2 float64
	for i := 0; i < n; i++ {
		da := a[i] - ma
		db := b[i] - mb
		num += da * db
		da2 += da * da
		db2 += db * db
	}
	denom := math.Sqrt(da2 * db2)
	if denom == 0 {
		return 0
	}
	r := num / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
