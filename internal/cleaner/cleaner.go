// Package cleaner canonicalizes a raw dataset: it removes duplicate rows,
// drops or imputes columns with missing values, and assigns each surviving
// column exactly one semantic type.
package cleaner

import (
	"fmt"
	"sort"
	"time"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Options holds the cleaning thresholds and policies.
type Options struct {
	// MissingDropFraction drops a column when its null fraction exceeds it.
	MissingDropFraction float64
	// Sentinel fills non-numeric columns that have no non-null value.
	Sentinel string
	// TimeLayouts are tried in order when inferring datetime columns.
	TimeLayouts []string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MissingDropFraction: 0.5,
		Sentinel:            "Unknown",
		TimeLayouts:         DefaultTimeLayouts(),
	}
}

// DefaultTimeLayouts lists the datetime formats recognized during inference.
func DefaultTimeLayouts() []string {
	return []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
	}
}

// Report records what cleaning did to a dataset.
type Report struct {
	OriginalRows int              `json:"original_rows"`
	OriginalCols int              `json:"original_cols"`
	CleanedRows  int              `json:"cleaned_rows"`
	CleanedCols  int              `json:"cleaned_cols"`
	Actions      []string         `json:"actions"`
	Types        *dataset.TypeMap `json:"column_types"`
}

// Clean runs deduplication, missingness handling, and type inference in that
// order over a private copy of ds. The caller's dataset is never mutated.
func Clean(ds *dataset.Dataset, opt Options) (*dataset.Dataset, *Report) {
	work := ds.Clone()
	rep := &Report{
		OriginalRows: ds.Rows(),
		OriginalCols: ds.Cols(),
		Actions:      []string{},
	}

	dedupe(work, rep)
	handleMissing(work, rep, opt)
	rep.Types = inferTypes(work, opt)

	rep.CleanedRows = work.Rows()
	rep.CleanedCols = work.Cols()
	return work, rep
}

// dedupe drops rows that exactly duplicate an earlier row. Null cells compare
// equal to each other.
func dedupe(ds *dataset.Dataset, rep *Report) {
	rows := ds.Rows()
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if removed := rows - len(keep); removed > 0 {
		ds.KeepRows(keep)
		rep.Actions = append(rep.Actions, fmt.Sprintf("Removed %d duplicate row(s)", removed))
	}
}

// handleMissing processes each column independently: drop when too sparse,
// otherwise impute with the median (numeric) or mode (everything else).
func handleMissing(ds *dataset.Dataset, rep *Report, opt Options) {
	rows := ds.Rows()
	if rows == 0 {
		return
	}
	for _, name := range ds.Names() {
		col, _ := ds.Column(name)
		missing := col.NullCount()
		if missing == 0 {
			continue
		}
		frac := float64(missing) / float64(rows)
		if frac > opt.MissingDropFraction {
			ds.DropColumn(name)
			rep.Actions = append(rep.Actions, fmt.Sprintf("Dropped column '%s' (%.1f%% missing)", name, frac*100))
			continue
		}
		if col.IsNumeric() {
			med := median(col.Numbers())
			fillNulls(col, dataset.Number(med))
			rep.Actions = append(rep.Actions, fmt.Sprintf("Filled %d missing values in '%s' with median (%.2f)", missing, name, med))
			continue
		}
		mode, ok := modeCell(col)
		if !ok {
			fillNulls(col, dataset.Text(opt.Sentinel))
			rep.Actions = append(rep.Actions, fmt.Sprintf("Filled %d missing values in '%s' with '%s'", missing, name, opt.Sentinel))
			continue
		}
		fillNulls(col, mode)
		rep.Actions = append(rep.Actions, fmt.Sprintf("Filled %d missing values in '%s' with mode ('%s')", missing, name, mode.String()))
	}
}

func fillNulls(col *dataset.Column, fill dataset.Cell) {
	for i, c := range col.Cells {
		if c.IsNull() {
			col.Cells[i] = fill
		}
	}
}

// modeCell returns the most frequent non-null cell. Ties break toward the
// value first encountered in row order.
func modeCell(col *dataset.Column) (dataset.Cell, bool) {
	counts := make(map[string]int)
	first := make(map[string]int)
	cells := make(map[string]dataset.Cell)
	for i, c := range col.Cells {
		if c.IsNull() {
			continue
		}
		k := c.Key()
		if _, ok := counts[k]; !ok {
			first[k] = i
			cells[k] = c
		}
		counts[k]++
	}
	if len(counts) == 0 {
		return dataset.Cell{}, false
	}
	bestKey := ""
	for k := range counts {
		if bestKey == "" {
			bestKey = k
			continue
		}
		if counts[k] > counts[bestKey] || (counts[k] == counts[bestKey] && first[k] < first[bestKey]) {
			bestKey = k
		}
	}
	return cells[bestKey], true
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// inferTypes assigns each surviving column exactly one semantic type. A column
// whose every value parses as a datetime is converted in place; any parse
// failure falls back silently to categorical.
func inferTypes(ds *dataset.Dataset, opt Options) *dataset.TypeMap {
	types := dataset.NewTypeMap()
	for _, name := range ds.Names() {
		col, _ := ds.Column(name)
		switch {
		case col.IsNumeric():
			types.Set(name, dataset.Numeric)
		case col.IsTime():
			types.Set(name, dataset.Datetime)
		case convertToTime(col, opt.TimeLayouts):
			types.Set(name, dataset.Datetime)
		default:
			types.Set(name, dataset.Categorical)
		}
	}
	return types
}

// convertToTime parses every cell of a column as a datetime. On full success
// the column is rewritten with timestamp cells and true is returned; on any
// failure the column is left untouched.
func convertToTime(col *dataset.Column, layouts []string) bool {
	converted := make([]dataset.Cell, len(col.Cells))
	for i, c := range col.Cells {
		switch c.Kind() {
		case dataset.KindTime:
			converted[i] = c
		case dataset.KindText:
			t, ok := parseTime(c.String(), layouts)
			if !ok {
				return false
			}
			converted[i] = dataset.Timestamp(t)
		default:
			return false
		}
	}
	if len(converted) == 0 {
		return false
	}
	copy(col.Cells, converted)
	return true
}

func parseTime(s string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
