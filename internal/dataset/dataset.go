package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags the value stored in a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindTime
)

// Cell is one tagged value in a column: null, number, text, or timestamp.
type Cell struct {
	kind Kind
	num  float64
	text string
	ts   time.Time
}

func Null() Cell                 { return Cell{kind: KindNull} }
func Number(v float64) Cell      { return Cell{kind: KindNumber, num: v} }
func Text(s string) Cell         { return Cell{kind: KindText, text: s} }
func Timestamp(t time.Time) Cell { return Cell{kind: KindTime, ts: t} }

func (c Cell) Kind() Kind      { return c.kind }
func (c Cell) IsNull() bool    { return c.kind == KindNull }
func (c Cell) Number() float64 { return c.num }
func (c Cell) Time() time.Time { return c.ts }

// String renders the cell for display and export.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return c.text
	case KindTime:
		if c.ts.Hour() == 0 && c.ts.Minute() == 0 && c.ts.Second() == 0 {
			return c.ts.Format("2006-01-02")
		}
		return c.ts.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Key returns a kind-prefixed form used for exact row comparison. Two null
// cells compare equal.
func (c Cell) Key() string {
	switch c.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return "s:" + c.text
	case KindTime:
		return "t:" + c.ts.Format(time.RFC3339Nano)
	default:
		return "-"
	}
}

// Column is an ordered sequence of cells under a name.
type Column struct {
	Name  string
	Cells []Cell
}

// NullCount reports how many cells are null.
func (c *Column) NullCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsNull() {
			n++
		}
	}
	return n
}

// Numbers returns the non-null numeric values in row order.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Kind() == KindNumber {
			out = append(out, cell.Number())
		}
	}
	return out
}

// IsNumeric reports whether the column holds numbers in every non-null cell
// and has at least one of them.
func (c *Column) IsNumeric() bool {
	seen := false
	for _, cell := range c.Cells {
		switch cell.Kind() {
		case KindNull:
		case KindNumber:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// IsTime reports whether the column holds timestamps in every non-null cell
// and has at least one of them.
func (c *Column) IsTime() bool {
	seen := false
	for _, cell := range c.Cells {
		switch cell.Kind() {
		case KindNull:
		case KindTime:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// Dataset is an ordered sequence of named, equal-length columns.
type Dataset struct {
	cols []Column
}

// New validates that all columns share one length and wraps them in a Dataset.
func New(cols ...Column) (*Dataset, error) {
	for i := 1; i < len(cols); i++ {
		if len(cols[i].Cells) != len(cols[0].Cells) {
			return nil, fmt.Errorf("column %q has %d rows, want %d", cols[i].Name, len(cols[i].Cells), len(cols[0].Cells))
		}
	}
	return &Dataset{cols: cols}, nil
}

// Rows returns the row count.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0].Cells)
}

// Cols returns the column count.
func (d *Dataset) Cols() int { return len(d.cols) }

// Names returns column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column, or false when absent.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.cols {
		if d.cols[i].Name == name {
			return &d.cols[i], true
		}
	}
	return nil, false
}

// ColumnAt returns the column at position i.
func (d *Dataset) ColumnAt(i int) *Column { return &d.cols[i] }

// RowKey builds an exact-comparison key for row i across all columns.
func (d *Dataset) RowKey(i int) string {
	parts := make([]string, len(d.cols))
	for j := range d.cols {
		parts[j] = d.cols[j].Cells[i].Key()
	}
	return strings.Join(parts, "\x1f")
}

// Clone deep-copies the dataset so a caller's table is never mutated.
func (d *Dataset) Clone() *Dataset {
	cols := make([]Column, len(d.cols))
	for i, c := range d.cols {
		cells := make([]Cell, len(c.Cells))
		copy(cells, c.Cells)
		cols[i] = Column{Name: c.Name, Cells: cells}
	}
	return &Dataset{cols: cols}
}

// DropColumn removes the named column, preserving the order of the rest.
func (d *Dataset) DropColumn(name string) {
	for i := range d.cols {
		if d.cols[i].Name == name {
			d.cols = append(d.cols[:i], d.cols[i+1:]...)
			return
		}
	}
}

// KeepRows retains only the rows at the given ascending indices.
func (d *Dataset) KeepRows(idx []int) {
	for i := range d.cols {
		cells := make([]Cell, len(idx))
		for j, r := range idx {
			cells[j] = d.cols[i].Cells[r]
		}
		d.cols[i].Cells = cells
	}
}
