package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

func mustDataset(t *testing.T, cols ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(cols...)
	require.NoError(t, err)
	return ds
}

func TestCleanRemovesDuplicateRows(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "a", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(2), dataset.Number(1), dataset.Number(2)}},
		dataset.Column{Name: "b", Cells: []dataset.Cell{dataset.Text("x"), dataset.Text("y"), dataset.Text("x"), dataset.Text("z")}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	assert.Equal(t, 3, cleaned.Rows(), "only the exact duplicate of row 0 should go")
	assert.Contains(t, rep.Actions, "Removed 1 duplicate row(s)")
	assert.Equal(t, 4, rep.OriginalRows)
	assert.Equal(t, 3, rep.CleanedRows)
}

func TestCleanDropsMostlyMissingColumn(t *testing.T) {
	cells := make([]dataset.Cell, 10)
	sparse := make([]dataset.Cell, 10)
	for i := 0; i < 10; i++ {
		cells[i] = dataset.Number(float64(i + 1))
		if i < 6 {
			sparse[i] = dataset.Null()
		} else {
			sparse[i] = dataset.Text("v")
		}
	}
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: cells},
		dataset.Column{Name: "sparse", Cells: sparse},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	assert.Equal(t, []string{"id"}, cleaned.Names())
	assert.Contains(t, rep.Actions, "Dropped column 'sparse' (60.0% missing)")
	_, ok := rep.Types.Get("sparse")
	assert.False(t, ok, "dropped column must not appear in the type map")
}

func TestCleanKeepsHalfMissingColumn(t *testing.T) {
	// Exactly 50% missing is not above the threshold, so the column stays.
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(2), dataset.Number(3), dataset.Number(4)}},
		dataset.Column{Name: "v", Cells: []dataset.Cell{dataset.Number(1), dataset.Null(), dataset.Number(3), dataset.Null()}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	assert.Equal(t, []string{"id", "v"}, cleaned.Names())
	assert.Contains(t, rep.Actions, "Filled 2 missing values in 'v' with median (2.00)")
}

func TestCleanImputesNumericWithMedian(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "v", Cells: []dataset.Cell{
			dataset.Number(1), dataset.Number(2), dataset.Number(3), dataset.Null(), dataset.Number(100),
		}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	col, _ := cleaned.Column("v")
	// Median of the non-null values {1,2,3,100} is 2.5.
	assert.Equal(t, 2.5, col.Cells[3].Number())
	assert.Contains(t, rep.Actions, "Filled 1 missing values in 'v' with median (2.50)")

	tp, _ := rep.Types.Get("v")
	assert.Equal(t, dataset.Numeric, tp)
}

func TestCleanImputesCategoricalWithMode(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: []dataset.Cell{
			dataset.Number(1), dataset.Number(2), dataset.Number(3), dataset.Number(4), dataset.Number(5),
		}},
		dataset.Column{Name: "c", Cells: []dataset.Cell{
			dataset.Text("a"), dataset.Text("b"), dataset.Text("a"), dataset.Null(), dataset.Text("c"),
		}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	col, _ := cleaned.Column("c")
	assert.Equal(t, "a", col.Cells[3].String())
	assert.Contains(t, rep.Actions, "Filled 1 missing values in 'c' with mode ('a')")
}

func TestModeTieBreaksTowardFirstSeen(t *testing.T) {
	col := dataset.Column{Name: "c", Cells: []dataset.Cell{
		dataset.Text("b"), dataset.Text("a"), dataset.Text("a"), dataset.Text("b"),
	}}
	mode, ok := modeCell(&col)
	require.True(t, ok)
	assert.Equal(t, "b", mode.String())
}

func TestCleanSentinelFillWhenNoMode(t *testing.T) {
	// With a raised drop threshold, an all-null column survives to the
	// imputation step and takes the sentinel.
	opt := DefaultOptions()
	opt.MissingDropFraction = 1.0
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(2)}},
		dataset.Column{Name: "c", Cells: []dataset.Cell{dataset.Null(), dataset.Null()}},
	)
	cleaned, rep := Clean(ds, opt)

	col, _ := cleaned.Column("c")
	assert.Equal(t, "Unknown", col.Cells[0].String())
	assert.Contains(t, rep.Actions, "Filled 2 missing values in 'c' with 'Unknown'")
}

func TestCleanInfersDatetimeColumns(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "when", Cells: []dataset.Cell{
			dataset.Text("2021-01-01"), dataset.Text("2021-01-02"), dataset.Text("2021-01-03"),
		}},
		dataset.Column{Name: "note", Cells: []dataset.Cell{
			dataset.Text("2021-01-01"), dataset.Text("n/a date"), dataset.Text("2021-01-03"),
		}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())

	tpWhen, _ := rep.Types.Get("when")
	assert.Equal(t, dataset.Datetime, tpWhen)
	col, _ := cleaned.Column("when")
	assert.Equal(t, dataset.KindTime, col.Cells[0].Kind(), "datetime columns are converted in place")

	// One unparseable value makes the whole column categorical.
	tpNote, _ := rep.Types.Get("note")
	assert.Equal(t, dataset.Categorical, tpNote)
	note, _ := cleaned.Column("note")
	assert.Equal(t, dataset.KindText, note.Cells[0].Kind())
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "v", Cells: []dataset.Cell{dataset.Number(1), dataset.Null()}},
	)
	Clean(ds, DefaultOptions())

	col, _ := ds.Column("v")
	assert.True(t, col.Cells[1].IsNull(), "the caller's table must stay untouched")
}

func TestCleanIsIdempotent(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(1), dataset.Number(2), dataset.Null()}},
		dataset.Column{Name: "c", Cells: []dataset.Cell{dataset.Text("x"), dataset.Text("x"), dataset.Null(), dataset.Text("y")}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())
	require.NotEmpty(t, rep.Actions)

	again, rep2 := Clean(cleaned, DefaultOptions())
	assert.Empty(t, rep2.Actions, "re-cleaning clean data must be a no-op")
	assert.Equal(t, cleaned.Rows(), again.Rows())
	assert.Equal(t, cleaned.Names(), again.Names())
}

func TestTypeMapMatchesCleanedColumns(t *testing.T) {
	ds := mustDataset(t,
		dataset.Column{Name: "id", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(2)}},
		dataset.Column{Name: "gone", Cells: []dataset.Cell{dataset.Null(), dataset.Null()}},
		dataset.Column{Name: "c", Cells: []dataset.Cell{dataset.Text("x"), dataset.Text("y")}},
	)
	cleaned, rep := Clean(ds, DefaultOptions())
	assert.Equal(t, cleaned.Names(), rep.Types.Columns(), "type map keys must equal the cleaned column set, in order")
}
