package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

func fixture(t *testing.T) (*dataset.TypeMap, *stats.Bundle) {
	t.Helper()
	day := func(d int) dataset.Cell {
		return dataset.Timestamp(time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC))
	}
	ds, err := dataset.New(
		dataset.Column{Name: "date", Cells: []dataset.Cell{day(1), day(2), day(3), day(4)}},
		dataset.Column{Name: "sales", Cells: []dataset.Cell{
			dataset.Number(10), dataset.Number(20), dataset.Number(30), dataset.Number(40),
		}},
		dataset.Column{Name: "region", Cells: []dataset.Cell{
			dataset.Text("n"), dataset.Text("s"), dataset.Text("n"), dataset.Text("e"),
		}},
	)
	require.NoError(t, err)

	types := dataset.NewTypeMap()
	types.Set("date", dataset.Datetime)
	types.Set("sales", dataset.Numeric)
	types.Set("region", dataset.Categorical)

	return types, stats.Compute(ds, types, stats.DefaultOptions())
}

func TestSuggestAllKinds(t *testing.T) {
	types, b := fixture(t)
	out := Suggest(types, b)

	require.Len(t, out, 3)
	assert.Equal(t, Bar, out[0].Kind)
	assert.Equal(t, "region", out[0].Column)
	assert.Equal(t, "Top 10 region Distribution", out[0].Title)
	assert.Equal(t, 10, out[0].TopN)

	assert.Equal(t, Line, out[1].Kind)
	assert.Equal(t, "sales", out[1].Column)
	assert.Equal(t, "date", out[1].XColumn)
	assert.Equal(t, "sales Trend", out[1].Title)
	assert.Equal(t, 25.0, out[1].MeanLine)
	assert.Equal(t, 25.0, out[1].MedianLine)

	assert.Equal(t, Pie, out[2].Kind)
	assert.Equal(t, "region Distribution (Top 5)", out[2].Title)
	assert.Equal(t, 5, out[2].TopN)
}

func TestSuggestNumericOnly(t *testing.T) {
	ds, err := dataset.New(
		dataset.Column{Name: "v", Cells: []dataset.Cell{dataset.Number(1), dataset.Number(2)}},
	)
	require.NoError(t, err)
	types := dataset.NewTypeMap()
	types.Set("v", dataset.Numeric)
	b := stats.Compute(ds, types, stats.DefaultOptions())

	out := Suggest(types, b)
	require.Len(t, out, 1)
	assert.Equal(t, Line, out[0].Kind)
	assert.Empty(t, out[0].XColumn, "no datetime column means the x axis is the row index")
}

func TestSuggestEmptyTypes(t *testing.T) {
	types := dataset.NewTypeMap()
	b := &stats.Bundle{}
	assert.Empty(t, Suggest(types, b))
}
