package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/profile"
)

// CSVExporter writes the cleaned dataset of a profile result as CSV, header
// first, rows in order.
type CSVExporter struct{}

var _ profile.Exporter = CSVExporter{}

// Export writes res.Cleaned to w.
func (CSVExporter) Export(w io.Writer, res *profile.Result) error {
	if res == nil || res.Cleaned == nil {
		return fmt.Errorf("nil cleaned dataset")
	}
	return WriteCSV(w, res.Cleaned)
}

// WriteCSV writes any dataset as CSV.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, ds.Cols())
	for i := 0; i < ds.Rows(); i++ {
		for j := 0; j < ds.Cols(); j++ {
			row[j] = ds.ColumnAt(j).Cells[i].String()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
