package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// LoadXLSX reads one sheet of a workbook into a dataset. The sheet is chosen
// by name when opt.SheetName is set, otherwise by 1-based opt.SheetIndex.
func LoadXLSX(path string, opt Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	header := rows[0]
	data := rows[1:]
	if opt.MaxRows > 0 && len(data) > opt.MaxRows {
		data = data[:opt.MaxRows]
	}
	return fromRecords(header, data)
}

func resolveSheet(f *excelize.File, opt Options) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found; available sheets: %s", opt.SheetName, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range; workbook has %d sheet(s)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
