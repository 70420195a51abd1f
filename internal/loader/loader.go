// Package loader converts delimited-text and spreadsheet files into the
// in-memory tabular form the profiling pipeline operates on. It owns the
// bytes-to-table boundary; the pipeline itself never touches file formats.
package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Options controls how a file is read into a dataset.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet by name; empty means use SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet index used when SheetName is empty.
	SheetIndex int
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{SheetIndex: 1}
}

// LoadFile dispatches on the file extension, matching the upload types the
// original service accepted.
func LoadFile(path string, opt Options) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return LoadCSVFile(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("unsupported file type %q: use a CSV, TSV, or XLSX file", filepath.Ext(path))
	}
}

// missingTokens are treated as null cells, mirroring common CSV conventions.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"-":    {},
}

// parseCell classifies one raw field as null, number, or text.
func parseCell(raw string) dataset.Cell {
	v := strings.TrimSpace(raw)
	if _, ok := missingTokens[strings.ToLower(v)]; ok {
		return dataset.Null()
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return dataset.Number(f)
	}
	return dataset.Text(v)
}

// fromRecords builds a dataset from a header row and data rows. Short rows
// are padded with nulls; duplicate header names get a positional suffix.
func fromRecords(header []string, rows [][]string) (*dataset.Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no header row found")
	}
	names := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 1
		names[i] = name
	}
	cols := make([]dataset.Column, len(names))
	for i, n := range names {
		cols[i] = dataset.Column{Name: n, Cells: make([]dataset.Cell, len(rows))}
	}
	for r, row := range rows {
		for c := range names {
			if c < len(row) {
				cols[c].Cells[r] = parseCell(row[c])
			} else {
				cols[c].Cells[r] = dataset.Null()
			}
		}
	}
	return dataset.New(cols...)
}
