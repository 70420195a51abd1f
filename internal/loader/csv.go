package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// LoadCSVFile reads a delimited-text file into a dataset.
func LoadCSVFile(path string, opt Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return LoadCSV(f, delim, opt)
}

// LoadCSV reads delimited text from r using the given delimiter.
func LoadCSV(r io.Reader, delim rune, opt Options) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		cp := make([]string, len(rec))
		copy(cp, rec)
		rows = append(rows, cp)
	}
	return fromRecords(header, rows)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
