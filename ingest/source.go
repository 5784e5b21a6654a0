package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one tabular record keyed by trimmed header name. Getters are
// tolerant: a missing field coerces to its zero value, only garbage in
// a numeric field is an error (the reconciler skips such rows).
type Row map[string]string

// Has reports whether the source supplied a non-empty value for key.
func (r Row) Has(key string) bool {
	return strings.TrimSpace(r[key]) != ""
}

// String returns the trimmed field value, empty when missing
func (r Row) String(key string) string {
	return strings.TrimSpace(r[key])
}

// Float parses a numeric field. Missing fields read as 0; a present but
// unparseable value is an error.
func (r Row) Float(key string) (float64, error) {
	raw := r.String(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

// Int parses an integer field with the same tolerance rules as Float.
// Spreadsheet cells often carry integers as "102.0", so a float parse
// backs the conversion.
func (r Row) Int(key string) (int, error) {
	v, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Bool interprets common truthy spellings; anything else is false.
func (r Row) Bool(key string) bool {
	switch strings.ToLower(r.String(key)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// LoadRows reads a tabular file into rows. The extension picks the
// parser: .xlsx goes through excelize, everything else is treated as
// CSV.
func LoadRows(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadExcelRows(path)
	default:
		return loadCSVRows(path)
	}
}

func loadCSVRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	// Exports from Windows tooling front the file with a UTF-8 BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return assembleRows(header, records[1:]), nil
}

func loadExcelRows(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return assembleRows(header, records[1:]), nil
}

func assembleRows(header []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := Row{}
		for i, key := range header {
			if key == "" || i >= len(record) {
				continue
			}
			row[key] = record[i]
		}
		rows = append(rows, row)
	}
	return rows
}
