package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadRowsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	content := "\ufeffExtracted Marks, Student Roll Number ,Original Answer Sheet Image\n" +
		"42,101,http://example.com/a.png\n" +
		"17.5,102,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// BOM and header padding must not leak into keys
	if marks, err := rows[0].Float("Extracted Marks"); err != nil || marks != 42 {
		t.Fatalf("expected marks 42, got %v (%v)", marks, err)
	}
	if roll, err := rows[0].Int("Student Roll Number"); err != nil || roll != 101 {
		t.Fatalf("expected roll 101, got %v (%v)", roll, err)
	}
	if url := rows[0].String("Original Answer Sheet Image"); url != "http://example.com/a.png" {
		t.Fatalf("unexpected image url %q", url)
	}
	if rows[1].Has("Original Answer Sheet Image") {
		t.Fatalf("empty cell must read as absent")
	}
}

func TestLoadRowsExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.xlsx")

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Extracted Marks")
	f.SetCellValue("Sheet1", "B1", "Student Roll Number")
	f.SetCellValue("Sheet1", "A2", 55)
	f.SetCellValue("Sheet1", "B2", 103)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if marks, err := rows[0].Float("Extracted Marks"); err != nil || marks != 55 {
		t.Fatalf("expected marks 55, got %v (%v)", marks, err)
	}
}

func TestLoadRowsMissingFile(t *testing.T) {
	if _, err := LoadRows(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestRowCoercion(t *testing.T) {
	row := Row{
		"Marks":   " 12.5 ",
		"Roll":    "102.0",
		"Garbage": "twelve",
		"Flag":    "Yes",
	}

	if v, err := row.Float("Marks"); err != nil || v != 12.5 {
		t.Fatalf("Float(Marks) = %v, %v", v, err)
	}
	if v, err := row.Float("Missing"); err != nil || v != 0 {
		t.Fatalf("missing field must coerce to 0, got %v, %v", v, err)
	}
	if _, err := row.Float("Garbage"); err == nil {
		t.Fatalf("non-numeric field must error")
	}
	if v, err := row.Int("Roll"); err != nil || v != 102 {
		t.Fatalf("Int(Roll) = %v, %v", v, err)
	}
	if !row.Bool("Flag") {
		t.Fatalf("Bool(Flag) should be true")
	}
	if row.Bool("Missing") {
		t.Fatalf("Bool of missing field should be false")
	}
}
