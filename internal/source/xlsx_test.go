package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadSheetFromReader(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Invoice", "Qty", " FOB "},
		{"A-1", 2, 10},
		{"", "", ""},
		{"B-2", 3},
	})

	sheet, err := LoadSheetFromReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	if sheet.MaxRow() != 4 {
		t.Fatalf("MaxRow=%d", sheet.MaxRow())
	}
	if sheet.MaxCol() != 3 {
		t.Fatalf("MaxCol=%d", sheet.MaxCol())
	}

	header := sheet.Row(1)
	if header[2] != "FOB" {
		t.Fatalf("header cell not trimmed: %q", header[2])
	}

	// Ragged row padded with empty strings.
	last := sheet.Row(4)
	if len(last) != 3 || last[2] != "" {
		t.Fatalf("ragged row: %v", last)
	}
}

func TestLoadSheetRange(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"a", "b", "c"},
		{"d", "e", "f"},
	})
	sheet, err := LoadSheetFromReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	block := sheet.Range(1, 2, 2, 3)
	if block[0][0] != "b" || block[1][1] != "f" {
		t.Fatalf("block=%v", block)
	}
}

func TestLoadSheetNotFound(t *testing.T) {
	_, err := LoadSheet(filepath.Join(t.TempDir(), "missing.xlsx"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadSheetDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSheet(path); err == nil {
		t.Fatal("expected decode error")
	}
}
