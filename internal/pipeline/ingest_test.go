package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"exportdocs/internal"
	"exportdocs/internal/source"
)

func testColumns() map[internal.FieldKey]string {
	return map[internal.FieldKey]string{
		internal.FieldInvoice:  "Invoice",
		internal.FieldDate:     "Date",
		internal.FieldCustName: "Customer name",
		internal.FieldQty:      "Qty",
		internal.FieldRate:     "FOB",
		internal.FieldDesc:     "Description",
	}
}

func mkSheet(t *testing.T, rows [][]any) *source.Sheet {
	t.Helper()
	f := excelize.NewFile()
	name := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(name, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	sheet, err := source.LoadSheetFromReader(buf)
	if err != nil {
		t.Fatal(err)
	}
	return sheet
}

func TestIngestRows(t *testing.T) {
	sheet := mkSheet(t, [][]any{
		{"Invoice", "Qty", "FOB", "Unmapped"},
		{"A-1", 2, 10, "x"},
		{"", "", "", ""},
		{"B-2", 3, 7, "y"},
	})

	records, err := IngestRows(sheet, testColumns())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}
	if records[0].Get(internal.FieldInvoice) != "A-1" {
		t.Fatalf("invoice=%q", records[0].Get(internal.FieldInvoice))
	}
	if records[1].Get(internal.FieldQty) != "3" {
		t.Fatalf("qty=%q", records[1].Get(internal.FieldQty))
	}

	// No "Date" header in the sheet: the key must be absent, and reads
	// default to the empty string.
	if _, present := records[0][internal.FieldDate]; present {
		t.Fatal("date key should be absent")
	}
	if records[0].Get(internal.FieldDate) != "" {
		t.Fatal("absent key should read as empty")
	}
}

func TestIngestRowsNoHeaders(t *testing.T) {
	sheet := mkSheet(t, [][]any{
		{"   ", "", " "},
		{"A-1", 2, 10},
	})
	_, err := IngestRows(sheet, testColumns())
	if !errors.Is(err, ErrNoHeaders) {
		t.Fatalf("err=%v", err)
	}
}

func TestIngestRowsNoDataRows(t *testing.T) {
	sheet := mkSheet(t, [][]any{
		{"Invoice", "Qty"},
		{"", ""},
		{" ", " "},
	})
	_, err := IngestRows(sheet, testColumns())
	if !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("err=%v", err)
	}
}

func TestIngestRowsBlankHeaderDropsColumn(t *testing.T) {
	sheet := mkSheet(t, [][]any{
		{"Invoice", "", "FOB"},
		{"A-1", "ignored", 10},
	})
	records, err := IngestRows(sheet, testColumns())
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Get(internal.FieldRate) != "10" {
		t.Fatalf("rate=%q", records[0].Get(internal.FieldRate))
	}
	if len(records[0]) != 2 {
		t.Fatalf("record=%v", records[0])
	}
}
