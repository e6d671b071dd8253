package pipeline_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"exportdocs/internal/compose"
	"exportdocs/internal/config"
	"exportdocs/internal/pipeline"
	"exportdocs/internal/storage"
)

func writeWorkbook(t *testing.T, dir, name string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	for r, row := range rows {
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", ref, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(filepath.Join(dir, name)); err != nil {
		t.Fatal(err)
	}
}

func newTestService(t *testing.T) (*pipeline.GenerationService, *storage.DB, config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.FilesDir = dir
	cfg.DBPath = filepath.Join(dir, "app.db")

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return pipeline.NewGenerationService(db, cfg), db, cfg
}

func TestGenerateFromFilePerOrder(t *testing.T) {
	svc, db, cfg := newTestService(t)

	writeWorkbook(t, cfg.FilesDir, "orders.xlsx", [][]string{
		{"Invoice", "Date", "Customer name", "Qty", "FOB"},
		{"A", "15-08-2023", "Jane Citizen", "2", "10"},
		{"A", "15-08-2023", "Jane Citizen", "5", "3"},
		{"B", "16-08-2023", "John Smith", "3", "7"},
	})

	result, err := svc.GenerateFromFile("orders.xlsx", compose.PerOrder)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records=%d", len(result.Records))
	}
	if result.Totals.Orders != 2 {
		t.Fatalf("orders=%d", result.Totals.Orders)
	}
	want := (20.0 + 21.0) * cfg.ExchangeRate
	if math.Abs(result.Totals.FOBInr-want) > 1e-6 {
		t.Fatalf("fob=%v want %v", result.Totals.FOBInr, want)
	}

	for _, name := range []string{"invoice_A.pdf", "pbe_A.pdf", "invoice_B.pdf", "pbe_B.pdf"} {
		if _, err := os.Stat(filepath.Join(cfg.FilesDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	stored, err := db.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored=%d", len(stored))
	}
	for _, row := range stored {
		if row.Status != "approved" {
			t.Fatalf("status=%q", row.Status)
		}
		if row.FileName != "orders.xlsx" {
			t.Fatalf("fileName=%q", row.FileName)
		}
	}
}

func TestGenerateFromFileCombined(t *testing.T) {
	svc, db, cfg := newTestService(t)

	writeWorkbook(t, cfg.FilesDir, "aug batch.xlsx", [][]string{
		{"Invoice", "Qty", "FOB"},
		{"A", "2", "10"},
		{"B", "3", "7"},
	})

	result, err := svc.GenerateFromFile("aug batch.xlsx", compose.Combined)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records=%d", len(result.Records))
	}

	record := result.Records[0]
	if record.InvoicePDF != "invoice_aug_batch.pdf" || record.PBEPDF != "pbe_aug_batch.pdf" {
		t.Fatalf("artifacts: %s, %s", record.InvoicePDF, record.PBEPDF)
	}
	for _, name := range []string{record.InvoicePDF, record.PBEPDF} {
		if _, err := os.Stat(filepath.Join(cfg.FilesDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	stored, err := db.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored=%d", len(stored))
	}
}

func TestGenerateFromFileMissingSource(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.GenerateFromFile("nope.xlsx", compose.Combined); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
