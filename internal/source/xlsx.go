package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSourceNotFound means the workbook path does not exist; nothing was
// read and no artifacts are produced.
var ErrSourceNotFound = errors.New("source workbook not found")

// Sheet is the decoded table: trimmed cell strings addressed by 1-based
// row and column indices. It is loaded whole before any processing.
type Sheet struct {
	Name   string
	cells  [][]string
	maxRow int
	maxCol int
}

// LoadSheet decodes the first sheet of the workbook at path.
func LoadSheet(path string) (*Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode workbook %s: %w", path, err)
	}
	defer f.Close()

	return fromFile(f)
}

// LoadSheetFromReader decodes a workbook held in memory.
func LoadSheetFromReader(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	defer f.Close()

	return fromFile(f)
}

func fromFile(f *excelize.File) (*Sheet, error) {
	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	sheet := &Sheet{Name: name, cells: make([][]string, 0, len(rows))}
	for _, row := range rows {
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
		}
		if len(trimmed) > sheet.maxCol {
			sheet.maxCol = len(trimmed)
		}
		sheet.cells = append(sheet.cells, trimmed)
	}
	sheet.maxRow = len(sheet.cells)

	return sheet, nil
}

// MaxRow reports the highest 1-based row index.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol reports the highest 1-based column index.
func (s *Sheet) MaxCol() int { return s.maxCol }

// Range returns the rectangular block [r1..r2]x[c1..c2] of trimmed cell
// strings, padded with "" where the sheet is ragged.
func (s *Sheet) Range(r1, c1, r2, c2 int) [][]string {
	out := make([][]string, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		row := make([]string, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			row = append(row, s.cell(r, c))
		}
		out = append(out, row)
	}
	return out
}

// Row returns one full-width row.
func (s *Sheet) Row(r int) []string {
	return s.Range(r, 1, r, s.maxCol)[0]
}

func (s *Sheet) cell(r, c int) string {
	if r < 1 || r > s.maxRow {
		return ""
	}
	row := s.cells[r-1]
	if c < 1 || c > len(row) {
		return ""
	}
	return row[c-1]
}
