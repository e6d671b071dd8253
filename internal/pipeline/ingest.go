package pipeline

import (
	"errors"

	"exportdocs/internal"
	"exportdocs/internal/source"
)

var (
	ErrNoHeaders  = errors.New("no headers found in the first row")
	ErrNoDataRows = errors.New("no data rows found beneath the header")
)

// IngestRows reads the header row and every data row of the decoded sheet
// and emits one RowRecord per non-blank row. A record carries only the
// logical names whose configured header text survived in the header row;
// readers default missing keys to "".
func IngestRows(sheet *source.Sheet, columns map[internal.FieldKey]string) ([]internal.RowRecord, error) {
	headerByCol := map[int]string{}
	for i, name := range sheet.Row(1) {
		if name != "" {
			headerByCol[i+1] = name
		}
	}
	if len(headerByCol) == 0 {
		return nil, ErrNoHeaders
	}

	fieldByHeader := map[string]internal.FieldKey{}
	for key, headerText := range columns {
		fieldByHeader[headerText] = key
	}

	var records []internal.RowRecord
	for r := 2; r <= sheet.MaxRow(); r++ {
		row := sheet.Row(r)

		allEmpty := true
		for _, cell := range row {
			if cell != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			continue
		}

		record := internal.RowRecord{}
		for col, headerText := range headerByCol {
			key, mapped := fieldByHeader[headerText]
			if !mapped {
				continue
			}
			value := ""
			if col-1 < len(row) {
				value = row[col-1]
			}
			record[key] = value
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, ErrNoDataRows
	}

	return records, nil
}
