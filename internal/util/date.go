package util

import (
	"strconv"
	"strings"
	"time"
)

// Day serial of 1970-01-01 in the spreadsheet 1900 date system.
const excelEpochOffset = 25569

const dateLayout = "02-01-2006"

var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate converts a raw cell into a dd-mm-yyyy string. Numeric input is
// treated as a spreadsheet day serial when the implied offset is positive;
// blank input means today. Input that parses as nothing comes back verbatim,
// so callers must tolerate a non-date string where a date was expected.
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		ts := (int64(serial) - excelEpochOffset) * 86400
		if ts > 0 {
			return time.Unix(ts, 0).UTC().Format(dateLayout)
		}
	}
	if s == "" {
		return time.Now().Format(dateLayout)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return s
}
