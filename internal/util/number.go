package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Matches dot-as-thousands, comma-as-decimal numbers like "1.234,56".
// Anything else is treated as using plain thousands commas.
var decimalCommaPattern = regexp.MustCompile(`^\d{1,3}(\.\d{3})*,\d+$`)

// ParseNumber converts a raw cell into a float. It never fails: blank or
// unparsable input and non-finite results all degrade to 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if decimalCommaPattern.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// FormatMoney renders with two decimals and comma grouping, e.g. "1,234.50".
func FormatMoney(n float64) string {
	return humanize.FormatFloat("#,###.##", n)
}

// FormatQuantity renders whole values without decimals.
func FormatQuantity(n float64) string {
	if n == math.Trunc(n) {
		return humanize.FormatFloat("#,###.", n)
	}
	return humanize.FormatFloat("#,###.##", n)
}
