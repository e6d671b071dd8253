package util

import (
	"unicode"

	ntw "moul.io/number-to-words"
)

const wordsSuffix = " Rupees Only"

// AmountInWords spells out the integer part of a monetary value as an
// English cardinal with the fixed currency suffix. Zero and negative values
// give an empty phrase.
func AmountInWords(n float64) string {
	whole := int(n)
	if whole <= 0 {
		return ""
	}
	words := ntw.IntegerToEnUs(whole)
	if words == "" {
		return ""
	}
	runes := []rune(words)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + wordsSuffix
}
