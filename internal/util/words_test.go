package util

import (
	"strings"
	"testing"
	"unicode"
)

func TestAmountInWords(t *testing.T) {
	got := AmountInWords(1644.0)
	if !strings.HasSuffix(got, " Rupees Only") {
		t.Fatalf("missing suffix: %q", got)
	}
	if !strings.Contains(got, "thousand") {
		t.Fatalf("unexpected phrase: %q", got)
	}
	first := []rune(got)[0]
	if !unicode.IsUpper(first) {
		t.Fatalf("first letter not capitalized: %q", got)
	}
}

func TestAmountInWordsTruncatesFraction(t *testing.T) {
	if AmountInWords(5.99) != AmountInWords(5.0) {
		t.Fatalf("fractional part should not change the phrase")
	}
}

func TestAmountInWordsDegenerate(t *testing.T) {
	if got := AmountInWords(0); got != "" {
		t.Fatalf("zero: got %q", got)
	}
	if got := AmountInWords(-12); got != "" {
		t.Fatalf("negative: got %q", got)
	}
}
