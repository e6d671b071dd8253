package compose

import (
	"fmt"
	"regexp"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeID makes an order id safe for artifact names.
func SanitizeID(id string) string {
	return unsafeNameChars.ReplaceAllString(id, "_")
}

func InvoiceArtifactName(id string) string {
	return fmt.Sprintf("invoice_%s.pdf", id)
}

func PBEArtifactName(id string) string {
	return fmt.Sprintf("pbe_%s.pdf", id)
}
