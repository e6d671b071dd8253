package render

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Inspection is a shallow probe of a generated artifact.
type Inspection struct {
	Pages int
	Text  string
}

// Inspect opens a rendered artifact and reports its page count and the
// plain text of the first page.
func Inspect(path string) (Inspection, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Inspection{}, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	out := Inspection{Pages: r.NumPage()}
	if out.Pages >= 1 {
		page := r.Page(1)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				out.Text = text
			}
		}
	}
	return out, nil
}
