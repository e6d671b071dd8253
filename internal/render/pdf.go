package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Doc wraps the page/line layout engine behind the small surface the
// composer needs: bordered table rows, side-by-side text boxes, QR codes
// and a footer hook.
type Doc struct {
	pdf   *fpdf.Fpdf
	qrSeq int
}

// Col is one bordered cell of a table row.
type Col struct {
	W     float64
	Text  string
	Align string
}

// Box is one bordered multi-line block of a box row.
type Box struct {
	W     float64
	Lines []string
	Align string
}

// NewLandscapeA4 creates an empty landscape A4 document with the margins
// shared by both trade documents.
func NewLandscapeA4(title, author string) *Doc {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreator("exportdocs", false)
	pdf.SetAuthor(author, false)
	pdf.SetTitle(title, false)
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AliasNbPages("")
	return &Doc{pdf: pdf}
}

func (d *Doc) AddPage() {
	d.pdf.AddPage()
}

func (d *Doc) SetFont(family string, size float64) {
	d.pdf.SetFont(family, "", size)
}

func (d *Doc) SetFontBold(family string, size float64) {
	d.pdf.SetFont(family, "B", size)
}

// Cell writes one cell. ln 0 keeps the cursor on the row, ln 1 moves to the
// next line. A zero width spans to the right margin.
func (d *Doc) Cell(w, h float64, text string, border bool, ln int, align string) {
	borderStr := ""
	if border {
		borderStr = "1"
	}
	d.pdf.CellFormat(w, h, text, borderStr, ln, align, false, 0, "")
}

// TableRow writes one bordered row and moves to the next line.
func (d *Doc) TableRow(h float64, cols []Col) {
	for i, col := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		d.pdf.CellFormat(col.W, h, col.Text, "1", ln, col.Align, false, 0, "")
	}
}

// BoxRow lays out bordered multi-line blocks side by side, all h tall, and
// leaves the cursor on the line below the row.
func (d *Doc) BoxRow(h, lineH float64, boxes []Box) {
	left := d.pdf.GetX()
	top := d.pdf.GetY()

	x := left
	for _, box := range boxes {
		d.pdf.Rect(x, top, box.W, h, "D")
		d.pdf.SetXY(x+1.5, top+1)
		d.pdf.MultiCell(box.W-3, lineH, joinLines(box.Lines), "", box.Align, false)
		x += box.W
	}
	d.pdf.SetXY(left, top+h)
}

func (d *Doc) Ln(h float64) {
	d.pdf.Ln(h)
}

func (d *Doc) SetY(y float64) {
	d.pdf.SetY(y)
}

// LineAcross draws a horizontal rule across the usable width at the
// current Y.
func (d *Doc) LineAcross() {
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.Line(left, y, pageW-right, y)
}

// UsableWidth is the page width between the margins.
func (d *Doc) UsableWidth() float64 {
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	return pageW - left - right
}

// PageNumberText renders as "n/total" once the document is closed.
func (d *Doc) PageNumberText() string {
	return fmt.Sprintf("%d/{nb}", d.pdf.PageNo())
}

// SetFooterFunc registers fn to run at the bottom of every page.
func (d *Doc) SetFooterFunc(fn func(*Doc)) {
	d.pdf.SetFooterFunc(func() {
		fn(d)
	})
}

// QRCode rasterizes content and places it at x,y without moving the cursor.
func (d *Doc) QRCode(content string, x, y, size float64) error {
	png, err := qrcode.Encode(content, qrcode.High, 256)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	d.qrSeq++
	name := fmt.Sprintf("qr-%d", d.qrSeq)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	d.pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return nil
}

// Bytes closes the document and returns its content.
func (d *Doc) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := d.pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}
