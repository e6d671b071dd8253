package compose

import (
	"exportdocs/internal"
	"exportdocs/internal/render"
	"exportdocs/internal/util"
)

var parcelCols = []float64{8, 40, 22, 26, 14, 12, 14, 26, 14, 14, 26, 25, 20, 20}

var parcelHeaders = []string{
	"S.No.", "Name & Address", "Country of Destination", "Description", "CTH",
	"Unit", "Quantity", "Invoice No. and Date", "Gross Wt.", "Net Wt.",
	"URL (Name)", "Payment transaction ID", "SKU No.", "Postal tracking no.",
}

var dutyCols = []float64{20, 16, 20, 24, 18, 28, 10, 20, 16, 14, 16, 20, 25, 18, 16}

var dutyHeaders = []string{
	"FOB", "Currency", "Exchange Rate", "Amount in INR", "H.S. Code",
	"Invoice no. & date", "Sl.No.", "Value", "Export duty", "Cess",
	"IGST", "Comp. cess", "LUT/bond details", "Total duties", "Total cess",
}

var declarations = []struct {
	text   string
	answer string
}{
	{"We declare that we intend to claim rewards under Merchandise Exports from India Scheme (MEIS) (for export through Chennai / Mumbai / Delhi FPO Only)", "No"},
	{"We declare that we intend to zero rate our exports under Section 16 of IGST Act.", "Yes"},
	{"We declare that the goods are exempted under CGST/SGST/UTGST/IGST Acts.", "No"},
}

// pbeDocument renders the shared customs form: the declarative header once,
// then one parcel row and one duty/tax row per order. The totals footer is
// drawn by the document footer hook once composition finishes.
func (c *Composer) pbeDocument(d *render.Doc, orders []Order) {
	cfg := c.cfg

	d.AddPage()

	d.SetFontBold("helvetica", 13)
	d.Cell(0, 7, "FORM-II", false, 1, "C")
	d.SetFont("helvetica", 9)
	d.Cell(0, 5, "(see regulation 4)", false, 1, "C")
	d.SetFontBold("helvetica", 13)
	d.Cell(0, 7, "Postal Bill of Export - I (PBE - I)", false, 1, "C")
	d.SetFont("helvetica", 9)
	d.Cell(0, 5, "(For export of goods through E-Commerce)", false, 1, "C")
	d.Cell(0, 5, "(To be submitted in duplicate)", false, 1, "C")
	d.Ln(3)

	d.SetFont("helvetica", 7)
	d.TableRow(10, []render.Col{
		{W: 25, Text: "Bill of Export No. & Date", Align: "C"},
		{W: 34, Text: "Foreign Post Office Code", Align: "C"},
		{W: 34, Text: "Name of Exporter", Align: "C"},
		{W: 45, Text: "Address of Exporter", Align: "C"},
		{W: 22, Text: "IEC", Align: "C"},
		{W: 20, Text: "State Code", Align: "C"},
		{W: 31, Text: "GSTIN as applicable", Align: "C"},
		{W: 28, Text: "AD code (if applicable)", Align: "C"},
		{W: 42, Text: "Details of Customs Broker", Align: "C"},
	})
	d.BoxRow(14, 3.2, []render.Box{
		{W: 25, Align: "C", Lines: []string{""}},
		{W: 34, Align: "C", Lines: []string{cfg.PostOfficeCode}},
		{W: 34, Align: "C", Lines: []string{cfg.ExporterName}},
		{W: 45, Align: "C", Lines: []string{cfg.ExporterAddr}},
		{W: 22, Align: "C", Lines: []string{cfg.ExporterIEC}},
		{W: 20, Align: "C", Lines: []string{cfg.ExporterStateCode}},
		{W: 31, Align: "C", Lines: []string{cfg.ExporterGSTIN}},
		{W: 28, Align: "C", Lines: []string{"NA."}},
		{W: 42, Align: "C", Lines: []string{"NA."}},
	})

	for i, decl := range declarations {
		d.BoxRow(8, 3.2, []render.Box{
			{W: 10, Align: "C", Lines: []string{intToString(i + 1)}},
			{W: 249, Align: "L", Lines: []string{decl.text}},
			{W: 22, Align: "C", Lines: []string{decl.answer}},
		})
	}
	d.BoxRow(14, 4, []render.Box{{W: 281, Align: "L", Lines: []string{
		"We hereby declare that the contents of this postal bill of export are true and correct in every respect",
		"",
		"(Signature of the Exporter/Authorised agent)",
	}}})
	d.BoxRow(14, 4, []render.Box{{W: 281, Align: "L", Lines: []string{
		"Examination order and report",
		"",
		"Let Export Order: Signature of officer of Customs along with stamp and date:",
	}}})
	d.Ln(4)

	d.SetFontBold("helvetica", 9)
	d.Cell(0, 7, "Details of Parcel", true, 1, "C")
	d.SetFont("helvetica", 7)
	headerCols := make([]render.Col, len(parcelCols))
	for i := range parcelCols {
		headerCols[i] = render.Col{W: parcelCols[i], Text: parcelHeaders[i], Align: "C"}
	}
	d.TableRow(10, headerCols)

	for i, order := range orders {
		writeParcelRow(d, i+1, order)
	}
	d.Ln(4)

	d.SetFontBold("helvetica", 9)
	d.Cell(0, 7, "Assessable value and details of duty/tax", true, 1, "C")
	d.SetFont("helvetica", 7)
	dutyHeaderCols := make([]render.Col, len(dutyCols))
	for i := range dutyCols {
		dutyHeaderCols[i] = render.Col{W: dutyCols[i], Text: dutyHeaders[i], Align: "C"}
	}
	d.TableRow(10, dutyHeaderCols)

	for _, order := range orders {
		c.writeDutyRow(d, order)
	}
}

func writeParcelRow(d *render.Doc, num int, order Order) {
	first := order.Group.First()
	agg := order.Agg

	d.BoxRow(10, 3.2, []render.Box{
		{W: parcelCols[0], Align: "C", Lines: []string{intToString(num)}},
		{W: parcelCols[1], Align: "C", Lines: []string{agg.CustomerName, first.Get(internal.FieldAddr1)}},
		{W: parcelCols[2], Align: "C", Lines: []string{first.Get(internal.FieldCountry)}},
		{W: parcelCols[3], Align: "C", Lines: []string{first.Get(internal.FieldDesc)}},
		{W: parcelCols[4], Align: "C", Lines: []string{first.Get(internal.FieldHSN)}},
		{W: parcelCols[5], Align: "C", Lines: []string{first.Get(internal.FieldUnit)}},
		{W: parcelCols[6], Align: "C", Lines: []string{util.FormatQuantity(agg.Quantity)}},
		{W: parcelCols[7], Align: "C", Lines: []string{agg.InvoiceNo, agg.InvoiceDate}},
		{W: parcelCols[8], Align: "C", Lines: []string{first.Get(internal.FieldGross)}},
		{W: parcelCols[9], Align: "C", Lines: []string{first.Get(internal.FieldNet)}},
		{W: parcelCols[10], Align: "C", Lines: []string{first.Get(internal.FieldURL)}},
		{W: parcelCols[11], Align: "C", Lines: []string{first.Get(internal.FieldPaymentTransaction)}},
		{W: parcelCols[12], Align: "C", Lines: []string{first.Get(internal.FieldSKU)}},
		{W: parcelCols[13], Align: "C", Lines: []string{first.Get(internal.FieldTracking)}},
	})
}

func (c *Composer) writeDutyRow(d *render.Doc, order Order) {
	first := order.Group.First()
	agg := order.Agg

	d.BoxRow(8, 3.2, []render.Box{
		{W: dutyCols[0], Align: "C", Lines: []string{util.FormatMoney(agg.Rate)}},
		{W: dutyCols[1], Align: "C", Lines: []string{currencyOf(first, c.cfg.InvoiceCurrency)}},
		{W: dutyCols[2], Align: "C", Lines: []string{util.FormatMoney(agg.ExchangeRate)}},
		{W: dutyCols[3], Align: "C", Lines: []string{util.FormatMoney(agg.FOBInr)}},
		{W: dutyCols[4], Align: "C", Lines: []string{first.Get(internal.FieldHSN)}},
		{W: dutyCols[5], Align: "C", Lines: []string{agg.InvoiceNo, agg.InvoiceDate}},
		{W: dutyCols[6], Align: "C", Lines: []string{"1"}},
		{W: dutyCols[7], Align: "C", Lines: []string{util.FormatMoney(agg.TaxableValue)}},
		{W: dutyCols[8], Align: "C", Lines: []string{"0.00"}},
		{W: dutyCols[9], Align: "C", Lines: []string{"0.00"}},
		{W: dutyCols[10], Align: "C", Lines: []string{"0.00"}},
		{W: dutyCols[11], Align: "C", Lines: []string{"0.00"}},
		{W: dutyCols[12], Align: "C", Lines: []string{c.cfg.LUTReference}},
		{W: dutyCols[13], Align: "C", Lines: []string{"0.00"}},
		{W: dutyCols[14], Align: "C", Lines: []string{"0.00"}},
	})
}

func intToString(n int) string {
	return util.FormatQuantity(float64(n))
}
