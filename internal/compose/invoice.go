package compose

import (
	"exportdocs/internal"
	"exportdocs/internal/render"
	"exportdocs/internal/util"
)

// Column widths of the line-item table, in mm.
var itemCols = []float64{8, 32, 14, 16, 16, 12, 16, 18, 16, 20, 16, 16, 18, 10, 15, 10, 14}

var itemHeaders = []string{
	"S.No", "Description", "HSN", "Net Wt.(gms)", "Gross Wt.(gms)", "Qty",
	"Rate Per Unit", "Amount", "Exchange Rate", "FOB Value (INR)",
	"Freight (INR)", "Insurance (INR)", "Taxable Value",
	"IGST %", "IGST Amt", "Cess %", "Cess Amt",
}

// invoicePage renders one order as one invoice page. Page boundaries are
// one-to-one with orders; no cross-page line splitting.
func (c *Composer) invoicePage(d *render.Doc, order Order) error {
	cfg := c.cfg
	first := order.Group.First()
	agg := order.Agg

	d.AddPage()
	d.SetFont("times", 10)

	d.Cell(0, 10, cfg.ExporterName, true, 1, "L")
	d.SetFontBold("times", 11)
	d.Cell(0, 8, "EXPORT INVOICE", true, 1, "C")
	d.SetFont("times", 9)
	d.Cell(0, 7, "SUPPLY MEANT FOR EXPORT UNDER LUT WITHOUT PAYMENT OF INTEGRATED TAX (IGST)", true, 1, "C")

	d.SetFont("times", 8)
	d.BoxRow(30, 4, []render.Box{
		{W: 130, Align: "L", Lines: []string{
			"Exporter",
			cfg.ExporterName,
			cfg.ExporterAddr,
			cfg.ExporterCity,
			cfg.ExporterZip,
		}},
		{W: 151, Align: "L", Lines: []string{
			"Invoice No: " + agg.InvoiceNo,
			"Invoice Date: " + agg.InvoiceDate,
			"Ref/Order No.: " + first.Get(internal.FieldReference),
			"Transaction ID: " + first.Get(internal.FieldPaymentTransaction),
			"Invoice Terms: " + first.Get(internal.FieldInvoiceTerms),
			"Currency: " + currencyOf(first, cfg.InvoiceCurrency),
		}},
	})

	lut := first.Get(internal.FieldLUTNumber)
	if lut == "" {
		lut = cfg.LUTReference
	}
	d.BoxRow(34, 4, []render.Box{
		{W: 130, Align: "L", Lines: []string{
			"Consignee",
			agg.CustomerName,
			first.Get(internal.FieldAddr1),
			first.Get(internal.FieldAddr2),
			first.Get(internal.FieldCity) + " " + first.Get(internal.FieldZip),
			first.Get(internal.FieldState),
			first.Get(internal.FieldCountry),
			first.Get(internal.FieldPhone),
		}},
		{W: 151, Align: "L", Lines: []string{
			"Mode of IGST Payment: Export under LUT/Bond",
			"LUT (if any): " + lut,
			"Exporter's Ref/IEC: " + cfg.ExporterIEC,
			"GSTIN: " + cfg.ExporterGSTIN,
			"State: " + cfg.ExporterState,
		}},
	})

	d.BoxRow(10, 4, []render.Box{
		{W: 140, Align: "L", Lines: []string{
			"Buyer: Same as Consignee",
			"Country of Final Destination: " + first.Get(internal.FieldCountry),
		}},
		{W: 141, Align: "L", Lines: []string{
			"Country of Origin: " + cfg.OriginCountry,
			"Shipping Port Code: " + cfg.ShippingPortCode,
		}},
	})

	d.SetFont("times", 7)
	headerCols := make([]render.Col, len(itemCols))
	for i := range itemCols {
		headerCols[i] = render.Col{W: itemCols[i], Text: itemHeaders[i], Align: "C"}
	}
	d.TableRow(10, headerCols)

	d.TableRow(8, []render.Col{
		{W: itemCols[0], Text: "1", Align: "C"},
		{W: itemCols[1], Text: first.Get(internal.FieldDesc), Align: "C"},
		{W: itemCols[2], Text: first.Get(internal.FieldHSN), Align: "C"},
		{W: itemCols[3], Text: first.Get(internal.FieldNet), Align: "C"},
		{W: itemCols[4], Text: first.Get(internal.FieldGross), Align: "C"},
		{W: itemCols[5], Text: util.FormatQuantity(agg.Quantity), Align: "C"},
		{W: itemCols[6], Text: util.FormatMoney(agg.Rate), Align: "C"},
		{W: itemCols[7], Text: util.FormatMoney(agg.Amount), Align: "C"},
		{W: itemCols[8], Text: util.FormatMoney(agg.ExchangeRate), Align: "C"},
		{W: itemCols[9], Text: util.FormatMoney(agg.FOBInr), Align: "C"},
		{W: itemCols[10], Text: util.FormatMoney(agg.FreightInr), Align: "C"},
		{W: itemCols[11], Text: util.FormatMoney(agg.InsuranceInr), Align: "C"},
		{W: itemCols[12], Text: util.FormatMoney(agg.TaxableValue), Align: "C"},
		{W: itemCols[13], Text: "0.00", Align: "C"},
		{W: itemCols[14], Text: "0.00", Align: "C"},
		{W: itemCols[15], Text: "0.00", Align: "C"},
		{W: itemCols[16], Text: "0.00", Align: "C"},
	})

	labelW := itemCols[0] + itemCols[1] + itemCols[2] + itemCols[3] + itemCols[4] +
		itemCols[5] + itemCols[6] + itemCols[7] + itemCols[8]
	d.TableRow(7, []render.Col{
		{W: labelW, Text: "Total", Align: "R"},
		{W: itemCols[9], Text: util.FormatMoney(agg.FOBInr), Align: "C"},
		{W: itemCols[10], Text: util.FormatMoney(agg.FreightInr), Align: "C"},
		{W: itemCols[11], Text: util.FormatMoney(agg.InsuranceInr), Align: "C"},
		{W: itemCols[12], Text: util.FormatMoney(agg.TaxableValue), Align: "C"},
		{W: itemCols[13], Text: "", Align: "C"},
		{W: itemCols[14], Text: "0.00", Align: "C"},
		{W: itemCols[15], Text: "", Align: "C"},
		{W: itemCols[16], Text: "0.00", Align: "C"},
	})

	d.SetFont("times", 8)
	d.BoxRow(30, 4.5, []render.Box{
		{W: 148, Align: "L", Lines: []string{
			"Amount in Words:",
			agg.AmountWords,
			"",
			"Declaration",
			"We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.",
		}},
		{W: 133, Align: "L", Lines: []string{
			"Total FOB Value (INR): " + util.FormatMoney(agg.FOBInr),
			"Total CIF Value (INR): " + util.FormatMoney(agg.FOBInr),
			"Total Taxes (INR): 0.00",
			"Total Amount (INR): " + util.FormatMoney(agg.FOBInr),
		}},
	})
	d.Cell(0, 10, "Authorized Signatory", true, 1, "R")

	return d.QRCode(QRPayload(agg), 244, 49, 24)
}

func currencyOf(row internal.RowRecord, fallback string) string {
	if cur := row.Get(internal.FieldCurrency); cur != "" {
		return cur
	}
	return fallback
}
