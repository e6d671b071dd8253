package compose

import (
	"fmt"

	"exportdocs/internal"
	"exportdocs/internal/config"
	"exportdocs/internal/render"
	"exportdocs/internal/util"
)

// Granularity selects how orders are distributed over output documents.
// The layout logic is identical for both; only document boundaries and
// artifact names differ.
type Granularity int

const (
	// Combined produces one invoice document holding all orders' pages
	// plus one shared customs document, named after the source workbook.
	Combined Granularity = iota
	// PerOrder produces an invoice/customs pair per order, named with the
	// sanitized order id.
	PerOrder
)

// Order pairs a group with its derived aggregate.
type Order struct {
	Group internal.OrderGroup
	Agg   internal.OrderAggregate
}

// Document is one named binary artifact.
type Document struct {
	Name    string
	Content []byte
}

// Pair is the invoice/customs output for one source id.
type Pair struct {
	SourceID string
	Invoice  Document
	PBE      Document
}

// Result carries every artifact of a run plus the final running totals.
type Result struct {
	Pairs  []Pair
	Totals internal.RunningTotals
}

type Composer struct {
	cfg  config.Config
	gran Granularity
}

func NewComposer(cfg config.Config, gran Granularity) *Composer {
	return &Composer{cfg: cfg, gran: gran}
}

// QRPayload is the scannable identifier attached to each invoice page.
func QRPayload(agg internal.OrderAggregate) string {
	return fmt.Sprintf("Invoice No: %s\nDate: %s\nCustomer: %s", agg.InvoiceNo, agg.InvoiceDate, agg.CustomerName)
}

// Compose walks the ordered groups once and materializes the documents.
// Totals are accumulated as each group is composed and finalized only
// after the last one.
func (c *Composer) Compose(baseName string, orders []Order) (Result, error) {
	totals := &internal.RunningTotals{}

	if c.gran == PerOrder {
		pairs := make([]Pair, 0, len(orders))
		for _, order := range orders {
			totals.Add(order.Agg)

			inv := c.newInvoiceDoc()
			if err := c.invoicePage(inv, order); err != nil {
				return Result{}, err
			}
			pbe := c.newPBEDoc(totals)
			c.pbeDocument(pbe, []Order{order})

			id := SanitizeID(order.Group.ID)
			pair, err := buildPair(id, inv, pbe)
			if err != nil {
				return Result{}, err
			}
			pairs = append(pairs, pair)
		}
		return Result{Pairs: pairs, Totals: *totals}, nil
	}

	inv := c.newInvoiceDoc()
	for _, order := range orders {
		totals.Add(order.Agg)
		if err := c.invoicePage(inv, order); err != nil {
			return Result{}, err
		}
	}
	pbe := c.newPBEDoc(totals)
	c.pbeDocument(pbe, orders)

	pair, err := buildPair(baseName, inv, pbe)
	if err != nil {
		return Result{}, err
	}
	return Result{Pairs: []Pair{pair}, Totals: *totals}, nil
}

func buildPair(id string, inv, pbe *render.Doc) (Pair, error) {
	invBytes, err := inv.Bytes()
	if err != nil {
		return Pair{}, fmt.Errorf("compose invoice %s: %w", id, err)
	}
	pbeBytes, err := pbe.Bytes()
	if err != nil {
		return Pair{}, fmt.Errorf("compose pbe %s: %w", id, err)
	}
	return Pair{
		SourceID: id,
		Invoice:  Document{Name: InvoiceArtifactName(id), Content: invBytes},
		PBE:      Document{Name: PBEArtifactName(id), Content: pbeBytes},
	}, nil
}

func (c *Composer) newInvoiceDoc() *render.Doc {
	return render.NewLandscapeA4("Export Invoice", c.cfg.ExporterName)
}

func (c *Composer) newPBEDoc(totals *internal.RunningTotals) *render.Doc {
	doc := render.NewLandscapeA4("Postal Bill of Export", c.cfg.ExporterName)
	doc.SetFooterFunc(func(d *render.Doc) {
		d.SetY(-15)
		d.LineAcross()
		d.Ln(3)
		d.SetFont("helvetica", 9)
		summary := fmt.Sprintf(
			"Total no. of Parcels: %d, Total no. of Invoices: %d, Total Value of FOB: INR %s, Total invoice value(CIF) in INR: %s",
			totals.Orders, totals.Orders, util.FormatMoney(totals.FOBInr), util.FormatMoney(totals.FOBInr),
		)
		width := d.UsableWidth()
		d.Cell(width*0.75, 5, summary, false, 0, "L")
		d.Cell(width*0.25, 5, d.PageNumberText(), false, 1, "R")
	})
	return doc
}
