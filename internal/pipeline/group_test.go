package pipeline

import (
	"math"
	"testing"

	"exportdocs/internal"
)

func rec(invoice, qty, rate string) internal.RowRecord {
	return internal.RowRecord{
		internal.FieldInvoice: invoice,
		internal.FieldQty:     qty,
		internal.FieldRate:    rate,
	}
}

func TestGroupRowsPartition(t *testing.T) {
	records := []internal.RowRecord{
		rec("A", "2", "10"),
		rec("A", "1", "5"),
		rec("B", "3", "7"),
	}

	groups := GroupRows(records)
	if len(groups) != 2 {
		t.Fatalf("groups=%d", len(groups))
	}
	if groups[0].ID != "A" || groups[1].ID != "B" {
		t.Fatalf("order: %s, %s", groups[0].ID, groups[1].ID)
	}
	if len(groups[0].Rows) != 2 || len(groups[1].Rows) != 1 {
		t.Fatalf("rows: %d, %d", len(groups[0].Rows), len(groups[1].Rows))
	}

	// Every record lands in exactly one group.
	total := 0
	for _, g := range groups {
		total += len(g.Rows)
	}
	if total != len(records) {
		t.Fatalf("total=%d", total)
	}

	// Rows keep input order within the group.
	if groups[0].Rows[0].Get(internal.FieldQty) != "2" || groups[0].Rows[1].Get(internal.FieldQty) != "1" {
		t.Fatal("row order lost")
	}
}

func TestGroupRowsSentinel(t *testing.T) {
	groups := GroupRows([]internal.RowRecord{
		rec("", "1", "1"),
		rec("X", "1", "1"),
		rec("", "2", "2"),
	})
	if len(groups) != 2 {
		t.Fatalf("groups=%d", len(groups))
	}
	if groups[0].ID != NoInvoiceKey {
		t.Fatalf("first group=%q", groups[0].ID)
	}
	if len(groups[0].Rows) != 2 {
		t.Fatalf("sentinel rows=%d", len(groups[0].Rows))
	}
}

func TestBuildAggregateFirstRowOnly(t *testing.T) {
	rates := Rates{Exchange: 82.20}
	groups := GroupRows([]internal.RowRecord{
		rec("A", "2", "10"),
		rec("A", "1", "5"),
		rec("B", "3", "7"),
	})

	a := BuildAggregate(groups[0], rates)
	if a.Quantity != 2 || a.Rate != 10 || a.Amount != 20 {
		t.Fatalf("A: %+v", a)
	}
	b := BuildAggregate(groups[1], rates)
	if b.Amount != 21 {
		t.Fatalf("B: %+v", b)
	}

	totals := internal.RunningTotals{}
	totals.Add(a)
	totals.Add(b)
	if totals.Orders != 2 {
		t.Fatalf("orders=%d", totals.Orders)
	}
	want := (20.0 + 21.0) * 82.20
	if math.Abs(totals.FOBInr-want) > 1e-6 {
		t.Fatalf("fob=%v want %v", totals.FOBInr, want)
	}
}

func TestBuildAggregateTaxableValue(t *testing.T) {
	rates := Rates{Exchange: 2, FreightInr: 3, InsuranceInr: 4}
	groups := GroupRows([]internal.RowRecord{rec("A", "5", "10")})
	a := BuildAggregate(groups[0], rates)
	if a.FOBInr != 100 {
		t.Fatalf("fob=%v", a.FOBInr)
	}
	if a.TaxableValue != 107 {
		t.Fatalf("taxable=%v", a.TaxableValue)
	}
	if a.AmountWords == "" {
		t.Fatal("expected a words phrase")
	}
}

func TestBuildAggregateDegenerate(t *testing.T) {
	groups := GroupRows([]internal.RowRecord{{internal.FieldInvoice: ""}})
	a := BuildAggregate(groups[0], Rates{Exchange: 82.20})
	if a.Amount != 0 || a.FOBInr != 0 || a.TaxableValue != 0 {
		t.Fatalf("degenerate: %+v", a)
	}
	if a.AmountWords != "" {
		t.Fatalf("words=%q", a.AmountWords)
	}
	if a.InvoiceNo != NoInvoiceKey {
		t.Fatalf("invoiceNo=%q", a.InvoiceNo)
	}
}
