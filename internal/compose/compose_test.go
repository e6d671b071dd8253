package compose_test

import (
	"bytes"
	"math"
	"testing"

	"exportdocs/internal"
	"exportdocs/internal/compose"
	"exportdocs/internal/config"
	"exportdocs/internal/pipeline"
)

func testOrders(t *testing.T, cfg config.Config) []compose.Order {
	t.Helper()
	records := []internal.RowRecord{
		{
			internal.FieldInvoice:  "A",
			internal.FieldDate:     "15-08-2023",
			internal.FieldCustName: "Jane Citizen",
			internal.FieldQty:      "2",
			internal.FieldRate:     "10",
			internal.FieldDesc:     "Wooden Box",
			internal.FieldCountry:  "Australia",
		},
		{
			internal.FieldInvoice: "B",
			internal.FieldQty:     "3",
			internal.FieldRate:    "7",
		},
	}
	rates := pipeline.Rates{Exchange: cfg.ExchangeRate, FreightInr: cfg.FreightInr, InsuranceInr: cfg.InsuranceInr}
	groups := pipeline.GroupRows(records)
	orders := make([]compose.Order, 0, len(groups))
	for _, g := range groups {
		orders = append(orders, compose.Order{Group: g, Agg: pipeline.BuildAggregate(g, rates)})
	}
	return orders
}

func assertPDF(t *testing.T, doc compose.Document) {
	t.Helper()
	if len(doc.Content) == 0 {
		t.Fatalf("%s: empty content", doc.Name)
	}
	if !bytes.HasPrefix(doc.Content, []byte("%PDF")) {
		t.Fatalf("%s: not a pdf", doc.Name)
	}
}

func TestComposeCombined(t *testing.T) {
	cfg, _ := config.Load()
	orders := testOrders(t, cfg)

	result, err := compose.NewComposer(cfg, compose.Combined).Compose("batch_01", orders)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("pairs=%d", len(result.Pairs))
	}
	pair := result.Pairs[0]
	if pair.Invoice.Name != "invoice_batch_01.pdf" || pair.PBE.Name != "pbe_batch_01.pdf" {
		t.Fatalf("names: %s, %s", pair.Invoice.Name, pair.PBE.Name)
	}
	assertPDF(t, pair.Invoice)
	assertPDF(t, pair.PBE)

	if result.Totals.Orders != 2 {
		t.Fatalf("orders=%d", result.Totals.Orders)
	}
	want := (20.0 + 21.0) * cfg.ExchangeRate
	if math.Abs(result.Totals.FOBInr-want) > 1e-6 {
		t.Fatalf("fob=%v want %v", result.Totals.FOBInr, want)
	}
}

func TestComposePerOrder(t *testing.T) {
	cfg, _ := config.Load()
	orders := testOrders(t, cfg)

	result, err := compose.NewComposer(cfg, compose.PerOrder).Compose("batch_01", orders)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Pairs) != 2 {
		t.Fatalf("pairs=%d", len(result.Pairs))
	}
	if result.Pairs[0].Invoice.Name != "invoice_A.pdf" || result.Pairs[1].PBE.Name != "pbe_B.pdf" {
		t.Fatalf("names: %s, %s", result.Pairs[0].Invoice.Name, result.Pairs[1].PBE.Name)
	}
	for _, pair := range result.Pairs {
		assertPDF(t, pair.Invoice)
		assertPDF(t, pair.PBE)
	}
	if result.Totals.Orders != 2 {
		t.Fatalf("orders=%d", result.Totals.Orders)
	}
}

func TestComposePerOrderSingleGroupRoundTrip(t *testing.T) {
	cfg, _ := config.Load()
	group := internal.OrderGroup{ID: "PO#001/X", Rows: []internal.RowRecord{{
		internal.FieldInvoice: "PO#001/X",
		internal.FieldQty:     "1",
		internal.FieldRate:    "5",
	}}}
	agg := pipeline.BuildAggregate(group, pipeline.Rates{Exchange: cfg.ExchangeRate})

	result, err := compose.NewComposer(cfg, compose.PerOrder).Compose("ignored", []compose.Order{{Group: group, Agg: agg}})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Pairs) != 1 {
		t.Fatalf("pairs=%d", len(result.Pairs))
	}
	pair := result.Pairs[0]
	if pair.SourceID != "PO_001_X" {
		t.Fatalf("sourceID=%q", pair.SourceID)
	}
	if pair.Invoice.Name != "invoice_PO_001_X.pdf" || pair.PBE.Name != "pbe_PO_001_X.pdf" {
		t.Fatalf("names: %s, %s", pair.Invoice.Name, pair.PBE.Name)
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "PO#001/X", want: "PO_001_X"},
		{input: "A-1_b", want: "A-1_b"},
		{input: "NO-INVOICE", want: "NO-INVOICE"},
		{input: "a b.c", want: "a_b_c"},
	}
	for _, tc := range cases {
		if got := compose.SanitizeID(tc.input); got != tc.want {
			t.Fatalf("SanitizeID(%q) = %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestQRPayload(t *testing.T) {
	agg := internal.OrderAggregate{InvoiceNo: "A-1", InvoiceDate: "15-08-2023", CustomerName: "Jane Citizen"}
	want := "Invoice No: A-1\nDate: 15-08-2023\nCustomer: Jane Citizen"
	if got := compose.QRPayload(agg); got != want {
		t.Fatalf("got %q", got)
	}
}
