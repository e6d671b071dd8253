package pipeline

import (
	"exportdocs/internal"
	"exportdocs/internal/util"
)

// Rows with a blank invoice id are merged under this key instead of each
// becoming its own group.
const NoInvoiceKey = "NO-INVOICE"

// Rates holds the fixed monetary constants of one run.
type Rates struct {
	Exchange     float64
	FreightInr   float64
	InsuranceInr float64
}

// GroupRows partitions records by invoice id. Group order follows the first
// occurrence of each id; rows keep input order within their group. Grouping
// never fails.
func GroupRows(records []internal.RowRecord) []internal.OrderGroup {
	index := map[string]int{}
	groups := []internal.OrderGroup{}
	for _, record := range records {
		id := record.Get(internal.FieldInvoice)
		if id == "" {
			id = NoInvoiceKey
		}
		if at, seen := index[id]; seen {
			groups[at].Rows = append(groups[at].Rows, record)
			continue
		}
		index[id] = len(groups)
		groups = append(groups, internal.OrderGroup{ID: id, Rows: []internal.RowRecord{record}})
	}
	return groups
}

// BuildAggregate derives the monetary figures for one group. They come from
// the group's first row only: the source format carries one physical row
// per order, so multi-row groups are not line-summed.
func BuildAggregate(group internal.OrderGroup, rates Rates) internal.OrderAggregate {
	first := group.First()

	qty := util.ParseNumber(first.Get(internal.FieldQty))
	rate := util.ParseNumber(first.Get(internal.FieldRate))
	amount := qty * rate
	fobInr := amount * rates.Exchange
	taxable := fobInr + rates.FreightInr + rates.InsuranceInr

	return internal.OrderAggregate{
		InvoiceNo:    group.ID,
		InvoiceDate:  util.ParseDate(first.Get(internal.FieldDate)),
		CustomerName: first.Get(internal.FieldCustName),

		Quantity:     qty,
		Rate:         rate,
		Amount:       amount,
		ExchangeRate: rates.Exchange,
		FOBInr:       fobInr,
		FreightInr:   rates.FreightInr,
		InsuranceInr: rates.InsuranceInr,
		TaxableValue: taxable,
		AmountWords:  util.AmountInWords(taxable),
	}
}
