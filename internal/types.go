package internal

// FieldKey is the logical name of a source column. The mapping from logical
// name to the exact header text lives in config, not here.
type FieldKey string

const (
	FieldInvoice  FieldKey = "invoice"
	FieldDate     FieldKey = "date"
	FieldCustName FieldKey = "cust_name"
	FieldAddr1    FieldKey = "addr1"
	FieldAddr2    FieldKey = "addr2"
	FieldCity     FieldKey = "city"
	FieldState    FieldKey = "state"
	FieldZip      FieldKey = "zip"
	FieldCountry  FieldKey = "country"
	FieldPhone    FieldKey = "phone"

	FieldPaymentTransaction FieldKey = "payment_transaction"
	FieldReference          FieldKey = "reference"
	FieldInvoiceTerms       FieldKey = "invoice_terms"
	FieldLUTNumber          FieldKey = "lut_number"
	FieldCurrency           FieldKey = "currency"
	FieldURL                FieldKey = "url"
	FieldSKU                FieldKey = "sku"

	FieldDesc     FieldKey = "desc"
	FieldHSN      FieldKey = "hsn"
	FieldQty      FieldKey = "qty"
	FieldUnit     FieldKey = "unit"
	FieldRate     FieldKey = "rate"
	FieldNet      FieldKey = "net"
	FieldGross    FieldKey = "gross"
	FieldTracking FieldKey = "tracking"
)

// RowRecord is one shipped line item read from the source table. Keys are
// present only for logical names whose header existed in the header row;
// readers take "" for anything absent via Get.
type RowRecord map[FieldKey]string

func (r RowRecord) Get(key FieldKey) string {
	return r[key]
}

// OrderGroup holds the rows sharing one invoice id, in input order.
// Always has at least one row.
type OrderGroup struct {
	ID   string
	Rows []RowRecord
}

// First returns the row the group's header fields and aggregate come from.
func (g OrderGroup) First() RowRecord {
	return g.Rows[0]
}

// OrderAggregate is the derived monetary view of one group, computed once
// from the group's first row and consumed read-only by the composer.
type OrderAggregate struct {
	InvoiceNo    string
	InvoiceDate  string
	CustomerName string

	Quantity     float64
	Rate         float64
	Amount       float64
	ExchangeRate float64
	FOBInr       float64
	FreightInr   float64
	InsuranceInr float64
	TaxableValue float64
	AmountWords  string
}

// RunningTotals accumulates across the groups of one generation run and is
// rendered once in the customs document footer.
type RunningTotals struct {
	Orders int
	FOBInr float64
}

func (t *RunningTotals) Add(agg OrderAggregate) {
	t.Orders++
	t.FOBInr += agg.FOBInr
}

const StatusApproved = "approved"

// GeneratedArtifact describes one invoice/customs document pair handed to
// the record store.
type GeneratedArtifact struct {
	SourceID   string
	InvoicePDF string
	PBEPDF     string
	Status     string
}

type RecordRow struct {
	ID         int
	SourceFile string
	InvoicePDF string
	PBEPDF     string
	Status     string
	FileName   string
	UploadedAt string
}

type MailRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
