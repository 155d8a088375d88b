package dto

import "github.com/shopspring/decimal"

// Per-customer billing outcome codes.
const (
	OutcomeInvoiceCreated     = "invoice_created"
	OutcomeSkippedNoShipments = "skipped_no_shipments"
	OutcomeSkippedAllInvoiced = "skipped_all_invoiced"
	OutcomeSkippedNoBillable  = "skipped_no_billable_items"
	OutcomeSkippedZeroTotal   = "skipped_zero_total"
	OutcomeSkippedNoCharge    = "skipped_no_charge"
	OutcomeError              = "error"
)

// BillingOutcome is one customer's result within a billing run. A customer
// error never aborts the batch; it is recorded here instead.
type BillingOutcome struct {
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Status        string          `json:"status"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	ShipmentCount int             `json:"shipment_count,omitempty"`
	LineCount     int             `json:"line_count,omitempty"`
	GrandTotal    decimal.Decimal `json:"grand_total,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// BillingRunSummary aggregates every customer's outcome for one run.
type BillingRunSummary struct {
	StartedAt  string           `json:"started_at"`
	FinishedAt string           `json:"finished_at"`
	Customers  int              `json:"customers"`
	Created    int              `json:"created"`
	Skipped    int              `json:"skipped"`
	Errors     int              `json:"errors"`
	Outcomes   []BillingOutcome `json:"outcomes"`
}

// InvoiceResponse an invoice with lines.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	CustomerID    string                `json:"customer_id"`
	Number        string                `json:"number"`
	Type          string                `json:"type"`
	OrderRef      string                `json:"order_ref,omitempty"`
	IssueDate     string                `json:"issue_date"`
	StorageMonth  string                `json:"storage_month,omitempty"`
	BillToName    string                `json:"bill_to_name"`
	BillToEmail   string                `json:"bill_to_email,omitempty"`
	BillToPhone   string                `json:"bill_to_phone,omitempty"`
	BillToAddress string                `json:"bill_to_address,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	ServicesTotal decimal.Decimal       `json:"services_total"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	Status        string                `json:"status"`
	AutoGenerated bool                  `json:"auto_generated"`
	Lines         []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse one billable row.
type InvoiceLineResponse struct {
	ID         string          `json:"id"`
	ShipmentID string          `json:"shipment_id,omitempty"`
	Product    string          `json:"product"`
	SKU        string          `json:"sku,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     decimal.Decimal `json:"amount"`
}
