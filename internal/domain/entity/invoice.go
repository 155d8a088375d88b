package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice payment states. pending -> paid is the only allowed transition.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice kinds.
const (
	InvoiceTypeShipment = "shipment" // aggregated from un-invoiced shipments
	InvoiceTypeStorage  = "storage"  // monthly storage fee
)

// Invoice is one billing document for a customer. Lines are fixed at
// creation; the bill-to block is a snapshot so later profile edits do not
// rewrite history.
type Invoice struct {
	ID            string
	CustomerID    string
	Number        string // globally unique, date+counter derived
	Type          string // InvoiceTypeShipment | InvoiceTypeStorage
	OrderRef      string
	IssueDate     time.Time
	StorageMonth  string // "2006-01", storage invoices only
	BillTo        BillTo
	Subtotal      decimal.Decimal
	ServicesTotal decimal.Decimal
	GrandTotal    decimal.Decimal
	Status        string // InvoiceStatusPending | InvoiceStatusPaid
	AutoGenerated bool
	GeneratedBy   string // actor for admin-triggered runs, empty for the scheduler
	CreatedAt     time.Time
	Lines         []*InvoiceLine
}

// BillTo is the customer snapshot taken at billing time.
type BillTo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// InvoiceLine is a single billable row. ShipmentID links product lines back
// to the shipment they bill; it is empty on storage and service lines.
type InvoiceLine struct {
	ID         string
	InvoiceID  string
	ShipmentID string
	Product    string
	SKU        string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Amount     decimal.Decimal
	Position   int
}
