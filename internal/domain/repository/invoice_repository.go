package repository

import "github.com/wareline/warehouse-api/internal/domain/entity"

// InvoiceRepository is the persistence port for invoices. Create persists the
// header and every line atomically: either the whole invoice is written or
// nothing is. MarkPaid is the only mutation after creation.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// ListByCustomer returns the customer's full invoice history with lines,
	// the input to the idempotence ledger.
	ListByCustomer(customerID string) ([]*entity.Invoice, error)
	// MarkPaid transitions pending -> paid; any other state is a conflict.
	MarkPaid(id string) error
}
