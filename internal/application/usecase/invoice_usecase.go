package usecase

import (
	"time"

	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

// InvoiceUseCase read-side access to invoices plus the single allowed
// mutation, marking a pending invoice paid.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices}
}

// GetByID fetches one invoice with lines; nil when absent.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	return toInvoiceResponse(inv), nil
}

// ListByCustomer lists a customer's invoices with lines.
func (uc *InvoiceUseCase) ListByCustomer(customerID string) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoices.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// MarkPaid transitions pending -> paid. Any other current state is a
// conflict; line content never changes.
func (uc *InvoiceUseCase) MarkPaid(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status != entity.InvoiceStatusPending {
		return nil, domain.ErrConflict
	}
	if err := uc.invoices.MarkPaid(id); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatusPaid
	return toInvoiceResponse(inv), nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CustomerID:    inv.CustomerID,
		Number:        inv.Number,
		Type:          inv.Type,
		OrderRef:      inv.OrderRef,
		IssueDate:     inv.IssueDate.Format(time.RFC3339),
		StorageMonth:  inv.StorageMonth,
		BillToName:    inv.BillTo.Name,
		BillToEmail:   inv.BillTo.Email,
		BillToPhone:   inv.BillTo.Phone,
		BillToAddress: inv.BillTo.Address,
		Subtotal:      inv.Subtotal,
		ServicesTotal: inv.ServicesTotal,
		GrandTotal:    inv.GrandTotal,
		Status:        inv.Status,
		AutoGenerated: inv.AutoGenerated,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:         line.ID,
			ShipmentID: line.ShipmentID,
			Product:    line.Product,
			SKU:        line.SKU,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Amount:     line.Amount,
		})
	}
	return resp
}
