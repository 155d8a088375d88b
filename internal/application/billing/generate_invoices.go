package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain/billing"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// GenerateInvoicesUseCase turns each customer's un-invoiced shipments into at
// most one new invoice per run. Generation is idempotent: the billed-shipment
// ledger is rebuilt from the customer's invoice history on every run, so
// re-running with unchanged input creates nothing.
type GenerateInvoicesUseCase struct {
	users     repository.UserRepository
	shipments repository.ShipmentRepository
	invoices  repository.InvoiceRepository
	inventory repository.InventoryRepository
	locks     *CustomerLocks
	now       func() time.Time
}

// NewGenerateInvoicesUseCase builds the use case.
func NewGenerateInvoicesUseCase(
	users repository.UserRepository,
	shipments repository.ShipmentRepository,
	invoices repository.InvoiceRepository,
	inventory repository.InventoryRepository,
	locks *CustomerLocks,
) *GenerateInvoicesUseCase {
	return &GenerateInvoicesUseCase{
		users:     users,
		shipments: shipments,
		invoices:  invoices,
		inventory: inventory,
		locks:     locks,
		now:       time.Now,
	}
}

// WithClock overrides the time source (tests).
func (uc *GenerateInvoicesUseCase) WithClock(now func() time.Time) *GenerateInvoicesUseCase {
	uc.now = now
	return uc
}

// Run processes every approved client sequentially. A customer's error is
// recorded in their outcome and the batch continues; only failing to list
// the customers aborts the run.
func (uc *GenerateInvoicesUseCase) Run(ctx context.Context, actor string) (*dto.BillingRunSummary, error) {
	started := uc.now()

	customers, err := uc.users.ListApprovedClients()
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	summary := &dto.BillingRunSummary{
		StartedAt: started.UTC().Format(time.RFC3339),
		Customers: len(customers),
	}
	for _, customer := range customers {
		outcome := uc.RunForCustomer(ctx, customer, actor)
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Status {
		case dto.OutcomeInvoiceCreated:
			summary.Created++
		case dto.OutcomeError:
			summary.Errors++
		default:
			summary.Skipped++
		}
	}
	summary.FinishedAt = uc.now().UTC().Format(time.RFC3339)
	return summary, nil
}

// RunForCustomer executes the read -> filter -> aggregate -> persist sequence
// for one customer under that customer's lock.
func (uc *GenerateInvoicesUseCase) RunForCustomer(ctx context.Context, customer *entity.User, actor string) dto.BillingOutcome {
	outcome := dto.BillingOutcome{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
	}

	unlock := uc.locks.Lock(customer.ID)
	defer unlock()

	shipments, err := uc.shipments.ListByCustomer(customer.ID)
	if err != nil {
		outcome.Status = dto.OutcomeError
		outcome.Error = fmt.Sprintf("list shipments: %v", err)
		return outcome
	}
	if len(shipments) == 0 {
		outcome.Status = dto.OutcomeSkippedNoShipments
		return outcome
	}

	history, err := uc.invoices.ListByCustomer(customer.ID)
	if err != nil {
		outcome.Status = dto.OutcomeError
		outcome.Error = fmt.Sprintf("list invoices: %v", err)
		return outcome
	}

	ledger := billing.NewLedger(history)
	billable, _ := ledger.Partition(shipments)
	if len(billable) == 0 {
		outcome.Status = dto.OutcomeSkippedAllInvoiced
		return outcome
	}

	skuByProduct := uc.skuIndex(customer.ID)

	now := uc.now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Number:     invoiceNumber("INV", now),
		Type:       entity.InvoiceTypeShipment,
		OrderRef:   orderRef(now),
		IssueDate:  now,
		BillTo: entity.BillTo{
			Name:    customer.Name,
			Email:   customer.Email,
			Phone:   customer.Phone,
			Address: customer.Address,
		},
		Status:        entity.InvoiceStatusPending,
		AutoGenerated: actor == "",
		GeneratedBy:   actor,
		CreatedAt:     now,
	}

	var subtotal decimal.Decimal
	services := serviceTally{}
	for _, shipment := range billable {
		for _, line := range billing.ShipmentLines(shipment.Doc) {
			// Zero and negative quantities never reach a persisted invoice.
			if !line.Quantity.IsPositive() {
				continue
			}
			amount := line.Amount()
			subtotal = subtotal.Add(amount)
			inv.Lines = append(inv.Lines, &entity.InvoiceLine{
				ID:         uuid.New().String(),
				InvoiceID:  inv.ID,
				ShipmentID: shipment.ID,
				Product:    line.Product,
				SKU:        skuByProduct[line.Product],
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Amount:     amount,
				Position:   len(inv.Lines),
			})
		}
		services.add(shipment.Doc.Services)
	}
	if len(inv.Lines) == 0 {
		outcome.Status = dto.OutcomeSkippedNoBillable
		return outcome
	}

	for _, svc := range services.lines() {
		inv.Lines = append(inv.Lines, &entity.InvoiceLine{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Product:   svc.Product,
			Quantity:  svc.Quantity,
			UnitPrice: svc.UnitPrice,
			Amount:    svc.Amount(),
			Position:  len(inv.Lines),
		})
	}

	inv.Subtotal = subtotal
	inv.ServicesTotal = services.total()
	inv.GrandTotal = subtotal.Add(inv.ServicesTotal)
	if !inv.GrandTotal.IsPositive() {
		outcome.Status = dto.OutcomeSkippedZeroTotal
		return outcome
	}

	if err := uc.invoices.Create(inv); err != nil {
		outcome.Status = dto.OutcomeError
		outcome.Error = fmt.Sprintf("persist invoice: %v", err)
		return outcome
	}

	outcome.Status = dto.OutcomeInvoiceCreated
	outcome.InvoiceNumber = inv.Number
	outcome.ShipmentCount = len(billable)
	outcome.LineCount = len(inv.Lines)
	outcome.GrandTotal = inv.GrandTotal
	return outcome
}

// skuIndex maps product name -> SKU from the customer's current inventory.
// Enrichment is best-effort: a failed read or a missing product just leaves
// the SKU absent.
func (uc *GenerateInvoicesUseCase) skuIndex(customerID string) map[string]string {
	index := make(map[string]string)
	items, err := uc.inventory.ListByCustomer(customerID)
	if err != nil {
		return index
	}
	for _, item := range items {
		if item.Doc.ProductName != "" && item.Doc.SKU != "" {
			if _, exists := index[item.Doc.ProductName]; !exists {
				index[item.Doc.ProductName] = item.Doc.SKU
			}
		}
	}
	return index
}

// serviceTally accumulates additional-service usage across the shipments of
// one run. Unit prices are customer-wide in practice even though they are
// stored per shipment: the first non-zero price encountered wins.
type serviceTally struct {
	bubbleFeet, bubblePrice decimal.Decimal
	stickers, stickerPrice  decimal.Decimal
	labels, labelPrice      decimal.Decimal
}

func (t *serviceTally) add(u entity.ServiceUsage) {
	t.bubbleFeet = t.bubbleFeet.Add(timeval.Amount(u.BubbleWrapFeet))
	t.stickers = t.stickers.Add(timeval.Amount(u.StickerRemovals))
	t.labels = t.labels.Add(timeval.Amount(u.WarningLabels))

	if t.bubblePrice.IsZero() {
		t.bubblePrice = timeval.Amount(u.BubbleWrapUnitPrice)
	}
	if t.stickerPrice.IsZero() {
		t.stickerPrice = timeval.Amount(u.StickerUnitPrice)
	}
	if t.labelPrice.IsZero() {
		t.labelPrice = timeval.Amount(u.WarningLabelUnitPrice)
	}
}

// lines returns one billable row per service with usage and a price.
func (t *serviceTally) lines() []billing.Line {
	var lines []billing.Line
	if t.bubbleFeet.IsPositive() && t.bubblePrice.IsPositive() {
		lines = append(lines, billing.Line{Product: "Bubble wrap (ft)", Quantity: t.bubbleFeet, UnitPrice: t.bubblePrice})
	}
	if t.stickers.IsPositive() && t.stickerPrice.IsPositive() {
		lines = append(lines, billing.Line{Product: "Sticker removal", Quantity: t.stickers, UnitPrice: t.stickerPrice})
	}
	if t.labels.IsPositive() && t.labelPrice.IsPositive() {
		lines = append(lines, billing.Line{Product: "Warning labels", Quantity: t.labels, UnitPrice: t.labelPrice})
	}
	return lines
}

func (t *serviceTally) total() decimal.Decimal {
	var sum decimal.Decimal
	for _, l := range t.lines() {
		sum = sum.Add(l.Amount())
	}
	return sum
}
