package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// monthLayout is the wire format of the target-month parameter.
const monthLayout = "2006-01"

// StorageFeeUseCase computes one monthly storage invoice per customer from
// the current inventory snapshot and the customer's pricing record. It runs
// independently from shipment invoicing.
type StorageFeeUseCase struct {
	users     repository.UserRepository
	inventory repository.InventoryRepository
	pricing   repository.StoragePricingRepository
	invoices  repository.InvoiceRepository
	locks     *CustomerLocks
	now       func() time.Time
}

// NewStorageFeeUseCase builds the use case.
func NewStorageFeeUseCase(
	users repository.UserRepository,
	inventory repository.InventoryRepository,
	pricing repository.StoragePricingRepository,
	invoices repository.InvoiceRepository,
	locks *CustomerLocks,
) *StorageFeeUseCase {
	return &StorageFeeUseCase{
		users:     users,
		inventory: inventory,
		pricing:   pricing,
		invoices:  invoices,
		locks:     locks,
		now:       time.Now,
	}
}

// WithClock overrides the time source (tests).
func (uc *StorageFeeUseCase) WithClock(now func() time.Time) *StorageFeeUseCase {
	uc.now = now
	return uc
}

// Run processes every approved client for the target month ("2006-01";
// empty defaults to the current month).
func (uc *StorageFeeUseCase) Run(ctx context.Context, month, actor string) (*dto.BillingRunSummary, error) {
	target, err := uc.targetMonth(month)
	if err != nil {
		return nil, err
	}

	customers, err := uc.users.ListApprovedClients()
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	started := uc.now()
	summary := &dto.BillingRunSummary{
		StartedAt: started.UTC().Format(time.RFC3339),
		Customers: len(customers),
	}
	for _, customer := range customers {
		outcome := uc.RunForCustomer(ctx, customer, target, actor)
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

// RunForCustomer computes and persists one customer's storage invoice for
// the target month.
func (uc *StorageFeeUseCase) RunForCustomer(ctx context.Context, customer *entity.User, target time.Time, actor string) dto.BillingOutcome {
	outcome := dto.BillingOutcome{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
	}

	unlock := uc.locks.Lock(customer.ID)
	defer unlock()

	pricing, err := uc.effectivePricing(customer.ID)
	if err != nil {
		outcome.Status = dto.OutcomeError
		outcome.Error = err.Error()
		return outcome
	}

	var quantity, unitPrice decimal.Decimal
	var description string

	switch pricing.Mode {
	case entity.StorageModeProduct:
		items, err := uc.inventory.ListByCustomer(customer.ID)
		if err != nil {
			outcome.Status = dto.OutcomeError
			outcome.Error = fmt.Sprintf("list inventory: %v", err)
			return outcome
		}
		quantity = chargeableUnits(items, target)
		unitPrice = pricing.PricePerItem
		description = fmt.Sprintf("Storage %s (per item)", target.Format(monthLayout))
	case entity.StorageModePallet:
		quantity = decimal.NewFromInt(int64(customer.PalletCount))
		unitPrice = pricing.PricePerPallet
		description = fmt.Sprintf("Storage %s (per pallet)", target.Format(monthLayout))
	default:
		outcome.Status = dto.OutcomeError
		outcome.Error = fmt.Sprintf("%v: %q", domain.ErrUnsupportedMode, pricing.Mode)
		return outcome
	}

	if !unitPrice.IsPositive() {
		outcome.Status = dto.OutcomeError
		outcome.Error = domain.ErrNoPricing.Error()
		return outcome
	}

	charge := quantity.Mul(unitPrice)
	if !charge.IsPositive() {
		outcome.Status = dto.OutcomeSkippedNoCharge
		return outcome
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		Number:       invoiceNumber("STO", now),
		Type:         entity.InvoiceTypeStorage,
		OrderRef:     orderRef(now),
		IssueDate:    now,
		StorageMonth: target.Format(monthLayout),
		BillTo: entity.BillTo{
			Name:    customer.Name,
			Email:   customer.Email,
			Phone:   customer.Phone,
			Address: customer.Address,
		},
		Subtotal:      charge,
		GrandTotal:    charge,
		Status:        entity.InvoiceStatusPending,
		AutoGenerated: actor == "",
		GeneratedBy:   actor,
		CreatedAt:     now,
	}
	inv.Lines = []*entity.InvoiceLine{{
		ID:        uuid.New().String(),
		InvoiceID: inv.ID,
		Product:   description,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    charge,
	}}

	if err := uc.invoices.Create(inv); err != nil {
		outcome.Status = dto.OutcomeError
		outcome.Error = fmt.Sprintf("persist invoice: %v", err)
		return outcome
	}

	outcome.Status = dto.OutcomeInvoiceCreated
	outcome.InvoiceNumber = inv.Number
	outcome.LineCount = 1
	outcome.GrandTotal = inv.GrandTotal
	return outcome
}

// targetMonth parses the month parameter, defaulting to the current month.
func (uc *StorageFeeUseCase) targetMonth(month string) (time.Time, error) {
	if month == "" {
		now := uc.now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q (want YYYY-MM)", domain.ErrInvalidInput, month)
	}
	return t, nil
}

// effectivePricing picks the authoritative pricing record: most recently
// updated wins, created-at breaks ties.
func (uc *StorageFeeUseCase) effectivePricing(customerID string) (*entity.StoragePricing, error) {
	records, err := uc.pricing.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("list storage pricing: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoPricing
	}
	sort.SliceStable(records, func(i, j int) bool {
		ei, ej := records[i].EffectiveAt(), records[j].EffectiveAt()
		if ei.Equal(ej) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return ei.After(ej)
	})
	return records[0], nil
}

// chargeableUnits counts in-stock units whose date-added falls outside the
// target month. Items added during the billing month are not yet chargeable
// (first month free); items with an unknown date are charged, matching the
// conservative treatment of legacy records.
func chargeableUnits(items []*entity.InventoryItem, target time.Time) decimal.Decimal {
	var units decimal.Decimal
	for _, item := range items {
		if item == nil || !item.Doc.IsInStock() {
			continue
		}
		if added, ok := item.Doc.DateAdded.Time(); ok && sameMonth(added, target) {
			continue
		}
		units = units.Add(timeval.Amount(item.Doc.Quantity))
	}
	return units
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
