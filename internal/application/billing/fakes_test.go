package billing_test

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory repository fakes shared by the billing engine tests.
// ─────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
	err   error
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListClients(status string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		if u.Role != entity.RoleClient || u.Status == entity.StatusDeleted {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListApprovedClients() ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ListClients(entity.StatusApproved, 0, 0)
}

func (f *fakeUserRepo) UpdateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.Status = status
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error { return nil }

type fakeShipmentRepo struct {
	mu        sync.Mutex
	shipments []*entity.Shipment
	errFor    map[string]error // customer id -> forced listing error
}

func (f *fakeShipmentRepo) Create(s *entity.Shipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shipments = append(f.shipments, s)
	return nil
}

func (f *fakeShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shipments {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeShipmentRepo) ListByCustomer(customerID string) ([]*entity.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errFor[customerID]; err != nil {
		return nil, err
	}
	var out []*entity.Shipment
	for _, s := range f.shipments {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices []*entity.Invoice
	err      error
	// listGate, when set, is closed-over by tests to widen the window
	// between the history read and the write.
	listGate func()
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invoices = append(f.invoices, inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	f.mu.Lock()
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	f.mu.Unlock()
	if f.listGate != nil {
		f.listGate()
	}
	return out, nil
}

func (f *fakeInvoiceRepo) MarkPaid(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.ID == id {
			if inv.Status != entity.InvoiceStatusPending {
				return domain.ErrConflict
			}
			inv.Status = entity.InvoiceStatusPaid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvoiceRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.invoices)
}

type fakeInventoryRepo struct {
	mu    sync.Mutex
	items []*entity.InventoryItem
}

func (f *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeInventoryRepo) ListByCustomer(customerID string) ([]*entity.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.InventoryItem
	for _, item := range f.items {
		if item.CustomerID == customerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) GetByExternalRef(customerID, externalRef string) (*entity.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.CustomerID == customerID && item.Doc.ExternalRef == externalRef {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) Update(item *entity.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePricingRepo struct {
	records []*entity.StoragePricing
}

func (f *fakePricingRepo) Create(p *entity.StoragePricing) error {
	f.records = append(f.records, p)
	return nil
}

func (f *fakePricingRepo) ListByCustomer(customerID string) ([]*entity.StoragePricing, error) {
	var out []*entity.StoragePricing
	for _, p := range f.records {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Test data helpers.
// ─────────────────────────────────────────────────────────────────────────────

func approvedClient(id, name string) *entity.User {
	return &entity.User{
		ID:     id,
		Email:  id + "@example.com",
		Name:   name,
		Role:   entity.RoleClient,
		Status: entity.StatusApproved,
	}
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
