package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wareline/warehouse-api/internal/application/auth"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

// CustomerUseCase admin-side client account management: approval, removal
// and storage-plan assignment.
type CustomerUseCase struct {
	users   repository.UserRepository
	pricing repository.StoragePricingRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(users repository.UserRepository, pricing repository.StoragePricingRepository) *CustomerUseCase {
	return &CustomerUseCase{users: users, pricing: pricing}
}

// List lists client accounts, optionally filtered by status.
func (uc *CustomerUseCase) List(status string, limit, offset int) ([]*dto.CustomerResponse, error) {
	users, err := uc.users.ListClients(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToCustomerResponse(u))
	}
	return out, nil
}

// GetByID fetches one client account; nil when absent.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleClient {
		return nil, nil
	}
	return auth.ToCustomerResponse(user), nil
}

// Approve transitions a pending account to approved.
func (uc *CustomerUseCase) Approve(id string) (*dto.CustomerResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleClient {
		return nil, domain.ErrUserNotFound
	}
	if user.Status == entity.StatusDeleted {
		return nil, domain.ErrConflict
	}
	if err := uc.users.UpdateStatus(id, entity.StatusApproved); err != nil {
		return nil, err
	}
	user.Status = entity.StatusApproved
	return auth.ToCustomerResponse(user), nil
}

// Delete soft-deletes a client account. Invoices and shipments stay in
// place for reconciliation.
func (uc *CustomerUseCase) Delete(id string) error {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil || user.Role != entity.RoleClient {
		return domain.ErrUserNotFound
	}
	return uc.users.UpdateStatus(id, entity.StatusDeleted)
}

// SetStoragePlan assigns a storage billing mode and writes a new pricing
// record. The previous records stay; the newest one is authoritative.
func (uc *CustomerUseCase) SetStoragePlan(customerID string, in dto.StoragePlanRequest) (*dto.CustomerResponse, error) {
	if in.Mode != entity.StorageModeProduct && in.Mode != entity.StorageModePallet {
		return nil, domain.ErrUnsupportedMode
	}
	user, err := uc.users.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleClient {
		return nil, domain.ErrUserNotFound
	}

	perItem, err := parsePrice(in.PricePerItem)
	if err != nil {
		return nil, err
	}
	perPallet, err := parsePrice(in.PricePerPallet)
	if err != nil {
		return nil, err
	}
	switch in.Mode {
	case entity.StorageModeProduct:
		if !perItem.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case entity.StorageModePallet:
		if !perPallet.IsPositive() || in.PalletCount < 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	record := &entity.StoragePricing{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		Mode:           in.Mode,
		PricePerItem:   perItem,
		PricePerPallet: perPallet,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.pricing.Create(record); err != nil {
		return nil, err
	}

	user.StorageMode = in.Mode
	user.PalletCount = in.PalletCount
	user.UpdatedAt = now
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return auth.ToCustomerResponse(user), nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}
