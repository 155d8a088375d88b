package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// InventoryUseCase reads warehouse stock and applies external inventory
// sync events (Shopify webhooks).
type InventoryUseCase struct {
	inventory repository.InventoryRepository
	users     repository.UserRepository
}

// NewInventoryUseCase builds the use case.
func NewInventoryUseCase(inventory repository.InventoryRepository, users repository.UserRepository) *InventoryUseCase {
	return &InventoryUseCase{inventory: inventory, users: users}
}

// ListByCustomer lists a customer's stock positions.
func (uc *InventoryUseCase) ListByCustomer(customerID string) ([]*dto.InventoryItemResponse, error) {
	items, err := uc.inventory.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toInventoryResponse(item))
	}
	return out, nil
}

// SyncExternal upserts a stock position keyed by the external product
// reference. An available count of zero marks the item out of stock rather
// than deleting it, so storage history stays intact.
func (uc *InventoryUseCase) SyncExternal(in dto.ShopifyInventoryWebhook) (*dto.InventoryItemResponse, error) {
	if in.CustomerID == "" || in.ExternalRef == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.users.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != entity.RoleClient {
		return nil, domain.ErrUserNotFound
	}

	inStock := in.Available.IsPositive()
	existing, err := uc.inventory.GetByExternalRef(in.CustomerID, in.ExternalRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Doc.Quantity = rawDecimal(in.Available)
		existing.Doc.InStock = &inStock
		if in.ProductName != "" {
			existing.Doc.ProductName = in.ProductName
		}
		if in.SKU != "" {
			existing.Doc.SKU = in.SKU
		}
		if err := uc.inventory.Update(existing); err != nil {
			return nil, err
		}
		return toInventoryResponse(existing), nil
	}

	item := &entity.InventoryItem{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Doc: entity.InventoryDoc{
			ProductName: in.ProductName,
			SKU:         in.SKU,
			ExternalRef: in.ExternalRef,
			Quantity:    rawDecimal(in.Available),
			DateAdded:   timeval.FromTime(time.Now()),
			InStock:     &inStock,
		},
	}
	if err := uc.inventory.Create(item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

func toInventoryResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	resp := &dto.InventoryItemResponse{
		ID:          item.ID,
		CustomerID:  item.CustomerID,
		ProductName: item.Doc.ProductName,
		SKU:         item.Doc.SKU,
		Quantity:    timeval.Amount(item.Doc.Quantity),
		InStock:     item.Doc.IsInStock(),
	}
	if t, ok := item.Doc.DateAdded.Time(); ok {
		resp.DateAdded = t.Format(time.RFC3339)
	}
	return resp
}
