package repository

import "github.com/wareline/warehouse-api/internal/domain/entity"

// InventoryRepository is the persistence port for warehouse stock positions.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	ListByCustomer(customerID string) ([]*entity.InventoryItem, error)
	// GetByExternalRef finds the item carrying the given external product
	// reference (webhook upsert key); nil when absent.
	GetByExternalRef(customerID, externalRef string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
}
