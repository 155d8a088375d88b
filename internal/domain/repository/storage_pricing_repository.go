package repository

import "github.com/wareline/warehouse-api/internal/domain/entity"

// StoragePricingRepository is the persistence port for storage price records.
// History is kept; consumers pick the most recently updated record.
type StoragePricingRepository interface {
	Create(pricing *entity.StoragePricing) error
	ListByCustomer(customerID string) ([]*entity.StoragePricing, error)
}
