package postgres

import (
	"context"
	"fmt"

	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

var _ repository.StoragePricingRepository = (*StoragePricingRepo)(nil)

// StoragePricingRepo implements StoragePricingRepository over PostgreSQL.
// Records are append-only; pricing history is never rewritten.
type StoragePricingRepo struct {
	q Querier
}

// NewStoragePricingRepository builds the persistence adapter for pricing.
func NewStoragePricingRepository(q Querier) *StoragePricingRepo {
	return &StoragePricingRepo{q: q}
}

// Create persists a pricing record.
func (r *StoragePricingRepo) Create(pricing *entity.StoragePricing) error {
	query := `
		INSERT INTO storage_pricing (id, customer_id, mode, price_per_item, price_per_pallet, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pricing.ID, pricing.CustomerID, pricing.Mode,
		pricing.PricePerItem, pricing.PricePerPallet,
		pricing.CreatedAt, pricing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage pricing: %w", err)
	}
	return nil
}

// ListByCustomer lists a customer's pricing records.
func (r *StoragePricingRepo) ListByCustomer(customerID string) ([]*entity.StoragePricing, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, customer_id, mode, price_per_item, price_per_pallet, created_at, updated_at
		FROM storage_pricing WHERE customer_id = $1 ORDER BY created_at`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list storage pricing: %w", err)
	}
	defer rows.Close()

	var list []*entity.StoragePricing
	for rows.Next() {
		var p entity.StoragePricing
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.Mode, &p.PricePerItem, &p.PricePerPallet,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan storage pricing: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
