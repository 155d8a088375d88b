package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoragePricing is the price record backing a customer's storage invoice.
// Multiple historical records may exist; the most recently updated one is
// authoritative (created-at breaks ties).
type StoragePricing struct {
	ID             string
	CustomerID     string
	Mode           string // StorageModeProduct | StorageModePallet
	PricePerItem   decimal.Decimal
	PricePerPallet decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveAt returns the timestamp used to pick the authoritative record.
func (p StoragePricing) EffectiveAt() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}
