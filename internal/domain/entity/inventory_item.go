package entity

import (
	"encoding/json"

	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// InventoryItem is one product position in a customer's warehouse stock.
// Like shipments, the payload keeps its migrated JSON shape in Doc.
type InventoryItem struct {
	ID         string
	CustomerID string
	Doc        InventoryDoc
}

// InventoryDoc is the stored document. DateAdded drives the storage fee's
// first-month-free rule; ExternalRef keys webhook upserts.
type InventoryDoc struct {
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku,omitempty"`
	ExternalRef string          `json:"externalRef,omitempty"`
	Quantity    json.RawMessage `json:"quantity,omitempty"`
	DateAdded   timeval.Instant `json:"dateAdded"`
	InStock     *bool           `json:"inStock,omitempty"` // absent means in stock
}

// IsInStock treats a missing flag as in stock (legacy documents omit it).
func (d InventoryDoc) IsInStock() bool {
	return d.InStock == nil || *d.InStock
}
