package dto

import "github.com/shopspring/decimal"

// InventoryItemResponse a stock position.
type InventoryItemResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	DateAdded   string          `json:"date_added,omitempty"`
	InStock     bool            `json:"in_stock"`
}

// ShopifyInventoryWebhook payload of the inventory sync webhook.
type ShopifyInventoryWebhook struct {
	CustomerID  string          `json:"customer_id"`
	ExternalRef string          `json:"inventory_item_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku,omitempty"`
	Available   decimal.Decimal `json:"available"`
}
