package dto

import "github.com/shopspring/decimal"

// CreateShipmentRequest body for POST /api/admin/shipments.
type CreateShipmentRequest struct {
	CustomerID  string                `json:"customer_id"`
	ShippedAt   string                `json:"shipped_at,omitempty"` // RFC3339, defaults to now
	Destination string                `json:"destination,omitempty"`
	Remarks     string                `json:"remarks,omitempty"`
	Items       []ShipmentItemRequest `json:"items"`
	Services    *ServiceUsageRequest  `json:"services,omitempty"`
}

// ShipmentItemRequest one line of a new shipment.
type ShipmentItemRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PackSize    decimal.Decimal `json:"pack_size,omitempty"`
}

// ServiceUsageRequest additional-service usage on a new shipment.
type ServiceUsageRequest struct {
	BubbleWrapFeet        decimal.Decimal `json:"bubble_wrap_feet,omitempty"`
	BubbleWrapUnitPrice   decimal.Decimal `json:"bubble_wrap_unit_price,omitempty"`
	StickerRemovals       decimal.Decimal `json:"sticker_removals,omitempty"`
	StickerUnitPrice      decimal.Decimal `json:"sticker_unit_price,omitempty"`
	WarningLabels         decimal.Decimal `json:"warning_labels,omitempty"`
	WarningLabelUnitPrice decimal.Decimal `json:"warning_label_unit_price,omitempty"`
}

// ShipmentResponse a shipment with normalized lines.
type ShipmentResponse struct {
	ID          string                 `json:"id"`
	CustomerID  string                 `json:"customer_id"`
	ShippedAt   string                 `json:"shipped_at,omitempty"`
	Destination string                 `json:"destination,omitempty"`
	Remarks     string                 `json:"remarks,omitempty"`
	Items       []ShipmentItemResponse `json:"items"`
}

// ShipmentItemResponse one normalized line of a shipment.
type ShipmentItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PackSize    decimal.Decimal `json:"pack_size,omitempty"`
}
