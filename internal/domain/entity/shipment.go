package entity

import (
	"encoding/json"
	"time"

	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// Shipment is one outbound fulfillment event for a customer. The payload was
// migrated from the previous document store and keeps its original JSON shape
// in Doc; the identifier is immutable and is the sole key used to prevent
// double-billing.
type Shipment struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	Doc        ShipmentDoc
}

// ShipmentDoc is the stored document. Line items appear either as the
// explicit Items list (current shape) or as a single implicit item embedded
// at the top level (legacy shape); billing.ShipmentLines resolves both.
// Money-like fields stay raw and go through timeval.Amount.
type ShipmentDoc struct {
	ShippedAt   timeval.Instant `json:"shippedAt"`
	Destination string          `json:"destination,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`

	Items []ShipmentDocItem `json:"items,omitempty"`

	// Legacy implicit single-item fields.
	ProductName string          `json:"productName,omitempty"`
	Quantity    json.RawMessage `json:"quantity,omitempty"`
	UnitPrice   json.RawMessage `json:"unitPrice,omitempty"`
	PackSize    json.RawMessage `json:"packSize,omitempty"`

	Services ServiceUsage `json:"services,omitempty"`
}

// ShipmentDocItem is one entry of the explicit item list.
type ShipmentDocItem struct {
	ProductName string          `json:"productName"`
	Quantity    json.RawMessage `json:"quantity,omitempty"`
	UnitPrice   json.RawMessage `json:"unitPrice,omitempty"`
	PackSize    json.RawMessage `json:"packSize,omitempty"`
}

// ServiceUsage records optional additional-service consumption on a shipment.
// Unit prices are stored per shipment but treated as customer-wide at billing
// time (first non-zero price wins).
type ServiceUsage struct {
	BubbleWrapFeet        json.RawMessage `json:"bubbleWrapFeet,omitempty"`
	BubbleWrapUnitPrice   json.RawMessage `json:"bubbleWrapUnitPrice,omitempty"`
	StickerRemovals       json.RawMessage `json:"stickerRemovals,omitempty"`
	StickerUnitPrice      json.RawMessage `json:"stickerUnitPrice,omitempty"`
	WarningLabels         json.RawMessage `json:"warningLabels,omitempty"`
	WarningLabelUnitPrice json.RawMessage `json:"warningLabelUnitPrice,omitempty"`
}
