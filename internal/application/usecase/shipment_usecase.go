package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/billing"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// ShipmentUseCase records outbound shipments and lists them with their
// billable lines already normalized. New shipments are always written in the
// current document shape; the legacy implicit shape only ever comes from
// migrated rows.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
	users     repository.UserRepository
}

// NewShipmentUseCase builds the use case.
func NewShipmentUseCase(shipments repository.ShipmentRepository, users repository.UserRepository) *ShipmentUseCase {
	return &ShipmentUseCase{shipments: shipments, users: users}
}

// Create records a shipment for an approved client.
func (uc *ShipmentUseCase) Create(in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.users.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != entity.RoleClient {
		return nil, domain.ErrUserNotFound
	}
	if customer.Status != entity.StatusApproved {
		return nil, domain.ErrNotApproved
	}

	shippedAt := time.Now()
	if in.ShippedAt != "" {
		t, err := time.Parse(time.RFC3339, in.ShippedAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		shippedAt = t
	}

	doc := entity.ShipmentDoc{
		ShippedAt:   timeval.FromTime(shippedAt),
		Destination: in.Destination,
		Remarks:     in.Remarks,
	}
	for _, item := range in.Items {
		if item.ProductName == "" || !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		doc.Items = append(doc.Items, entity.ShipmentDocItem{
			ProductName: item.ProductName,
			Quantity:    rawDecimal(item.Quantity),
			UnitPrice:   rawDecimal(item.UnitPrice),
			PackSize:    rawDecimal(item.PackSize),
		})
	}
	if in.Services != nil {
		doc.Services = entity.ServiceUsage{
			BubbleWrapFeet:        rawDecimal(in.Services.BubbleWrapFeet),
			BubbleWrapUnitPrice:   rawDecimal(in.Services.BubbleWrapUnitPrice),
			StickerRemovals:       rawDecimal(in.Services.StickerRemovals),
			StickerUnitPrice:      rawDecimal(in.Services.StickerUnitPrice),
			WarningLabels:         rawDecimal(in.Services.WarningLabels),
			WarningLabelUnitPrice: rawDecimal(in.Services.WarningLabelUnitPrice),
		}
	}

	shipment := &entity.Shipment{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		CreatedAt:  time.Now(),
		Doc:        doc,
	}
	if err := uc.shipments.Create(shipment); err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment), nil
}

// GetByID fetches one shipment; nil when absent.
func (uc *ShipmentUseCase) GetByID(id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, nil
	}
	return toShipmentResponse(shipment), nil
}

// ListByCustomer lists a customer's shipments, newest first per repository
// ordering.
func (uc *ShipmentUseCase) ListByCustomer(customerID string) ([]*dto.ShipmentResponse, error) {
	shipments, err := uc.shipments.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentResponse(s))
	}
	return out, nil
}

func toShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	resp := &dto.ShipmentResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		Destination: s.Doc.Destination,
		Remarks:     s.Doc.Remarks,
	}
	if t, ok := s.Doc.ShippedAt.Time(); ok {
		resp.ShippedAt = t.Format(time.RFC3339)
	}
	for _, line := range billing.ShipmentLines(s.Doc) {
		resp.Items = append(resp.Items, dto.ShipmentItemResponse{
			ProductName: line.Product,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			PackSize:    line.PackSize,
		})
	}
	return resp
}

// rawDecimal renders a decimal as a raw JSON number; zero values are omitted
// from the stored document.
func rawDecimal(d decimal.Decimal) json.RawMessage {
	if d.IsZero() {
		return nil
	}
	return json.RawMessage(d.String())
}
