package repository

import "github.com/wareline/warehouse-api/internal/domain/entity"

// ShipmentRepository is the persistence port for shipments. Shipments are
// append-only from billing's point of view: created once, read many times.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	ListByCustomer(customerID string) ([]*entity.Shipment, error)
}
