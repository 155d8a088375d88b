package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implements ShipmentRepository over PostgreSQL. The shipment
// payload is stored as JSONB in its migrated document shape; decoding is
// tolerant so one corrupt row never poisons a billing run.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the persistence adapter for shipments.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persists a shipment.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	doc, err := json.Marshal(shipment.Doc)
	if err != nil {
		return fmt.Errorf("marshal shipment doc: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO shipments (id, customer_id, doc, created_at) VALUES ($1, $2, $3, $4)`,
		shipment.ID, shipment.CustomerID, doc, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID fetches one shipment; nil when absent.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT id, customer_id, doc, created_at FROM shipments WHERE id = $1`, id)
	s, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

// ListByCustomer lists a customer's shipments, oldest first so invoice lines
// keep shipment order.
func (r *ShipmentRepo) ListByCustomer(customerID string) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, customer_id, doc, created_at FROM shipments WHERE customer_id = $1 ORDER BY created_at`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	var doc []byte
	if err := row.Scan(&s.ID, &s.CustomerID, &doc, &s.CreatedAt); err != nil {
		return nil, err
	}
	// A malformed document decodes to the zero doc and simply yields no
	// billable lines.
	_ = json.Unmarshal(doc, &s.Doc)
	return &s, nil
}
