package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository over PostgreSQL. Stock
// positions keep their migrated JSONB document shape like shipments do.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the persistence adapter for stock positions.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persists a stock position.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	doc, err := json.Marshal(item.Doc)
	if err != nil {
		return fmt.Errorf("marshal inventory doc: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO inventory_items (id, customer_id, doc) VALUES ($1, $2, $3)`,
		item.ID, item.CustomerID, doc,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// ListByCustomer lists a customer's stock positions.
func (r *InventoryRepo) ListByCustomer(customerID string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, customer_id, doc FROM inventory_items WHERE customer_id = $1 ORDER BY id`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetByExternalRef finds the position carrying the external product
// reference; nil when absent.
func (r *InventoryRepo) GetByExternalRef(customerID, externalRef string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT id, customer_id, doc FROM inventory_items
		 WHERE customer_id = $1 AND doc->>'externalRef' = $2 LIMIT 1`,
		customerID, externalRef)
	item, err := scanInventoryItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by external ref: %w", err)
	}
	return item, nil
}

// Update rewrites a position's document.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	doc, err := json.Marshal(item.Doc)
	if err != nil {
		return fmt.Errorf("marshal inventory doc: %w", err)
	}
	tag, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET doc = $2 WHERE id = $1`, item.ID, doc)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	var doc []byte
	if err := row.Scan(&item.ID, &item.CustomerID, &doc); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(doc, &item.Doc)
	return &item, nil
}
