package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, customer_id, number, type, order_ref, issue_date, storage_month,
	bill_to_name, bill_to_email, bill_to_phone, bill_to_address,
	subtotal, services_total, grand_total, status, auto_generated, generated_by, created_at`

// InvoiceRepo implements InvoiceRepository over PostgreSQL (usable with pool
// or tx). Create writes the header and all lines in one transaction.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the persistence adapter for invoices.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice atomically: header plus every line, or
// nothing. A duplicate invoice number maps to ErrDuplicate.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.ID, invoice.CustomerID, invoice.Number, invoice.Type,
		nullIfEmpty(invoice.OrderRef), invoice.IssueDate, nullIfEmpty(invoice.StorageMonth),
		invoice.BillTo.Name, nullIfEmpty(invoice.BillTo.Email),
		nullIfEmpty(invoice.BillTo.Phone), nullIfEmpty(invoice.BillTo.Address),
		invoice.Subtotal, invoice.ServicesTotal, invoice.GrandTotal,
		invoice.Status, invoice.AutoGenerated, nullIfEmpty(invoice.GeneratedBy),
		invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (id, invoice_id, shipment_id, product, sku, quantity, unit_price, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, line := range invoice.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			line.ID, invoice.ID, nullIfEmpty(line.ShipmentID),
			line.Product, nullIfEmpty(line.SKU),
			line.Quantity, line.UnitPrice, line.Amount, line.Position,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit invoice: %w", err)
	}
	return nil
}

// GetByID fetches one invoice with its lines; nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	lines, err := r.linesFor(id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

// ListByCustomer returns the customer's invoices with lines, newest first.
func (r *InvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	byID := make(map[string]*entity.Invoice)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
		byID[inv.ID] = inv
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	lineQuery := `
		SELECT l.id, l.invoice_id, l.shipment_id, l.product, l.sku, l.quantity, l.unit_price, l.amount, l.position
		FROM invoice_lines l
		JOIN invoices i ON i.id = l.invoice_id
		WHERE i.customer_id = $1
		ORDER BY l.invoice_id, l.position`
	lineRows, err := r.q.Query(ctx, lineQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		line, err := scanInvoiceLine(lineRows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if inv, ok := byID[line.InvoiceID]; ok {
			inv.Lines = append(inv.Lines, line)
		}
	}
	return list, lineRows.Err()
}

// MarkPaid transitions pending -> paid. Anything else is a conflict, or
// not-found when the invoice does not exist.
func (r *InvoiceRepo) MarkPaid(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = 'paid' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check invoice: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *InvoiceRepo) linesFor(invoiceID string) ([]*entity.InvoiceLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, invoice_id, shipment_id, product, sku, quantity, unit_price, amount, position
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		line, err := scanInvoiceLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var orderRef, storageMonth, billEmail, billPhone, billAddress, generatedBy *string
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.Number, &inv.Type,
		&orderRef, &inv.IssueDate, &storageMonth,
		&inv.BillTo.Name, &billEmail, &billPhone, &billAddress,
		&inv.Subtotal, &inv.ServicesTotal, &inv.GrandTotal,
		&inv.Status, &inv.AutoGenerated, &generatedBy,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.OrderRef = deref(orderRef)
	inv.StorageMonth = deref(storageMonth)
	inv.BillTo.Email = deref(billEmail)
	inv.BillTo.Phone = deref(billPhone)
	inv.BillTo.Address = deref(billAddress)
	inv.GeneratedBy = deref(generatedBy)
	return &inv, nil
}

func scanInvoiceLine(row pgx.Row) (*entity.InvoiceLine, error) {
	var line entity.InvoiceLine
	var shipmentID, sku *string
	err := row.Scan(
		&line.ID, &line.InvoiceID, &shipmentID, &line.Product, &sku,
		&line.Quantity, &line.UnitPrice, &line.Amount, &line.Position,
	)
	if err != nil {
		return nil, err
	}
	line.ShipmentID = deref(shipmentID)
	line.SKU = deref(sku)
	return &line, nil
}
