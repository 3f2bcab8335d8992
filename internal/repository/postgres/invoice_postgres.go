package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"exportdocs/internal/model"
	"exportdocs/internal/repository"
)

// InvoicePostgres is a PostgreSQL implementation of repository.InvoiceRepository.
// Field records are stored as JSONB.
type InvoicePostgres struct {
	db *sql.DB
}

// NewInvoicePostgres creates a new InvoicePostgres repository.
func NewInvoicePostgres(db *sql.DB) *InvoicePostgres {
	return &InvoicePostgres{db: db}
}

var _ repository.InvoiceRepository = (*InvoicePostgres)(nil)

const invoiceColumns = `id, invoice_number, status, fields, pl_object_key, booking_object_key, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s rowScanner) (*model.Invoice, error) {
	var (
		inv    model.Invoice
		status string
		fields []byte
	)
	if err := s.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&status,
		&fields,
		&inv.PLObjectKey,
		&inv.BookingObjectKey,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.Status = model.InvoiceStatus(status)
	inv.Fields = model.FieldRecord{}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &inv.Fields); err != nil {
			return nil, fmt.Errorf("decode fields of invoice %s: %w", inv.InvoiceNumber, err)
		}
	}
	return &inv, nil
}

// Save upserts on invoice_number. The original id and created_at survive an overwrite.
func (r *InvoicePostgres) Save(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	const q = `
		INSERT INTO invoices (id, invoice_number, status, fields, pl_object_key, booking_object_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8)
		ON CONFLICT (invoice_number) DO UPDATE SET
			status             = EXCLUDED.status,
			fields             = EXCLUDED.fields,
			pl_object_key      = COALESCE(NULLIF(EXCLUDED.pl_object_key, ''), invoices.pl_object_key),
			booking_object_key = COALESCE(NULLIF(EXCLUDED.booking_object_key, ''), invoices.booking_object_key),
			updated_at         = EXCLUDED.updated_at
		RETURNING ` + invoiceColumns

	fields := inv.Fields
	if fields == nil {
		fields = model.FieldRecord{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q,
		inv.ID,
		inv.InvoiceNumber,
		string(inv.Status),
		string(raw),
		inv.PLObjectKey,
		inv.BookingObjectKey,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	return scanInvoice(row)
}

// FindByNumber fetches a single invoice by its invoice number.
func (r *InvoicePostgres) FindByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = $1`
	return scanInvoice(r.db.QueryRowContext(ctx, q, number))
}

// List returns invoices using LIMIT/OFFSET pagination and a total count.
func (r *InvoicePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Invoice], error) {
	const qCount = `SELECT COUNT(*) FROM invoices`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY updated_at DESC, invoice_number ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Invoice]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateStatus returns sql.ErrNoRows when the invoice does not exist.
func (r *InvoicePostgres) UpdateStatus(ctx context.Context, number string, status model.InvoiceStatus) error {
	const q = `UPDATE invoices SET status = $2, updated_at = $3 WHERE invoice_number = $1`
	res, err := r.db.ExecContext(ctx, q, number, string(status), time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats counts invoices per status in a single scan. "uploaded" counts as pending.
func (r *InvoicePostgres) Stats(ctx context.Context) (model.InvoiceStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'uploaded'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM invoices`
	var s model.InvoiceStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.Completed, &s.Pending, &s.Processing, &s.Failed)
	return s, err
}
