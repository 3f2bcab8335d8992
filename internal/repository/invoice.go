package repository

import (
	"context"

	"exportdocs/internal/model"
)

// InvoiceRepository defines data access for invoices, keyed by invoice number.
// Persistence only.
type InvoiceRepository interface {
	// Save inserts the invoice or overwrites the one with the same invoice
	// number (last write wins). Empty object keys keep the stored ones.
	Save(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)

	// FindByNumber returns an invoice by its invoice number.
	FindByNumber(ctx context.Context, number string) (*model.Invoice, error)

	// List returns invoices, most recently updated first, and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Invoice], error)

	// UpdateStatus changes the status of an existing invoice.
	UpdateStatus(ctx context.Context, number string, status model.InvoiceStatus) error

	// Stats counts invoices per status.
	Stats(ctx context.Context) (model.InvoiceStats, error)
}
