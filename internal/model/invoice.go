package model

import "time"

// InvoiceStatus tracks where an invoice is in the upload/extract lifecycle.
type InvoiceStatus string

const (
	InvoiceUploaded   InvoiceStatus = "uploaded"
	InvoiceProcessing InvoiceStatus = "processing"
	InvoiceCompleted  InvoiceStatus = "completed"
	InvoiceFailed     InvoiceStatus = "failed"
)

// Invoice is keyed by its invoice number and owns one FieldRecord.
// Saving an existing invoice number overwrites the previous record.
type Invoice struct {
	ID               string        `json:"id"`
	InvoiceNumber    string        `json:"invoice_number"`
	Status           InvoiceStatus `json:"status"`
	Fields           FieldRecord   `json:"fields"`
	PLObjectKey      string        `json:"pl_object_key,omitempty"`
	BookingObjectKey string        `json:"booking_object_key,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// InvoiceSummary is the list view of an invoice.
type InvoiceSummary struct {
	InvoiceNumber string        `json:"invoice_number"`
	Status        InvoiceStatus `json:"status"`
	PO            string        `json:"po,omitempty"`
	Dest          string        `json:"dest,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Summary projects the invoice onto its list view.
func (i *Invoice) Summary() InvoiceSummary {
	return InvoiceSummary{
		InvoiceNumber: i.InvoiceNumber,
		Status:        i.Status,
		PO:            i.Fields[FieldPO],
		Dest:          i.Fields[FieldDest],
		UpdatedAt:     i.UpdatedAt,
	}
}

// InvoiceStats are the dashboard counters.
type InvoiceStats struct {
	Total      int `json:"total_invoices"`
	Completed  int `json:"processed"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Failed     int `json:"errors"`
}
