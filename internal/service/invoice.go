package service

import (
	"context"
	"fmt"
	"strings"

	"exportdocs/internal/extract"
	"exportdocs/internal/model"
	"exportdocs/internal/repository"
)

// RecentActivityLimit is how many invoices the dashboard shows.
const RecentActivityLimit = 10

// InvoiceListResult is the service-level DTO for paginated invoices.
type InvoiceListResult struct {
	Items []model.InvoiceSummary `json:"data"`
	Total int                    `json:"total"`
}

// InvoiceDetail is an invoice with the required fields it still lacks.
type InvoiceDetail struct {
	model.Invoice
	Missing []string `json:"missing_fields"`
}

// InvoiceService is the read side of stored invoices.
type InvoiceService interface {
	List(ctx context.Context, limit, offset int) (*InvoiceListResult, error)
	Get(ctx context.Context, number string) (*InvoiceDetail, error)
	Stats(ctx context.Context) (model.InvoiceStats, error)
	// Recent returns the most recently updated invoices.
	Recent(ctx context.Context) ([]model.InvoiceSummary, error)
}

type invoiceService struct {
	repo     repository.InvoiceRepository
	required []string
}

func NewInvoiceService(repo repository.InvoiceRepository, required []string) InvoiceService {
	return &invoiceService{repo: repo, required: required}
}

func (s *invoiceService) List(ctx context.Context, limit, offset int) (*InvoiceListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Items: summaries(res.Items), Total: res.Total}, nil
}

func (s *invoiceService) Get(ctx context.Context, number string) (*InvoiceDetail, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: invoice number is required", ErrInvalidInput)
	}
	inv, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, notFound(err, "invoice "+number)
	}
	return &InvoiceDetail{Invoice: *inv, Missing: extract.Missing(inv.Fields, s.required)}, nil
}

func (s *invoiceService) Stats(ctx context.Context) (model.InvoiceStats, error) {
	return s.repo.Stats(ctx)
}

func (s *invoiceService) Recent(ctx context.Context) ([]model.InvoiceSummary, error) {
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: RecentActivityLimit})
	if err != nil {
		return nil, err
	}
	return summaries(res.Items), nil
}

func summaries(items []model.Invoice) []model.InvoiceSummary {
	out := make([]model.InvoiceSummary, 0, len(items))
	for i := range items {
		out = append(out, items[i].Summary())
	}
	return out
}
