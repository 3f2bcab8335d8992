package mocks

import (
	"context"

	"exportdocs/internal/model"
	"exportdocs/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) List(ctx context.Context, limit, offset int) (*service.InvoiceListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceListResult), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, number string) (*service.InvoiceDetail, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceService) Stats(ctx context.Context) (model.InvoiceStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.InvoiceStats), args.Error(1)
}

func (m *MockInvoiceService) Recent(ctx context.Context) ([]model.InvoiceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvoiceSummary), args.Error(1)
}
