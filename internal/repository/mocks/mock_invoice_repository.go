package mocks

import (
	"context"

	"exportdocs/internal/model"
	"exportdocs/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Invoice], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, number string, status model.InvoiceStatus) error {
	args := m.Called(ctx, number, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Stats(ctx context.Context) (model.InvoiceStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.InvoiceStats), args.Error(1)
}
