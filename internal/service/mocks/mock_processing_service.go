package mocks

import (
	"context"

	"exportdocs/internal/model"
	"exportdocs/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) Upload(ctx context.Context, in service.UploadInput) (*service.ProcessResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessResult), args.Error(1)
}

func (m *MockProcessingService) Reprocess(ctx context.Context, invoiceNumber string) (*service.ProcessResult, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessResult), args.Error(1)
}

func (m *MockProcessingService) Job(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}
