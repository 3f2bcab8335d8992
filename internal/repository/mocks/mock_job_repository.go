package mocks

import (
	"context"

	"exportdocs/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, j *model.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, j *model.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}
