package mocks

import (
	"context"
	"io"

	"exportdocs/internal/model"
	"exportdocs/internal/service"
	"exportdocs/internal/storage"
	"exportdocs/internal/xlsxfill"
	"github.com/stretchr/testify/mock"
)

type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Upload(ctx context.Context, in service.TemplateUpload) (*service.TemplateUploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TemplateUploadResult), args.Error(1)
}

func (m *MockTemplateService) List(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *MockTemplateService) Get(ctx context.Context, name string) (*model.Template, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) Placeholders(ctx context.Context, name string) (*xlsxfill.Info, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xlsxfill.Info), args.Error(1)
}

func (m *MockTemplateService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTemplateService) Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockTemplateService) BatchGenerate(ctx context.Context, in service.BatchInput) (*service.BatchGenerateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchGenerateResult), args.Error(1)
}

func (m *MockTemplateService) PreviewFill(ctx context.Context, in service.PreviewInput) (*xlsxfill.PreviewResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xlsxfill.PreviewResult), args.Error(1)
}

func (m *MockTemplateService) AppendDataRow(ctx context.Context, in service.DataRowInput) (*service.DataRowResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DataRowResult), args.Error(1)
}

func (m *MockTemplateService) Sample(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockTemplateService) Output(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
