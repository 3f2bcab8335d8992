package repository

import (
	"context"

	"exportdocs/internal/model"
)

// TemplateRepository stores template metadata; the workbook itself lives in object storage.
type TemplateRepository interface {
	Create(ctx context.Context, t *model.Template) (*model.Template, error)
	FindByName(ctx context.Context, name string) (*model.Template, error)
	// List returns every template ordered by name.
	List(ctx context.Context) ([]model.Template, error)
	// Delete removes a template by name. It returns nil if the row did not exist.
	Delete(ctx context.Context, name string) error
}
