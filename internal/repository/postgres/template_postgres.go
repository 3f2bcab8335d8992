package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"exportdocs/internal/model"
	"exportdocs/internal/repository"
)

// TemplatePostgres is a PostgreSQL implementation of repository.TemplateRepository.
type TemplatePostgres struct {
	db *sql.DB
}

// NewTemplatePostgres creates a new TemplatePostgres repository.
func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

const templateColumns = `id, name, description, object_key, sheets, placeholders, size, created_at`

func scanTemplate(s rowScanner) (*model.Template, error) {
	var (
		t                    model.Template
		sheets, placeholders []byte
	)
	if err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.ObjectKey,
		&sheets,
		&placeholders,
		&t.Size,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.Sheets = make([]string, 0)
	t.Placeholders = make([]string, 0)
	if len(sheets) > 0 {
		if err := json.Unmarshal(sheets, &t.Sheets); err != nil {
			return nil, fmt.Errorf("decode sheets of template %s: %w", t.Name, err)
		}
	}
	if len(placeholders) > 0 {
		if err := json.Unmarshal(placeholders, &t.Placeholders); err != nil {
			return nil, fmt.Errorf("decode placeholders of template %s: %w", t.Name, err)
		}
	}
	return &t, nil
}

func jsonList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// Create inserts a new template row and returns the stored record.
func (r *TemplatePostgres) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	const q = `
		INSERT INTO templates (id, name, description, object_key, sheets, placeholders, size, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8)
		RETURNING ` + templateColumns

	sheets, err := jsonList(t.Sheets)
	if err != nil {
		return nil, err
	}
	placeholders, err := jsonList(t.Placeholders)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, q,
		t.ID,
		t.Name,
		t.Description,
		t.ObjectKey,
		sheets,
		placeholders,
		t.Size,
		t.CreatedAt,
	)
	return scanTemplate(row)
}

// FindByName fetches a single template by name.
func (r *TemplatePostgres) FindByName(ctx context.Context, name string) (*model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates WHERE name = $1`
	return scanTemplate(r.db.QueryRowContext(ctx, q, name))
}

// List returns all templates ordered by name.
func (r *TemplatePostgres) List(ctx context.Context) ([]model.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Delete removes a template by name. It does not return an error if the row does not exist.
func (r *TemplatePostgres) Delete(ctx context.Context, name string) error {
	const q = `DELETE FROM templates WHERE name = $1`
	_, err := r.db.ExecContext(ctx, q, name)
	return err
}
