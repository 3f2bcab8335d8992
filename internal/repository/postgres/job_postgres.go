package postgres

import (
	"context"
	"database/sql"
	"time"

	"exportdocs/internal/model"
	"exportdocs/internal/repository"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// Create inserts a new job row.
func (r *JobPostgres) Create(ctx context.Context, j *model.Job) error {
	const q = `
		INSERT INTO jobs (id, invoice_number, status, progress, error, created_at, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, q,
		j.ID,
		j.InvoiceNumber,
		string(j.Status),
		j.Progress,
		j.Error,
		j.CreatedAt,
		nullTime(j.StartedAt),
		nullTime(j.FinishedAt),
	)
	return err
}

// FindByID fetches a single job by its ID.
func (r *JobPostgres) FindByID(ctx context.Context, id string) (*model.Job, error) {
	const q = `
		SELECT id, invoice_number, status, progress, error, created_at, started_at, finished_at
		FROM jobs
		WHERE id = $1
	`
	var (
		j                 model.Job
		status            string
		started, finished sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&j.ID,
		&j.InvoiceNumber,
		&status,
		&j.Progress,
		&j.Error,
		&j.CreatedAt,
		&started,
		&finished,
	); err != nil {
		return nil, err
	}
	j.Status = model.JobStatus(status)
	j.StartedAt = timePtr(started)
	j.FinishedAt = timePtr(finished)
	return &j, nil
}

// Update returns sql.ErrNoRows when the job does not exist.
func (r *JobPostgres) Update(ctx context.Context, j *model.Job) error {
	const q = `
		UPDATE jobs
		SET invoice_number = $2, status = $3, progress = $4, error = $5, started_at = $6, finished_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		j.ID,
		j.InvoiceNumber,
		string(j.Status),
		j.Progress,
		j.Error,
		nullTime(j.StartedAt),
		nullTime(j.FinishedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
