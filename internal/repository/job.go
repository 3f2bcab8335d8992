package repository

import (
	"context"

	"exportdocs/internal/model"
)

// JobRepository persists job status so it can be polled.
type JobRepository interface {
	Create(ctx context.Context, j *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	// Update writes status, progress, error and timestamps of an existing job.
	Update(ctx context.Context, j *model.Job) error
}
