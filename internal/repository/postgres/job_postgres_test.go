package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"exportdocs/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	now := time.Now().UTC()
	job := model.NewJob("job-1", now)
	job.InvoiceNumber = "INV-1"

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs("job-1", "INV-1", "pending", 0.0, "", now, sql.NullTime{}, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), job))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	ctx := context.Background()
	cols := []string{"id", "invoice_number", "status", "progress", "error", "created_at", "started_at", "finished_at"}
	now := time.Now().UTC()

	t.Run("failed job", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id = ?").
			WithArgs("job-1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("job-1", "INV-1", "failed", 0.1, "pdf is encrypted", now, now, now))

		job, err := repo.FindByID(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, model.JobFailed, job.Status)
		assert.Equal(t, "pdf is encrypted", job.Error)
		require.NotNil(t, job.FinishedAt)
		assert.True(t, job.Status.IsTerminal())
	})

	t.Run("pending job has no timestamps", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id = ?").
			WithArgs("job-2").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("job-2", "", "pending", 0.0, "", now, nil, nil))

		job, err := repo.FindByID(ctx, "job-2")
		require.NoError(t, err)
		assert.Nil(t, job.StartedAt)
		assert.Nil(t, job.FinishedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestJobPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	now := time.Now().UTC()
	job := model.NewJob("job-1", now)
	require.NoError(t, job.Advance(model.JobRunning, "", now))

	mock.ExpectExec("UPDATE jobs SET").
		WithArgs("job-1", "", "running", 0.1, "", sql.NullTime{Time: now, Valid: true}, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(context.Background(), job))

	mock.ExpectExec("UPDATE jobs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &model.Job{ID: "missing"}), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
