package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

const createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_invoices",
		SQL: `CREATE TABLE IF NOT EXISTS invoices (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  invoice_number     TEXT        NOT NULL UNIQUE,
  status             TEXT        NOT NULL CHECK (status IN ('uploaded', 'processing', 'completed', 'failed')),
  fields             JSONB       NOT NULL DEFAULT '{}'::jsonb,
  pl_object_key      TEXT        NOT NULL DEFAULT '',
  booking_object_key TEXT        NOT NULL DEFAULT '',
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_invoices_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoices_updated_at ON invoices (updated_at);`,
	},
	{
		Name: "create_index_invoices_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status);`,
	},
	{
		Name: "create_table_templates",
		SQL: `CREATE TABLE IF NOT EXISTS templates (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL UNIQUE,
  description  TEXT        NOT NULL DEFAULT '',
  object_key   TEXT        NOT NULL UNIQUE,
  sheets       JSONB       NOT NULL DEFAULT '[]'::jsonb,
  placeholders JSONB       NOT NULL DEFAULT '[]'::jsonb,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
  id             UUID             PRIMARY KEY,
  invoice_number TEXT             NOT NULL DEFAULT '',
  status         TEXT             NOT NULL CHECK (status IN ('pending', 'running', 'done', 'failed')),
  progress       DOUBLE PRECISION NOT NULL DEFAULT 0,
  error          TEXT             NOT NULL DEFAULT '',
  created_at     TIMESTAMPTZ      NOT NULL DEFAULT now(),
  started_at     TIMESTAMPTZ,
  finished_at    TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_jobs_invoice_number",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_invoice_number ON jobs (invoice_number);`,
	},
}

// EnsureMigrated applies every step not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its ledger row, so a
// failed step is retried on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)
	log.Info("db_migration_check", "status", "starting")

	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		log.Error("db_migration_failed", "status", "error",
			"error_message", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("failed to create migration ledger: %w", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		log.Error("db_migration_failed", "status", "error",
			"error_message", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return err
	}

	ran := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		stepStart := time.Now()
		if err := apply(ctx, db, step); err != nil {
			log.Error("db_migration_failed", "status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds())
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		ran++
		log.Info("db_migration_step", "status", "success",
			"migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	if ran == 0 {
		log.Info("db_migration_skip", "status", "success",
			"msg", "schema up to date", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}
	log.Info("db_migration_success", "status", "success",
		"steps", ran, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration ledger: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to read migration ledger: %w", err)
		}
		out[name] = true
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", step.Name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
