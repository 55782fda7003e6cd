// Package migration creates the schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobtracker/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL DEFAULT '',
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id                     UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id               TEXT        NOT NULL,
  resume_details         TEXT        NOT NULL DEFAULT '',
  job_description        TEXT        NOT NULL DEFAULT '',
  company_name           TEXT        NOT NULL DEFAULT '',
  position               TEXT        NOT NULL DEFAULT '',
  generated_resume       TEXT        NOT NULL DEFAULT '',
  generated_cover_letter TEXT        NOT NULL DEFAULT '',
  status                 TEXT        NOT NULL,
  notes                  JSONB       NOT NULL DEFAULT '[]'::jsonb,
  reminders              JSONB       NOT NULL DEFAULT '[]'::jsonb,
  tags                   JSONB       NOT NULL DEFAULT '[]'::jsonb,
  timeline               JSONB       NOT NULL DEFAULT '[]'::jsonb,
  deleted                BOOLEAN     NOT NULL DEFAULT false,
  created_at             TIMESTAMPTZ NOT NULL,
  updated_at             TIMESTAMPTZ NOT NULL,
  CHECK (updated_at >= created_at)
);`,
	},
	{
		Name: "create_index_applications_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_owner_id ON applications (owner_id);`,
	},
	{
		Name: "create_index_applications_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_created_at ON applications (created_at);`,
	},
}

// EnsureMigrated runs every step when the 'applications' table does not exist yet.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logger.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(logger.String("component", "database"), logger.String("db_host", dbHost))

	log.Info("db_migration_check")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.applications') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			logger.Error(err),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			logger.String("msg", "schema already exists"),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.Info("db_migration_start", logger.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				logger.String("migration_step", step.Name),
				logger.Error(err),
				logger.Int64("duration_ms", time.Since(start).Milliseconds()),
				logger.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			logger.String("migration_step", step.Name),
			logger.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()))
	}

	log.Info("db_migration_success", logger.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
