package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
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
		Name: "create_table_candidates",
		SQL: `CREATE TABLE IF NOT EXISTS candidates (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                TEXT        NOT NULL,
  email               TEXT        NOT NULL UNIQUE,
  phone               TEXT        NOT NULL UNIQUE,
  password_hash       TEXT        NOT NULL,
  title               TEXT        NOT NULL DEFAULT '',
  gender              TEXT        NOT NULL DEFAULT '',
  date_of_birth       DATE,
  industry            TEXT        NOT NULL DEFAULT '',
  skills              JSONB       NOT NULL DEFAULT '[]',
  preferred_locations JSONB       NOT NULL DEFAULT '[]',
  education           JSONB       NOT NULL DEFAULT '[]',
  experience          JSONB       NOT NULL DEFAULT '[]',
  job_type            TEXT        NOT NULL DEFAULT '',
  expected_salary     BIGINT      NOT NULL DEFAULT 0,
  experience_years    DOUBLE PRECISION NOT NULL DEFAULT 0,
  degree              TEXT        NOT NULL DEFAULT '',
  auto_apply          BOOLEAN     NOT NULL DEFAULT FALSE,
  resume_url          TEXT        NOT NULL DEFAULT '',
  photo_url           TEXT        NOT NULL DEFAULT '',
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_employers",
		SQL: `CREATE TABLE IF NOT EXISTS employers (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  company_name        TEXT        NOT NULL,
  contact_name        TEXT        NOT NULL DEFAULT '',
  email               TEXT        NOT NULL UNIQUE,
  phone               TEXT        NOT NULL UNIQUE,
  password_hash       TEXT        NOT NULL,
  industry            TEXT        NOT NULL DEFAULT '',
  location            TEXT        NOT NULL DEFAULT '',
  plan                TEXT        NOT NULL DEFAULT 'Free',
  subscription_status TEXT        NOT NULL DEFAULT 'Expired',
  plan_start          TIMESTAMPTZ,
  plan_end            TIMESTAMPTZ,
  allowed_resume      INT         NOT NULL DEFAULT 0 CHECK (allowed_resume >= 0),
  viewed_resume       INT         NOT NULL DEFAULT 0,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  employer_id    UUID        NOT NULL REFERENCES employers(id),
  title          TEXT        NOT NULL,
  slug           TEXT        NOT NULL UNIQUE,
  description    TEXT        NOT NULL DEFAULT '',
  skills         JSONB       NOT NULL DEFAULT '[]',
  degree         TEXT        NOT NULL DEFAULT '',
  job_type       TEXT        NOT NULL DEFAULT '',
  location       TEXT        NOT NULL DEFAULT '',
  salary_min     BIGINT      NOT NULL DEFAULT 0,
  salary_max     BIGINT      NOT NULL DEFAULT 0,
  experience_min DOUBLE PRECISION NOT NULL DEFAULT 0,
  experience_max DOUBLE PRECISION NOT NULL DEFAULT 0,
  questions      JSONB       NOT NULL DEFAULT '[]',
  deadline       TIMESTAMPTZ,
  status         TEXT        NOT NULL DEFAULT 'open',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  job_id       UUID        NOT NULL REFERENCES jobs(id),
  candidate_id UUID        NOT NULL REFERENCES candidates(id),
  employer_id  UUID        NOT NULL REFERENCES employers(id),
  answers      JSONB       NOT NULL DEFAULT '[]',
  status       TEXT        NOT NULL DEFAULT 'pending',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (job_id, candidate_id)
);`,
	},
	{
		Name: "create_table_candidate_status",
		SQL: `CREATE TABLE IF NOT EXISTS candidate_status (
  candidate_id UUID        NOT NULL REFERENCES candidates(id),
  recruiter_id UUID        NOT NULL REFERENCES employers(id),
  status       TEXT        NOT NULL,
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (candidate_id, recruiter_id)
);`,
	},
	{
		Name: "create_table_resume_views",
		SQL: `CREATE TABLE IF NOT EXISTS resume_views (
  employer_id  UUID        NOT NULL REFERENCES employers(id),
  candidate_id UUID        NOT NULL REFERENCES candidates(id),
  viewed_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (employer_id, candidate_id)
);`,
	},
	{
		Name: "create_table_saved_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS saved_jobs (
  candidate_id UUID        NOT NULL REFERENCES candidates(id),
  job_id       UUID        NOT NULL REFERENCES jobs(id),
  saved_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (candidate_id, job_id)
);`,
	},
	{
		Name: "create_table_lookups",
		SQL: `CREATE TABLE IF NOT EXISTS lookups (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  kind       TEXT        NOT NULL,
  value      TEXT        NOT NULL,
  label      TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (kind, value)
);`,
	},
	{
		Name: "create_table_seo",
		SQL: `CREATE TABLE IF NOT EXISTS seo (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  page        TEXT        NOT NULL UNIQUE,
  title       TEXT        NOT NULL DEFAULT '',
  description TEXT        NOT NULL DEFAULT '',
  keywords    TEXT        NOT NULL DEFAULT '',
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_pages",
		SQL: `CREATE TABLE IF NOT EXISTS pages (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  slug       TEXT        NOT NULL UNIQUE,
  title      TEXT        NOT NULL,
  body       TEXT        NOT NULL DEFAULT '',
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_blogs",
		SQL: `CREATE TABLE IF NOT EXISTS blogs (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  slug       TEXT        NOT NULL UNIQUE,
  title      TEXT        NOT NULL,
  body       TEXT        NOT NULL DEFAULT '',
  author     TEXT        NOT NULL DEFAULT '',
  image_url  TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_contacts",
		SQL: `CREATE TABLE IF NOT EXISTS contacts (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL,
  subject    TEXT        NOT NULL DEFAULT '',
  message    TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_oauth_tokens",
		SQL: `CREATE TABLE IF NOT EXISTS oauth_tokens (
  provider      TEXT        PRIMARY KEY,
  access_token  TEXT        NOT NULL,
  refresh_token TEXT        NOT NULL DEFAULT '',
  token_type    TEXT        NOT NULL DEFAULT 'Bearer',
  expiry        TIMESTAMPTZ,
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_candidates_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_updated_at ON candidates (updated_at);`,
	},
	{
		Name: "create_index_candidates_skills",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_skills ON candidates USING GIN (skills);`,
	},
	{
		Name: "create_index_jobs_employer",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs (employer_id);`,
	},
	{
		Name: "create_index_jobs_status_deadline",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_status_deadline ON jobs (status, deadline);`,
	},
	{
		Name: "create_index_applications_candidate",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id);`,
	},
	{
		Name: "create_index_applications_employer",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_employer ON applications (employer_id);`,
	},
	{
		Name: "create_index_employers_plan_end",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_employers_plan_end ON employers (plan_end);`,
	},
	{
		Name: "create_index_lookups_kind",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lookups_kind ON lookups (kind);`,
	},
}

// EnsureMigrated checks if the 'candidates' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.candidates') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		return fmt.Errorf("migration existence check failed: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skipped",
			"status":      "success",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
