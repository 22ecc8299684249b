package postgresql_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

const testSchema = "timeclock_repo_test"

const schemaDDL = `
CREATE TABLE profiles (
	user_id          TEXT PRIMARY KEY,
	organization_id  TEXT NOT NULL,
	full_name        TEXT NOT NULL,
	email            TEXT,
	hire_date        DATE,
	work_schedule_id TEXT,
	is_admin         BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE work_schedules (
	id              TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	name            TEXT NOT NULL,
	start_time      TIME NOT NULL,
	end_time        TIME NOT NULL,
	break_start     TIME,
	break_end       TIME,
	sunday_hours    NUMERIC(4,2) NOT NULL DEFAULT 0,
	monday_hours    NUMERIC(4,2) NOT NULL DEFAULT 0,
	tuesday_hours   NUMERIC(4,2) NOT NULL DEFAULT 0,
	wednesday_hours NUMERIC(4,2) NOT NULL DEFAULT 0,
	thursday_hours  NUMERIC(4,2) NOT NULL DEFAULT 0,
	friday_hours    NUMERIC(4,2) NOT NULL DEFAULT 0,
	saturday_hours  NUMERIC(4,2) NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at      TIMESTAMPTZ
);

CREATE TABLE schedule_adjustments (
	id                   TEXT PRIMARY KEY,
	user_id              TEXT NOT NULL,
	organization_id      TEXT NOT NULL,
	start_date           DATE NOT NULL,
	end_date             DATE NOT NULL,
	custom_start_time    TIME,
	custom_end_time      TIME,
	overtime_authorized  BOOLEAN NOT NULL DEFAULT FALSE,
	overtime_max_minutes INT,
	reason               TEXT,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE flexibility_settings (
	organization_id   TEXT PRIMARY KEY,
	mode              TEXT NOT NULL,
	tolerance_minutes INT,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE overtime_authorizations (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	valid_from  DATE NOT NULL,
	valid_until DATE,
	revoked_at  TIMESTAMPTZ
);

CREATE TABLE punch_events (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	organization_id TEXT NOT NULL,
	type            TEXT NOT NULL,
	timestamp       TIMESTAMPTZ NOT NULL,
	latitude        DOUBLE PRECISION,
	longitude       DOUBLE PRECISION,
	distance_meters DOUBLE PRECISION,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE vacations (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date   DATE NOT NULL,
	status     TEXT NOT NULL,
	notes      TEXT
);

CREATE TABLE absences (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date   DATE NOT NULL,
	type       TEXT NOT NULL,
	notes      TEXT
);

CREATE TABLE holidays (
	id              TEXT PRIMARY KEY,
	organization_id TEXT,
	date            DATE NOT NULL,
	name            TEXT NOT NULL
);

CREATE TABLE geofence_settings (
	organization_id       TEXT PRIMARY KEY,
	mode                  TEXT NOT NULL,
	latitude              DOUBLE PRECISION,
	longitude             DOUBLE PRECISION,
	street                TEXT,
	number                TEXT,
	neighborhood          TEXT,
	city                  TEXT,
	state                 TEXT,
	postal_code           TEXT,
	country               TEXT,
	allowed_radius_meters INT,
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// openTestDB connects to TEST_DATABASE_URL and recreates the test schema
// once per run. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		ctx := context.Background()

		admin, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{})
		if err != nil {
			testDBErr = err
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP SCHEMA IF EXISTS "+testSchema+" CASCADE"); err != nil {
			testDBErr = err
			return
		}
		if _, err := admin.Exec(ctx, "CREATE SCHEMA "+testSchema); err != nil {
			testDBErr = err
			return
		}

		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn+sep+"search_path="+testSchema, database.PoolOptions{MaxConns: 4})
		if testDBErr != nil {
			return
		}
		_, testDBErr = testDB.Exec(ctx, schemaDDL)
	})
	require.NoError(t, testDBErr)

	return testDB
}

func truncate(t *testing.T, db *database.DB, tables ...string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(tables, ", "))
	require.NoError(t, err)
}
