package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens and verifies the Postgres connection.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate creates the schema. All statements are idempotent so the server
// can run them on every start.
func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS official_items (
		id          BIGINT PRIMARY KEY,
		exam_year   INT NOT NULL,
		area        VARCHAR(2) NOT NULL,
		param_a     DOUBLE PRECISION,
		param_b     DOUBLE PRECISION,
		param_c     DOUBLE PRECISION,
		answer_key  VARCHAR(1),
		topic       VARCHAR(255),
		imported_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_items_area ON official_items(area);
	CREATE INDEX IF NOT EXISTS idx_items_area_calibrated ON official_items(area)
		WHERE param_a IS NOT NULL AND param_b IS NOT NULL AND param_c IS NOT NULL;

	CREATE TABLE IF NOT EXISTS item_analyses (
		id          BIGSERIAL PRIMARY KEY,
		param_a     DOUBLE PRECISION NOT NULL,
		param_b     DOUBLE PRECISION NOT NULL,
		param_c     DOUBLE PRECISION NOT NULL,
		commentary  TEXT,
		ai_drafted  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS simulation_results (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		area          VARCHAR(2) NOT NULL,
		theta         DOUBLE PRECISION NOT NULL,
		score         DOUBLE PRECISION NOT NULL,
		correct_count INT NOT NULL,
		total_items   INT NOT NULL,
		taken_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_results_user ON simulation_results(user_id, taken_at DESC);
	CREATE INDEX IF NOT EXISTS idx_results_area ON simulation_results(area);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Columns added after the initial schema. Idempotent for databases
	// created before this migration.
	alterStatements := []string{
		`ALTER TABLE official_items ADD COLUMN IF NOT EXISTS topic VARCHAR(255)`,
		`ALTER TABLE item_analyses ADD COLUMN IF NOT EXISTS ai_drafted BOOLEAN NOT NULL DEFAULT FALSE`,
		`ALTER TABLE simulation_results ADD COLUMN IF NOT EXISTS theta DOUBLE PRECISION NOT NULL DEFAULT 0`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}
