package database

import (
	"context"
	"fmt"

	"github.com/example/tutorhub/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the store handle shared by all repositories and makes sure
// the tables exist.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if db.DriverName() == "sqlite3" {
		// Enable foreign keys
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers, and an in-memory
		// database lives only as long as its single connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := initializeSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initializeSchema creates the tutor and topic tables if they don't exist
func initializeSchema(ctx context.Context, db *sqlx.DB) error {
	pk := "SERIAL PRIMARY KEY"
	if db.DriverName() == "sqlite3" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tutor (
			id `+pk+`,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			profile TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tutor table: %w", err)
	}

	// No ON DELETE CASCADE: TutorRepository.Delete removes topics itself
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS topic (
			id `+pk+`,
			tutor_id INTEGER NOT NULL REFERENCES tutor(id),
			title TEXT NOT NULL,
			topic_description TEXT,
			format TEXT,
			duration TEXT,
			topic_level TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create topic table: %w", err)
	}

	_, err = db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS topic_tutor_id_idx ON topic (tutor_id)")
	if err != nil {
		return fmt.Errorf("failed to create topic index: %w", err)
	}

	return nil
}

// insertID runs an INSERT and returns the generated id. lib/pq has no
// LastInsertId, so postgres gets a RETURNING clause instead.
func insertID(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	if db.DriverName() == "postgres" {
		var id int64
		err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
