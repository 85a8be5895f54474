// Package db provides PostgreSQL access to the program catalog table.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/ad-generator/internal/types"
)

// Schema creates the programs table when it does not exist. position keeps
// the row order of the imported catalog file.
const Schema = `CREATE TABLE IF NOT EXISTS programs (
	title       TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	position    INT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
ALTER TABLE programs ADD COLUMN IF NOT EXISTS position INT NOT NULL DEFAULT 0`

const listProgramsQuery = `SELECT title, COALESCE(description, '') FROM programs ORDER BY position, title`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// IsDatabaseURL reports whether source names a Postgres database.
func IsDatabaseURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the programs table if needed.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create programs table: %w", err)
	}
	return nil
}

// ListPrograms returns every catalog row in imported file order.
func (db *DB) ListPrograms(ctx context.Context) ([]types.ProgramRecord, error) {
	rows, err := db.pool.Query(ctx, listProgramsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var records []types.ProgramRecord
	for rows.Next() {
		var r types.ProgramRecord
		if err := rows.Scan(&r.Title, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate programs: %w", err)
	}
	return records, nil
}

// GetProgram returns the program with title, or nil when absent.
func (db *DB) GetProgram(ctx context.Context, title string) (*types.ProgramRecord, error) {
	var r types.ProgramRecord
	err := db.pool.QueryRow(ctx,
		`SELECT title, COALESCE(description, '') FROM programs WHERE title = $1`, title,
	).Scan(&r.Title, &r.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get program %q: %w", title, err)
	}
	return &r, nil
}

// UpsertPrograms inserts records in one transaction, replacing the description
// and position of existing titles. Each row's position is its index in records.
// It returns the number of rows written.
func (db *DB) UpsertPrograms(ctx context.Context, records []types.ProgramRecord) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, r := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO programs (title, description, position) VALUES ($1, $2, $3)
			 ON CONFLICT (title) DO UPDATE
			 SET description = EXCLUDED.description, position = EXCLUDED.position`,
			r.Title, r.Description, i,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert program %q: %w", r.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit programs: %w", err)
	}
	return len(records), nil
}
