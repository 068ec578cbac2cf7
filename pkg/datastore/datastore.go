// Package datastore is the sqlite persistence behind the reference server.
package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the latest schema version supported by Migrate.
const SchemaVersion = 1

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides sqlite-backed persistence for users, thoughts and sessions.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	// sqlite allows one writer; a single connection keeps writes ordered.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open datastore: ping: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate ensures the schema exists and is at SchemaVersion.
func Migrate(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`); err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}
	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmts := []struct {
		name string
		sql  string
	}{
		{"users table", `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				sessions_completed INTEGER NOT NULL DEFAULT 0,
				total_focus_time INTEGER NOT NULL DEFAULT 0,
				focus_duration INTEGER NOT NULL DEFAULT 25,
				short_break_duration INTEGER NOT NULL DEFAULT 5,
				long_break_duration INTEGER NOT NULL DEFAULT 15,
				theme TEXT NOT NULL DEFAULT 'animated-gradient',
				notifications INTEGER NOT NULL DEFAULT 1,
				last_active_at TEXT NULL,
				created_at TEXT NOT NULL
			);`},
		{"thoughts table", `
			CREATE TABLE IF NOT EXISTS thoughts (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				text TEXT NOT NULL,
				timestamp TEXT NOT NULL,
				session_mode TEXT NULL,
				session_number INTEGER NULL,
				tags TEXT NOT NULL DEFAULT '[]',
				is_completed INTEGER NOT NULL DEFAULT 0,
				is_deleted INTEGER NOT NULL DEFAULT 0,
				deleted_at TEXT NULL,
				is_dealt_with INTEGER NOT NULL DEFAULT 0,
				dealt_with_at TEXT NULL,
				scheduled_for_deletion TEXT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id)
			);`},
		{"sessions table", `
			CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				mode TEXT NOT NULL,
				duration INTEGER NOT NULL,
				completed INTEGER NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NULL,
				paused_duration INTEGER NOT NULL DEFAULT 0,
				thoughts_captured INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id)
			);`},
		{"idx_thoughts_user_timestamp", `CREATE INDEX IF NOT EXISTS idx_thoughts_user_timestamp ON thoughts(user_id, is_deleted, timestamp);`},
		{"idx_thoughts_cleanup", `CREATE INDEX IF NOT EXISTS idx_thoughts_cleanup ON thoughts(is_dealt_with, scheduled_for_deletion);`},
		{"idx_sessions_user_start", `CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON sessions(user_id, start_time);`},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.sql); err != nil {
			return fmt.Errorf("migrate: create %s: %w", st.name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion); err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}
