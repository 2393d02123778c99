package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// EventRepo is the narrow port the LLM layer uses to record request events.
// *Store satisfies it; tests substitute lightweight fakes.
type EventRepo interface {
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
}

// Store wraps the SQLite database holding LLM events and saved analyses.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS llm_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 1,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_events(purpose);
	CREATE INDEX IF NOT EXISTS idx_llm_events_created_at ON llm_events(created_at);

	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		overall_score REAL NOT NULL,
		weak_points TEXT NOT NULL DEFAULT '[]',
		page_count INTEGER NOT NULL DEFAULT 0,
		report TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database location: CHEMTUTOR_DB if set,
// otherwise the user config directory.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CHEMTUTOR_DB"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "chemtutor", "chemtutor.db"), nil
}
