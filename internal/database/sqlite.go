package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"student-chapter-system/internal/logger"
)

// Open opens the SQLite content database at path. WAL mode keeps concurrent
// request handling from tripping over the writer lock.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// InitSchema creates the mcq_questions table. The units, pages and documents
// tables are provisioned by the book ingestion tooling and are not touched
// here. A failure is logged and swallowed: the read-only endpoints must stay
// up even when the database is not writable.
func InitSchema(ctx context.Context, db *sql.DB) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mcq_questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unit_id INTEGER,
			question TEXT,
			option_a TEXT,
			option_b TEXT,
			option_c TEXT,
			option_d TEXT,
			correct_answer TEXT
		)
	`)
	if err != nil {
		logger.Error("DB init error", "error", err)
	}
}
