// Package store provides the SQLite persistence sink for subject-length
// records.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

const defaultSQLiteParams = "?_journal_mode=WAL&_busy_timeout=5000"

// Store wraps the stats database. Inserts accumulate in one open
// transaction until Commit; the pipeline driver decides the commit
// cadence. Single-writer use only.
type Store struct {
	db     *sql.DB
	dbPath string
	tx     *sql.Tx
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+defaultSQLiteParams)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close discards any uncommitted inserts and closes the database. Records
// inserted since the last Commit are lost, matching the crash contract.
func (s *Store) Close() error {
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for ad-hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// InitSchema creates the email_stats table if it does not exist.
// Idempotent.
func (s *Store) InitSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("execute schema.sql: %w", err)
	}
	return nil
}

// InsertStat inserts one record with insert-or-ignore semantics: a row
// whose id already exists is left untouched and the call reports
// inserted=false. The write lands in the pending transaction and is not
// durable until Commit.
func (s *Store) InsertStat(id, date string, subjectLen int) (inserted bool, err error) {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return false, fmt.Errorf("begin tx: %w", err)
		}
		s.tx = tx
	}

	res, err := s.tx.Exec(
		`INSERT OR IGNORE INTO email_stats (id, date, subject) VALUES (?, ?, ?)`,
		id, date, subjectLen,
	)
	if err != nil {
		return false, fmt.Errorf("insert stat: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert stat: rows affected: %w", err)
	}
	return n > 0, nil
}

// Commit durably flushes pending inserts. A no-op when nothing is pending.
func (s *Store) Commit() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
