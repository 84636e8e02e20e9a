package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arloliu/primeseg/errs"
)

// sqliteBatchSize is the number of primes inserted per transaction.
const sqliteBatchSize = 10000

// SQLiteStore persists primes into a SQLite table, batching inserts into
// transactions for throughput. Primes are stored in the signed 64-bit
// INTEGER column; values at or above 2^63 are not representable.
type SQLiteStore struct {
	db      *sql.DB
	pending []uint64
	closed  bool
}

var _ Sink = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the primes
// table exists. Pass ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS primes (p INTEGER PRIMARY KEY)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db, pending: make([]uint64, 0, sqliteBatchSize)}, nil
}

// Write appends one prime; a full batch is flushed transactionally.
func (s *SQLiteStore) Write(prime uint64) error {
	if s.closed {
		return errs.ErrStoreClosed
	}
	s.pending = append(s.pending, prime)
	if len(s.pending) >= sqliteBatchSize {
		return s.flush()
	}

	return nil
}

func (s *SQLiteStore) flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	placeholders := make([]string, len(s.pending))
	args := make([]any, len(s.pending))
	for i, p := range s.pending {
		placeholders[i] = "(?)"
		args[i] = int64(p)
	}
	stmt := fmt.Sprintf("INSERT OR IGNORE INTO primes (p) VALUES %s", strings.Join(placeholders, ","))
	if _, err := tx.Exec(stmt, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to bulk insert primes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.pending = s.pending[:0]

	return nil
}

// Count returns the number of stored primes.
func (s *SQLiteStore) Count() (uint64, error) {
	if err := s.flush(); err != nil {
		return 0, err
	}
	var count uint64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM primes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count primes: %w", err)
	}

	return count, nil
}

// Close flushes pending primes and closes the database.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return nil
	}
	if err := s.flush(); err != nil {
		s.db.Close()
		return err
	}
	s.closed = true

	return s.db.Close()
}
