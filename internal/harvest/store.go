package harvest

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists harvested results to SQLite. Writes go through one
// transaction with a prepared insert; Close commits it. A Store is not
// safe for concurrent use.
type Store struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

// OpenStore opens or creates the results database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Tuned for bulk insert. A failed harvest reruns from its inputs, so
	// durability of intermediate state buys nothing.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		name TEXT NOT NULL,
		data JSON,
		harvested_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_source ON results(source, name);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.begin(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) begin() error {
	var err error
	s.tx, err = s.db.Begin()
	if err != nil {
		return err
	}
	s.stmt, err = s.tx.Prepare(`
		INSERT INTO results (source, name, data, harvested_at)
		VALUES (?, ?, ?, ?)
	`)
	return err
}

// Add records one harvested document's extracted data as JSON.
func (s *Store) Add(source, name string, data []byte) error {
	if _, err := s.stmt.Exec(source, name, data, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("insert result %s/%s: %w", source, name, err)
	}
	return nil
}

// Rows reports how many results are stored for source, or for all
// sources when source is empty. It reads through the open transaction,
// so uncommitted writes count.
func (s *Store) Rows(source string) (int, error) {
	var n int
	var err error
	if source == "" {
		err = s.tx.QueryRow("SELECT COUNT(*) FROM results").Scan(&n)
	} else {
		err = s.tx.QueryRow("SELECT COUNT(*) FROM results WHERE source = ?", source).Scan(&n)
	}
	return n, err
}

// Close commits pending writes and closes the database.
func (s *Store) Close() error {
	if s.stmt != nil {
		_ = s.stmt.Close()
	}
	if err := s.tx.Commit(); err != nil {
		_ = s.db.Close()
		return err
	}
	return s.db.Close()
}

// Rollback discards the run's uncommitted writes and closes the
// database. Rows committed by earlier runs are untouched.
func (s *Store) Rollback() error {
	if s.stmt != nil {
		_ = s.stmt.Close()
	}
	if err := s.tx.Rollback(); err != nil {
		_ = s.db.Close()
		return err
	}
	return s.db.Close()
}
