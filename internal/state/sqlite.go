// SQLite implementation of the review-state Store.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pairs (
		id TEXT PRIMARY KEY,
		file_path TEXT NOT NULL,
		code_hash TEXT NOT NULL,
		doc_hash TEXT NOT NULL,
		is_reviewed INTEGER NOT NULL DEFAULT 0,
		reviewed_at TIMESTAMP,
		drift_score REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_pairs_file_path ON pairs(file_path);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the record for id, or (nil, nil) when absent.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*PairRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file_path, code_hash, doc_hash, is_reviewed, reviewed_at, drift_score
		 FROM pairs WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pair: %w", err)
	}
	return rec, nil
}

// Put creates or replaces a record.
func (s *SQLiteStore) Put(ctx context.Context, rec *PairRecord) error {
	var reviewedAt interface{}
	if rec.ReviewedAt != nil {
		reviewedAt = rec.ReviewedAt.UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pairs (id, file_path, code_hash, doc_hash, is_reviewed, reviewed_at, drift_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FilePath, rec.CodeHash, rec.DocHash, boolToInt(rec.IsReviewed), reviewedAt, rec.DriftScore)
	if err != nil {
		return fmt.Errorf("failed to put pair: %w", err)
	}
	return nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pairs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete pair: %w", err)
	}
	return nil
}

// List returns all records ordered by pair ID.
func (s *SQLiteStore) List(ctx context.Context) ([]*PairRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_path, code_hash, doc_hash, is_reviewed, reviewed_at, drift_score
		 FROM pairs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	defer rows.Close()
	var out []*PairRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkReviewed sets the review flag on an existing record.
func (s *SQLiteStore) MarkReviewed(ctx context.Context, id string, reviewed bool) error {
	var reviewedAt interface{}
	if reviewed {
		reviewedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE pairs SET is_reviewed = ?, reviewed_at = ? WHERE id = ?`,
		boolToInt(reviewed), reviewedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark reviewed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unknown pair %s", id)
	}
	return nil
}

// SetLastFullScan records the completion time of a whole-workspace scan.
func (s *SQLiteStore) SetLastFullScan(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_full_scan', ?)`,
		t.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to set last full scan: %w", err)
	}
	return nil
}

// LastFullScan returns the last full scan time, or nil when never scanned.
func (s *SQLiteStore) LastFullScan(ctx context.Context) (*time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'last_full_scan'`).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last full scan: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last full scan: %w", err)
	}
	return &t, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*PairRecord, error) {
	var rec PairRecord
	var reviewed int
	var reviewedAt sql.NullTime
	if err := row.Scan(&rec.ID, &rec.FilePath, &rec.CodeHash, &rec.DocHash, &reviewed, &reviewedAt, &rec.DriftScore); err != nil {
		return nil, err
	}
	rec.IsReviewed = reviewed != 0
	if reviewedAt.Valid {
		t := reviewedAt.Time
		rec.ReviewedAt = &t
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
