// Package state persists which doc-code pairs a human has reviewed across scans.
// The core never reads this package; the scanner applies its records onto
// freshly extracted pairs and writes updated records back.
package state

import (
	"context"
	"time"
)

// Version is the review-state document format version.
const Version = 1

// PairRecord is the reduced, pair-id-keyed record persisted across scans.
// A review is only valid while both hashes still match the scanned pair.
type PairRecord struct {
	ID         string     `json:"id"`
	FilePath   string     `json:"filePath"`
	CodeHash   string     `json:"codeHash"`
	DocHash    string     `json:"docHash"`
	IsReviewed bool       `json:"isReviewed"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	DriftScore float64    `json:"driftScore"`
}

// Store defines review-state persistence operations.
type Store interface {
	// Get returns the record for a pair ID, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*PairRecord, error)
	// Put creates or replaces a record.
	Put(ctx context.Context, rec *PairRecord) error
	// Delete removes a record; deleting an absent record is not an error.
	Delete(ctx context.Context, id string) error
	// List returns all records ordered by pair ID.
	List(ctx context.Context) ([]*PairRecord, error)
	// MarkReviewed sets the review flag; reviewing stamps ReviewedAt.
	MarkReviewed(ctx context.Context, id string, reviewed bool) error
	// SetLastFullScan records when the last whole-workspace scan completed.
	SetLastFullScan(ctx context.Context, t time.Time) error
	// LastFullScan returns the last full scan time, or nil when never scanned.
	LastFullScan(ctx context.Context) (*time.Time, error)

	Close() error
}
