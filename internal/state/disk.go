package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// document is the on-disk JSON shape of the review state.
type document struct {
	Version      int                    `json:"version"`
	Pairs        map[string]*PairRecord `json:"pairs"`
	LastFullScan *time.Time             `json:"lastFullScan,omitempty"`
}

// DiskStore implements Store as a single JSON document, loaded at open and
// rewritten atomically on every mutation.
type DiskStore struct {
	path string
	mu   sync.RWMutex
	doc  document
}

// NewDiskStore opens or creates the review-state file at path.
// Parent directories are created if they do not exist.
func NewDiskStore(path string) (*DiskStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	s := &DiskStore{
		path: path,
		doc:  document{Version: Version, Pairs: make(map[string]*PairRecord)},
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if s.doc.Pairs == nil {
		s.doc.Pairs = make(map[string]*PairRecord)
	}
	s.doc.Version = Version
	return s, nil
}

// Get returns the record for id, or (nil, nil) when absent.
func (s *DiskStore) Get(_ context.Context, id string) (*PairRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.doc.Pairs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// Put creates or replaces a record.
func (s *DiskStore) Put(_ context.Context, rec *PairRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.doc.Pairs[rec.ID] = &cp
	return s.save()
}

// Delete removes a record.
func (s *DiskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Pairs[id]; !ok {
		return nil
	}
	delete(s.doc.Pairs, id)
	return s.save()
}

// List returns all records ordered by pair ID.
func (s *DiskStore) List(_ context.Context) ([]*PairRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*PairRecord, 0, len(s.doc.Pairs))
	for _, rec := range s.doc.Pairs {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MarkReviewed sets the review flag on an existing record.
func (s *DiskStore) MarkReviewed(_ context.Context, id string, reviewed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.doc.Pairs[id]
	if !ok {
		return fmt.Errorf("unknown pair %s", id)
	}
	rec.IsReviewed = reviewed
	if reviewed {
		now := time.Now().UTC()
		rec.ReviewedAt = &now
	} else {
		rec.ReviewedAt = nil
	}
	return s.save()
}

// SetLastFullScan records the completion time of a whole-workspace scan.
func (s *DiskStore) SetLastFullScan(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t = t.UTC()
	s.doc.LastFullScan = &t
	return s.save()
}

// LastFullScan returns the last full scan time, or nil when never scanned.
func (s *DiskStore) LastFullScan(_ context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.LastFullScan == nil {
		return nil, nil
	}
	t := *s.doc.LastFullScan
	return &t, nil
}

// Close is a no-op for the disk store; every mutation is already persisted.
func (s *DiskStore) Close() error { return nil }

// save writes the document atomically: temp file then rename.
func (s *DiskStore) save() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
