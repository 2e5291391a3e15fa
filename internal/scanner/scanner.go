// Package scanner runs extraction, documentation parsing, and drift analysis
// over files and directory trees.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/driftlens/driftlens/internal/docparse"
	"github.com/driftlens/driftlens/internal/drift"
	"github.com/driftlens/driftlens/internal/extract"
	"github.com/driftlens/driftlens/internal/models"
	"github.com/driftlens/driftlens/internal/state"
)

const defaultWorkers = 4

// directories that never contain first-party documented source
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".venv":        {},
	"venv":         {},
}

// Scanner coordinates the registry, doc parsers, analyzer, and state store.
// Core operations are pure per file, so directory scans run file-parallel;
// only the final result collection is synchronized. Within-file pair order is
// always preserved.
type Scanner struct {
	registry *extract.Registry
	analyzer *drift.Analyzer
	store    state.Store    // optional; when set, review flags carry across scans
	cache    *gocache.Cache // optional; keyed by path + content hash
	logger   *zap.Logger    // optional; when set, logs debug events
	workers  int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets a logger for debug output (files scanned, failures skipped).
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithStore sets the review-state store consulted and updated during scans.
func WithStore(st state.Store) Option {
	return func(s *Scanner) { s.store = st }
}

// WithWorkers sets the directory-scan parallelism (minimum 1).
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithCache enables a TTL cache of per-file results keyed by content hash, so
// repeated scans of unchanged files skip re-analysis.
func WithCache(ttl time.Duration) Option {
	return func(s *Scanner) { s.cache = gocache.New(ttl, 2*ttl) }
}

// NewScanner creates a scanner with the given registry and analyzer.
func NewScanner(registry *extract.Registry, analyzer *drift.Analyzer, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		analyzer: analyzer,
		workers:  defaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one directory scan.
type Result struct {
	ScanID   string               `json:"scanId"`
	Root     string               `json:"root"`
	Files    int                  `json:"files"`
	Failed   int                  `json:"failed"`
	Pairs    []models.DocCodePair `json:"pairs"`
	Duration time.Duration        `json:"duration"`
}

// ScanText extracts, parses, and analyzes pairs from in-memory source text.
// An unsupported language yields an empty list, never an error.
func (s *Scanner) ScanText(ctx context.Context, filePath, content, language string) []models.DocCodePair {
	extractor, ok := s.registry.ForLanguage(language)
	if !ok {
		return nil
	}
	return s.analyzePairs(ctx, extractor.ExtractPairs(filePath, content))
}

// ScanFile reads and scans one file, selecting the language by extension.
// A file with no registered extractor yields an empty list.
func (s *Scanner) ScanFile(ctx context.Context, path string) ([]models.DocCodePair, error) {
	extractor, ok := s.registry.ForFile(path)
	if !ok {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text := string(content)

	var cacheKey string
	if s.cache != nil {
		cacheKey = path + ":" + extract.HashText(text)
		if cached, found := s.cache.Get(cacheKey); found {
			pairs := copyPairs(cached.([]models.DocCodePair))
			return s.applyReviewFlags(ctx, pairs), nil
		}
	}

	pairs := s.analyzePairs(ctx, extractor.ExtractPairs(path, text))
	if s.cache != nil {
		// Cache a private copy; the returned slice belongs to the caller.
		s.cache.Set(cacheKey, copyPairs(pairs), gocache.DefaultExpiration)
	}
	return pairs, nil
}

// ScanDir walks root and scans every supported file in parallel. A failure in
// one file contributes zero pairs and is logged; it never aborts the scan.
// Cross-file pair ordering follows the sorted file list.
func (s *Scanner) ScanDir(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	files, err := s.discoverFiles(root)
	if err != nil {
		return nil, err
	}

	type fileResult struct {
		pairs []models.DocCodePair
		err   error
	}
	results := make([]fileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i].pairs, results[i].err = s.scanOne(ctx, files[i])
			}
		}()
	}
dispatch:
	for i := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result := &Result{
		ScanID: uuid.New().String(),
		Root:   root,
		Files:  len(files),
	}
	for i := range results {
		if results[i].err != nil {
			result.Failed++
			if s.logger != nil {
				s.logger.Warn("file scan failed",
					zap.String("path", files[i]),
					zap.Error(results[i].err))
			}
			continue
		}
		result.Pairs = append(result.Pairs, results[i].pairs...)
	}
	result.Duration = time.Since(start)

	if s.store != nil {
		if err := s.store.SetLastFullScan(ctx, time.Now()); err != nil && s.logger != nil {
			s.logger.Warn("failed to record scan time", zap.Error(err))
		}
	}
	if s.logger != nil {
		s.logger.Debug("directory scan complete",
			zap.String("scan_id", result.ScanID),
			zap.Int("files", result.Files),
			zap.Int("failed", result.Failed),
			zap.Int("pairs", len(result.Pairs)),
			zap.Duration("duration", result.Duration))
	}
	return result, nil
}

// scanOne isolates a single file's scan: a panic inside extraction or
// analysis is converted into an error for that file alone.
func (s *Scanner) scanOne(ctx context.Context, path string) (pairs []models.DocCodePair, err error) {
	defer func() {
		if r := recover(); r != nil {
			pairs = nil
			err = fmt.Errorf("scan panicked: %v", r)
		}
	}()
	return s.ScanFile(ctx, path)
}

// analyzePairs parses each pair's documentation, runs the drift analyzer, and
// applies persisted review flags. The input order is preserved.
func (s *Scanner) analyzePairs(ctx context.Context, pairs []models.DocCodePair) []models.DocCodePair {
	for i := range pairs {
		doc := docparse.Parse(pairs[i].DocContent, pairs[i].DocType)
		s.analyzer.Apply(&pairs[i], &doc)
	}
	pairs = s.applyReviewFlags(ctx, pairs)
	if s.store != nil {
		for i := range pairs {
			rec := &state.PairRecord{
				ID:         pairs[i].ID,
				FilePath:   pairs[i].FilePath,
				CodeHash:   pairs[i].CodeSignature.Hash,
				DocHash:    extract.HashText(pairs[i].DocContent),
				IsReviewed: pairs[i].IsReviewed,
				ReviewedAt: pairs[i].ReviewedAt,
				DriftScore: pairs[i].DriftScore,
			}
			if err := s.store.Put(ctx, rec); err != nil && s.logger != nil {
				s.logger.Warn("failed to persist pair record", zap.String("id", rec.ID), zap.Error(err))
			}
		}
	}
	return pairs
}

// copyPairs returns a fresh slice with review flags cleared. Cached entries
// are shared across calls, so they must never be mutated in place, and the
// flags must always reflect the store's current state (an unreview between
// cache hits has to show through).
func copyPairs(pairs []models.DocCodePair) []models.DocCodePair {
	out := make([]models.DocCodePair, len(pairs))
	copy(out, pairs)
	for i := range out {
		out[i].IsReviewed = false
		out[i].ReviewedAt = nil
	}
	return out
}

// applyReviewFlags marks pairs reviewed when the store holds a review for the
// same pair ID and both content hashes are unchanged. A changed hash
// invalidates the review.
func (s *Scanner) applyReviewFlags(ctx context.Context, pairs []models.DocCodePair) []models.DocCodePair {
	if s.store == nil {
		return pairs
	}
	for i := range pairs {
		rec, err := s.store.Get(ctx, pairs[i].ID)
		if err != nil || rec == nil || !rec.IsReviewed {
			continue
		}
		if rec.CodeHash == pairs[i].CodeSignature.Hash &&
			rec.DocHash == extract.HashText(pairs[i].DocContent) {
			pairs[i].IsReviewed = true
			pairs[i].ReviewedAt = rec.ReviewedAt
		}
	}
	return pairs
}

// discoverFiles returns the sorted list of supported files under root,
// honoring .gitignore and skipping well-known build/dependency directories.
func (s *Scanner) discoverFiles(root string) ([]string, error) {
	var gi *ignore.GitIgnore
	if compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		gi = compiled
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if _, ok := s.registry.ForFile(path); !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
