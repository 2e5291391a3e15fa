// Package integration provides end-to-end tests (real state store, full scan pipeline).
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/driftlens/driftlens/internal/config"
	"github.com/driftlens/driftlens/internal/drift"
	"github.com/driftlens/driftlens/internal/extract"
	"github.com/driftlens/driftlens/internal/models"
	"github.com/driftlens/driftlens/internal/scanner"
	"github.com/driftlens/driftlens/internal/server"
	"github.com/driftlens/driftlens/internal/state"
)

const driftedPython = `def process_batch(items, user_id, retries):
    """Processes a batch of records.

    Args:
        items (list): the records to process
        userId (str): the owner of the batch
        timeout (int): seconds before giving up

    Returns:
        dict: summary of the run
    """
    return {"count": len(items)}
`

const cleanGo = `package demo

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}
`

func TestIntegration_ScanPipeline(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "batch.py", driftedPython)
	writeFixture(t, dir, "math.go", cleanGo)

	store, err := state.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	sc := scanner.NewScanner(extract.NewRegistry(), drift.NewAnalyzer(nil), scanner.WithStore(store))
	ctx := context.Background()

	result, err := sc.ScanDir(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if result.Files != 2 {
		t.Fatalf("files = %d, want 2", result.Files)
	}
	if len(result.Pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(result.Pairs))
	}

	var drifted, clean *models.DocCodePair
	for i := range result.Pairs {
		switch result.Pairs[i].CodeSignature.Name {
		case "process_batch":
			drifted = &result.Pairs[i]
		case "Add":
			clean = &result.Pairs[i]
		}
	}
	if drifted == nil || clean == nil {
		t.Fatalf("missing expected pairs: %+v", result.Pairs)
	}

	// The docstring renames user_id, drops retries, and documents a removed
	// timeout plus a return the code half-declares; drift must be nonzero.
	if drifted.DriftScore <= 0 || len(drifted.DriftReasons) == 0 {
		t.Errorf("drifted pair: score=%v reasons=%+v", drifted.DriftScore, drifted.DriftReasons)
	}
	sawRename := false
	for _, r := range drifted.DriftReasons {
		if r.Type == models.DriftParameterRenamed {
			sawRename = true
		}
	}
	if !sawRename {
		t.Errorf("userId -> user_id rename not detected: %+v", drifted.DriftReasons)
	}
	if clean.DriftScore != 0 {
		t.Errorf("clean godoc pair drifted: %+v", clean.DriftReasons)
	}

	// Pair records are persisted for every scanned pair.
	records, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("persisted records = %d, want 2", len(records))
	}

	// Review survives a rescan of unchanged content.
	if err := store.MarkReviewed(ctx, drifted.ID, true); err != nil {
		t.Fatal(err)
	}
	result, err = sc.ScanDir(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	reviewed := 0
	for i := range result.Pairs {
		if result.Pairs[i].IsReviewed {
			reviewed++
		}
	}
	if reviewed != 1 {
		t.Errorf("reviewed pairs after rescan = %d, want 1", reviewed)
	}

	if last, err := store.LastFullScan(ctx); err != nil || last == nil {
		t.Errorf("LastFullScan = %v, %v", last, err)
	}
}

func TestIntegration_ServerOverScannedState(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "batch.py", driftedPython)

	store, err := state.NewDiskStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	registry := extract.NewRegistry()
	sc := scanner.NewScanner(registry, drift.NewAnalyzer(nil), scanner.WithStore(store))
	if _, err := sc.ScanDir(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	srv := server.NewServer(sc, store, registry, cfg, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/pairs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/v1/pairs status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status %d", resp.StatusCode)
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
