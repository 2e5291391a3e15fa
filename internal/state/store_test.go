package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	rec, err := store.Get(ctx, "pair:absent")
	if err != nil {
		t.Fatalf("Get absent: %v", err)
	}
	if rec != nil {
		t.Fatalf("Get absent = %+v, want nil", rec)
	}

	b := &PairRecord{ID: "pair:bbb", FilePath: "src/b.py", CodeHash: "cb", DocHash: "db", DriftScore: 0.25}
	a := &PairRecord{ID: "pair:aaa", FilePath: "src/a.ts", CodeHash: "ca", DocHash: "da"}
	if err := store.Put(ctx, b); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "pair:bbb")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FilePath != "src/b.py" || got.DriftScore != 0.25 || got.IsReviewed {
		t.Errorf("Get = %+v", got)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "pair:aaa" || list[1].ID != "pair:bbb" {
		t.Errorf("List order: %+v", list)
	}

	if err := store.MarkReviewed(ctx, "pair:aaa", true); err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	got, _ = store.Get(ctx, "pair:aaa")
	if !got.IsReviewed || got.ReviewedAt == nil {
		t.Errorf("review not stamped: %+v", got)
	}
	if err := store.MarkReviewed(ctx, "pair:aaa", false); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	got, _ = store.Get(ctx, "pair:aaa")
	if got.IsReviewed || got.ReviewedAt != nil {
		t.Errorf("review not cleared: %+v", got)
	}
	if err := store.MarkReviewed(ctx, "pair:nope", true); err == nil {
		t.Error("MarkReviewed on unknown pair should fail")
	}

	if err := store.Delete(ctx, "pair:bbb"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "pair:bbb"); err != nil {
		t.Errorf("Delete absent should be a no-op: %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 1 || list[0].ID != "pair:aaa" {
		t.Errorf("List after delete: %+v", list)
	}

	last, err := store.LastFullScan(ctx)
	if err != nil {
		t.Fatalf("LastFullScan: %v", err)
	}
	if last != nil {
		t.Errorf("LastFullScan before any scan = %v, want nil", last)
	}
	stamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if err := store.SetLastFullScan(ctx, stamp); err != nil {
		t.Fatalf("SetLastFullScan: %v", err)
	}
	last, err = store.LastFullScan(ctx)
	if err != nil {
		t.Fatalf("LastFullScan: %v", err)
	}
	if last == nil || !last.Equal(stamp) {
		t.Errorf("LastFullScan = %v, want %v", last, stamp)
	}
}

func TestDiskStore(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "state", "state.json"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state", "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestDiskStore_persistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := NewDiskStore(path)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	rec := &PairRecord{ID: "pair:keep", FilePath: "lib/k.go", CodeHash: "c", DocHash: "d", DriftScore: 0.5}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.MarkReviewed(ctx, "pair:keep", true); err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	store.Close()

	reopened, err := NewDiskStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(ctx, "pair:keep")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got == nil || !got.IsReviewed || got.ReviewedAt == nil || got.DriftScore != 0.5 {
		t.Errorf("record after reopen: %+v", got)
	}
}

func TestDiskStore_getReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	defer store.Close()
	if err := store.Put(ctx, &PairRecord{ID: "pair:x", FilePath: "a", CodeHash: "c", DocHash: "d"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ := store.Get(ctx, "pair:x")
	got.FilePath = "mutated"
	again, _ := store.Get(ctx, "pair:x")
	if again.FilePath != "a" {
		t.Errorf("store state leaked through Get: %+v", again)
	}
}
