package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestMatchExtension(t *testing.T) {
	w := NewWatcher(nil, []string{".ts", ".py"}, nil, nil)
	tests := []struct {
		path string
		want bool
	}{
		{"src/app.ts", true},
		{"src/APP.TS", true},
		{"lib/client.py", true},
		{"main.go", false},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := w.matchExtension(tt.path); got != tt.want {
			t.Errorf("matchExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	all := NewWatcher(nil, nil, nil, nil)
	if !all.matchExtension("anything.xyz") {
		t.Error("empty extension list should match everything")
	}
}

func TestWatcher_debounceCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.ts")
	if err := os.WriteFile(path, []byte("// v0"), 0644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	scans := make(map[string]int)
	w := NewWatcher([]string{dir}, []string{".ts"}, func(p string) {
		mu.Lock()
		scans[p]++
		mu.Unlock()
	}, nil, WithDebounce(100*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Rapid writes inside one settle window coalesce into one scan.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("// edit"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := scans[path]
		mu.Unlock()
		if n >= 1 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	// Allow the debounce window to fully drain before counting.
	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	n := scans[path]
	mu.Unlock()
	if n != 1 {
		t.Errorf("scans = %d, want 1 coalesced scan", n)
	}
}

func TestWatcher_ignoresUnmatchedExtensions(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var scanned []string
	w := NewWatcher([]string{dir}, []string{".py"}, func(p string) {
		mu.Lock()
		scanned = append(scanned, p)
		mu.Unlock()
	}, nil, WithDebounce(50*time.Millisecond))

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# doc"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(scanned) != 0 {
		t.Errorf("unexpected scans: %v", scanned)
	}
}

func TestWatcher_removeTriggersCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.py")
	if err := os.WriteFile(path, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	removed := make(chan string, 1)
	w := NewWatcher([]string{dir}, []string{".py"}, func(string) {}, func(p string) {
		select {
		case removed <- p:
		default:
		}
	}, WithDebounce(50*time.Millisecond))

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-removed:
		if p != path {
			t.Errorf("removed %q, want %q", p, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("remove callback never fired")
	}
}

func TestWatcher_startIsIdempotentAndStops(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{dir}, nil, func(string) {}, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Errorf("second Start: %v", err)
	}
	w.Stop()
	w.Stop() // Stop is safe to call twice
}

func TestWatcher_missingRootIsSkipped(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(os.TempDir(), "driftlens-no-such-root")}, nil, nil, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Errorf("Start with missing root: %v", err)
	}
	w.Stop()
}
