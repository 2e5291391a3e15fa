package pairid

import (
	"strings"
	"testing"
)

func TestPairID_deterministic(t *testing.T) {
	a := PairID("src/app.ts", 10)
	b := PairID("src/app.ts", 10)
	if a != b {
		t.Errorf("same input produced different IDs: %q vs %q", a, b)
	}
}

func TestPairID_prefixAndLength(t *testing.T) {
	id := PairID("main.py", 0)
	if !strings.HasPrefix(id, "pair:") {
		t.Errorf("missing prefix: %q", id)
	}
	// 16 bytes of digest hex-encoded
	if len(id) != len("pair:")+32 {
		t.Errorf("unexpected length %d: %q", len(id), id)
	}
}

func TestPairID_distinguishesInputs(t *testing.T) {
	if PairID("a.go", 1) == PairID("a.go", 2) {
		t.Error("different anchor lines collided")
	}
	if PairID("a.go", 1) == PairID("b.go", 1) {
		t.Error("different paths collided")
	}
}

func TestPairID_pathNormalization(t *testing.T) {
	if PairID("src/./app.ts", 3) != PairID("src/app.ts", 3) {
		t.Error("cleaned path should produce the same ID")
	}
}
