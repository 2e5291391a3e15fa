package extract

import (
	"reflect"
	"testing"
)

func TestRegistry_lookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		language string
		ok       bool
	}{
		{"typescript", true},
		{"TypeScript", true},
		{"javascript", true},
		{"python", true},
		{"go", true},
		{"java", true},
		{"rust", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := r.ForLanguage(tt.language); ok != tt.ok {
			t.Errorf("ForLanguage(%q) ok = %v, want %v", tt.language, ok, tt.ok)
		}
	}

	fileTests := []struct {
		path     string
		language string
		ok       bool
	}{
		{"src/app.ts", "typescript", true},
		{"src/App.TSX", "typescript", true},
		{"lib/mod.mjs", "javascript", true},
		{"pkg/store.go", "go", true},
		{"Main.java", "java", true},
		{"client.py", "python", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range fileTests {
		e, ok := r.ForFile(tt.path)
		if ok != tt.ok {
			t.Errorf("ForFile(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && e.Language() != tt.language {
			t.Errorf("ForFile(%q) language = %q, want %q", tt.path, e.Language(), tt.language)
		}
	}
}

func TestRegistry_languagesSorted(t *testing.T) {
	got := NewRegistry().Languages()
	want := []string{"go", "java", "javascript", "python", "typescript"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestRegistry_allExtensions(t *testing.T) {
	exts := NewRegistry().AllExtensions()
	seen := make(map[string]bool)
	for _, ext := range exts {
		if ext == "" || ext[0] != '.' {
			t.Errorf("extension %q missing leading dot", ext)
		}
		if seen[ext] {
			t.Errorf("duplicate extension %q", ext)
		}
		seen[ext] = true
	}
	for _, want := range []string{".ts", ".tsx", ".js", ".py", ".go", ".java"} {
		if !seen[want] {
			t.Errorf("missing extension %q in %v", want, exts)
		}
	}
}

func TestRegistry_registerReplaces(t *testing.T) {
	r := NewEmptyRegistry()
	if langs := r.Languages(); len(langs) != 0 {
		t.Fatalf("empty registry has languages: %v", langs)
	}
	r.Register(NewPythonExtractor())
	r.Register(NewPythonExtractor())
	if langs := r.Languages(); len(langs) != 1 || langs[0] != "python" {
		t.Errorf("Languages() = %v", langs)
	}
}

func TestExtraction_idempotent(t *testing.T) {
	source := `/**
 * Doubles a value.
 * @param {number} value the input
 */
export function double(value: number): number {
  return value * 2;
}
`
	e := NewTypeScriptExtractor()
	first := e.ExtractPairs("src/double.ts", source)
	second := e.ExtractPairs("src/double.ts", source)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs:\n%+v\n%+v", first, second)
	}
	if len(first) == 1 && first[0].CodeSignature.Hash == "" {
		t.Error("missing signature hash")
	}
}

func TestHashText(t *testing.T) {
	a := HashText("func Add(a, b int) int")
	b := HashText("  func   Add(a, b int)   int  ")
	if a != b {
		t.Error("whitespace runs should not change the hash")
	}
	if a == HashText("func Add(a, c int) int") {
		t.Error("different content must hash differently")
	}
	if len(a) != 32 {
		t.Errorf("hash length %d, want 32 hex chars", len(a))
	}
}
