// Package extract locates documentation blocks and their associated declarations
// in raw source text, one extractor per supported language.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

// PairExtractor extracts ordered doc-code pairs from raw file text.
// Implementations never fail: unrecognized or malformed constructs are
// skipped, and identical input always yields identical output.
type PairExtractor interface {
	// Language returns the canonical language identifier (e.g. "typescript").
	Language() string
	// Extensions returns the file extensions handled, with leading dot.
	Extensions() []string
	// ExtractPairs scans content and returns pairs in source order.
	// Declarations without preceding documentation yield no pair.
	ExtractPairs(filePath, content string) []models.DocCodePair
}

// Registry maps language identifiers and file extensions to extractors.
// It is an explicit value built once at startup and passed to the scanner;
// registration is open, lookup logic never changes per language.
type Registry struct {
	byLanguage  map[string]PairExtractor
	byExtension map[string]PairExtractor
}

// NewRegistry returns a registry with all built-in language extractors registered.
func NewRegistry() *Registry {
	r := &Registry{
		byLanguage:  make(map[string]PairExtractor),
		byExtension: make(map[string]PairExtractor),
	}
	r.Register(NewTypeScriptExtractor())
	r.Register(NewJavaScriptExtractor())
	r.Register(NewPythonExtractor())
	r.Register(NewGoExtractor())
	r.Register(NewJavaExtractor())
	return r
}

// NewEmptyRegistry returns a registry with no extractors, for callers that
// want full control over which languages are supported.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]PairExtractor),
		byExtension: make(map[string]PairExtractor),
	}
}

// Register adds an extractor under its language identifier and extensions.
// A later registration for the same key replaces the earlier one.
func (r *Registry) Register(e PairExtractor) {
	r.byLanguage[strings.ToLower(e.Language())] = e
	for _, ext := range e.Extensions() {
		r.byExtension[strings.ToLower(ext)] = e
	}
}

// ForLanguage returns the extractor for a language identifier.
// A miss returns (nil, false), never an error: unsupported languages simply
// produce no pairs.
func (r *Registry) ForLanguage(language string) (PairExtractor, bool) {
	e, ok := r.byLanguage[strings.ToLower(language)]
	return e, ok
}

// ForFile returns the extractor for a file path based on its extension.
func (r *Registry) ForFile(path string) (PairExtractor, bool) {
	e, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Languages returns the registered language identifiers in sorted order.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.byLanguage))
	for l := range r.byLanguage {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// AllExtensions returns every registered file extension in sorted order.
func (r *Registry) AllExtensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// HashText returns a stable digest of text with all runs of whitespace
// collapsed, so reformatting does not register as a content change. Signature
// hashes and the state store's doc hashes both use it.
func HashText(text string) string {
	normalized := whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:16])
}

func hashDeclaration(text string) string {
	return HashText(text)
}
