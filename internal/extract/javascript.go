package extract

import "github.com/driftlens/driftlens/internal/models"

// JavaScriptExtractor pairs JSDoc blocks with JavaScript declarations.
// Identical recognition to TypeScript minus type annotations; documented
// types come from the JSDoc block itself.
type JavaScriptExtractor struct{}

// NewJavaScriptExtractor returns a new JavaScriptExtractor.
func NewJavaScriptExtractor() *JavaScriptExtractor {
	return &JavaScriptExtractor{}
}

func (e *JavaScriptExtractor) Language() string { return "javascript" }

func (e *JavaScriptExtractor) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

// ExtractPairs scans JavaScript source and returns doc-code pairs in order.
func (e *JavaScriptExtractor) ExtractPairs(filePath, content string) []models.DocCodePair {
	return extractJSDocPairs(filePath, content, e.Language(), false)
}
