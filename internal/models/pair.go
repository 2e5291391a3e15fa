// Package models defines core data structures for doc-code pairs, signatures, and drift results.
package models

import "time"

// Position is a zero-based line/column location in a source file.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Span is a half-open region of source text from Start to End (inclusive positions).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DocStyle identifies the documentation comment convention of a doc block.
type DocStyle string

const (
	// DocStyleJSDoc is a /** ... */ block with @-tags (TypeScript, JavaScript).
	DocStyleJSDoc DocStyle = "jsdoc"
	// DocStyleDocstring is a Python """ ... """ docstring (Google, Sphinx, or NumPy sections).
	DocStyleDocstring DocStyle = "docstring"
	// DocStyleGodoc is a Go // comment block preceding a declaration.
	DocStyleGodoc DocStyle = "godoc"
	// DocStyleJavadoc is a Java /** ... */ block with @-tags.
	DocStyleJavadoc DocStyle = "javadoc"
)

// DocCodePair is a documentation block associated with the declaration it describes.
// Pairs are recreated on every scan; only the review-state store persists anything
// across scans (keyed by ID, comparing the signature hash).
type DocCodePair struct {
	ID       string `json:"id"`
	FilePath string `json:"filePath"`
	Language string `json:"language"`

	DocRange   Span     `json:"docRange"`
	DocContent string   `json:"docContent"`
	DocType    DocStyle `json:"docType"`

	CodeRange   Span   `json:"codeRange"`
	CodeContent string `json:"codeContent"`

	CodeSignature CodeSignature `json:"codeSignature"`

	DriftScore   float64       `json:"driftScore"`
	DriftReasons []DriftReason `json:"driftReasons"`
	LastAnalyzed time.Time     `json:"lastAnalyzed"`

	IsReviewed bool       `json:"isReviewed"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}
