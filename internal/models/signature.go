package models

// CodeKind classifies the declaration a signature was extracted from.
type CodeKind string

const (
	KindFunction  CodeKind = "function"
	KindMethod    CodeKind = "method"
	KindClass     CodeKind = "class"
	KindInterface CodeKind = "interface"
	KindVariable  CodeKind = "variable"
	KindType      CodeKind = "type"
)

// ParameterInfo describes one declared parameter in textual order.
type ParameterInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	IsOptional   bool   `json:"isOptional"`
	IsRest       bool   `json:"isRest"`
	// IsReceiver marks an implicit receiver parameter (Python self/cls,
	// Go method receiver). Receivers are excluded from drift comparison.
	IsReceiver bool `json:"isReceiver,omitempty"`
}

// CodeSignature is the normalized, language-neutral description of a declaration.
type CodeSignature struct {
	Name       string          `json:"name"`
	Type       CodeKind        `json:"type"`
	Parameters []ParameterInfo `json:"parameters"`
	ReturnType string          `json:"returnType,omitempty"`
	Modifiers  []string        `json:"modifiers"`
	// Hash is a stable digest of the whitespace-normalized declaration text.
	// The state store compares it across scans to detect code changes; the
	// analyzer itself never reads it.
	Hash string `json:"hash"`
}
