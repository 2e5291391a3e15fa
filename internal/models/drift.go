package models

// DriftType classifies one detected mismatch between documentation and code.
type DriftType string

const (
	DriftParameterMismatch   DriftType = "parameter_mismatch"
	DriftParameterAdded      DriftType = "parameter_added"
	DriftParameterRemoved    DriftType = "parameter_removed"
	DriftParameterRenamed    DriftType = "parameter_renamed"
	DriftReturnTypeMismatch  DriftType = "return_type_mismatch"
	DriftSignatureChanged    DriftType = "signature_changed"
	DriftContentChanged      DriftType = "content_changed"
	DriftDescriptionMismatch DriftType = "description_mismatch"
)

// DriftSeverity grades how strongly a reason indicates real drift.
type DriftSeverity string

const (
	SeverityLow      DriftSeverity = "low"
	SeverityMedium   DriftSeverity = "medium"
	SeverityHigh     DriftSeverity = "high"
	SeverityCritical DriftSeverity = "critical"
)

// DriftReason is one specific, classified mismatch with a severity.
type DriftReason struct {
	Type     DriftType     `json:"type"`
	Severity DriftSeverity `json:"severity"`
	Message  string        `json:"message"`
	Details  string        `json:"details,omitempty"`
}
