package drift

import "github.com/driftlens/driftlens/internal/models"

// AnalyzerConfig holds the weight table and multipliers for drift scoring.
// The weights, multipliers, and detection order (parameters, return type,
// description) are part of the scoring contract: changing any of them changes
// observable scores for existing inputs.
type AnalyzerConfig struct {
	// Base weights per reason family
	ParameterWeight   float64 `yaml:"parameter_weight"`   // default: 0.30
	ReturnTypeWeight  float64 `yaml:"return_type_weight"` // default: 0.25
	SignatureWeight   float64 `yaml:"signature_weight"`   // default: 0.20
	DescriptionWeight float64 `yaml:"description_weight"` // default: 0.10

	// Severity multipliers
	CriticalMultiplier float64 `yaml:"critical_multiplier"` // default: 1.5
	HighMultiplier     float64 `yaml:"high_multiplier"`     // default: 1.2
	MediumMultiplier   float64 `yaml:"medium_multiplier"`   // default: 1.0
	LowMultiplier      float64 `yaml:"low_multiplier"`      // default: 0.5

	// Fuzzy matching
	MaxRenameDistance int `yaml:"max_rename_distance"` // default: 2
}

// DefaultAnalyzerConfig returns the default scoring configuration.
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		ParameterWeight:   0.30,
		ReturnTypeWeight:  0.25,
		SignatureWeight:   0.20,
		DescriptionWeight: 0.10,

		CriticalMultiplier: 1.5,
		HighMultiplier:     1.2,
		MediumMultiplier:   1.0,
		LowMultiplier:      0.5,

		MaxRenameDistance: 2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *AnalyzerConfig) ApplyDefaults() {
	defaults := DefaultAnalyzerConfig()

	if c.ParameterWeight == 0 {
		c.ParameterWeight = defaults.ParameterWeight
	}
	if c.ReturnTypeWeight == 0 {
		c.ReturnTypeWeight = defaults.ReturnTypeWeight
	}
	if c.SignatureWeight == 0 {
		c.SignatureWeight = defaults.SignatureWeight
	}
	if c.DescriptionWeight == 0 {
		c.DescriptionWeight = defaults.DescriptionWeight
	}
	if c.CriticalMultiplier == 0 {
		c.CriticalMultiplier = defaults.CriticalMultiplier
	}
	if c.HighMultiplier == 0 {
		c.HighMultiplier = defaults.HighMultiplier
	}
	if c.MediumMultiplier == 0 {
		c.MediumMultiplier = defaults.MediumMultiplier
	}
	if c.LowMultiplier == 0 {
		c.LowMultiplier = defaults.LowMultiplier
	}
	if c.MaxRenameDistance == 0 {
		c.MaxRenameDistance = defaults.MaxRenameDistance
	}
}

// baseWeight returns the weight of a reason's family.
func (c *AnalyzerConfig) baseWeight(t models.DriftType) float64 {
	switch t {
	case models.DriftParameterMismatch, models.DriftParameterAdded,
		models.DriftParameterRemoved, models.DriftParameterRenamed:
		return c.ParameterWeight
	case models.DriftReturnTypeMismatch:
		return c.ReturnTypeWeight
	case models.DriftSignatureChanged, models.DriftContentChanged:
		return c.SignatureWeight
	case models.DriftDescriptionMismatch:
		return c.DescriptionWeight
	default:
		return c.DescriptionWeight
	}
}

// severityMultiplier returns the multiplier for a severity grade.
func (c *AnalyzerConfig) severityMultiplier(s models.DriftSeverity) float64 {
	switch s {
	case models.SeverityCritical:
		return c.CriticalMultiplier
	case models.SeverityHigh:
		return c.HighMultiplier
	case models.SeverityMedium:
		return c.MediumMultiplier
	case models.SeverityLow:
		return c.LowMultiplier
	default:
		return c.MediumMultiplier
	}
}
