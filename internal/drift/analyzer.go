// Package drift scores divergence between parsed documentation and the
// normalized code signature it describes.
package drift

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/driftlens/driftlens/internal/match"
	"github.com/driftlens/driftlens/internal/models"
)

// Analyzer compares parsed documentation against a code signature and body.
// It is stateless: every Analyze call is an independent pure function of its
// inputs, so one analyzer is safe for concurrent use across files.
type Analyzer struct {
	config *AnalyzerConfig
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(config *AnalyzerConfig) *Analyzer {
	if config == nil {
		config = DefaultAnalyzerConfig()
	}
	config.ApplyDefaults()
	return &Analyzer{config: config}
}

// Analyze compares doc against the pair's signature and code body and returns
// the drift reasons in fixed detection order (parameters, return type,
// description) with the aggregate score in [0,1]. A partially extracted
// signature scores only the fields that are present; Analyze never fails.
func (a *Analyzer) Analyze(pair *models.DocCodePair, doc *models.ParsedDoc) ([]models.DriftReason, float64) {
	if pair == nil || doc == nil {
		return nil, 0
	}
	var reasons []models.DriftReason
	reasons = append(reasons, a.analyzeParameters(&pair.CodeSignature, doc)...)
	reasons = append(reasons, a.analyzeReturnType(&pair.CodeSignature, doc)...)
	reasons = append(reasons, a.analyzeDescription(pair, doc)...)
	return reasons, a.aggregate(reasons)
}

// Apply runs Analyze and writes the result onto the pair.
func (a *Analyzer) Apply(pair *models.DocCodePair, doc *models.ParsedDoc) {
	reasons, score := a.Analyze(pair, doc)
	pair.DriftReasons = reasons
	pair.DriftScore = score
	pair.LastAnalyzed = time.Now().UTC()
}

// analyzeParameters is step A: documented vs declared parameter names and types.
func (a *Analyzer) analyzeParameters(sig *models.CodeSignature, doc *models.ParsedDoc) []models.DriftReason {
	var reasons []models.DriftReason

	// Receiver parameters (self, cls, Go receivers) are never documented.
	var codeParams []models.ParameterInfo
	for _, p := range sig.Parameters {
		if p.IsReceiver {
			continue
		}
		codeParams = append(codeParams, p)
	}

	codeNames := make([]string, len(codeParams))
	codeSet := make(map[string]models.ParameterInfo, len(codeParams))
	for i, p := range codeParams {
		codeNames[i] = p.Name
		codeSet[strings.ToLower(p.Name)] = p
	}
	docSet := make(map[string]models.DocParam, len(doc.Params))
	for _, p := range doc.Params {
		docSet[strings.ToLower(p.Name)] = p
	}

	// Documented names missing from the code: a close fuzzy match suggests a
	// rename, otherwise the parameter was removed. Matching is greedy per
	// documented name; simultaneous similar renames can mis-pair, which is
	// accepted heuristic scope. A rename claims its code name, which must not
	// also count as an undocumented addition.
	renamed := make(map[string]bool)
	for _, dp := range doc.Params {
		if _, ok := codeSet[strings.ToLower(dp.Name)]; ok {
			continue
		}
		if closest, ok := match.ClosestName(strings.ToLower(dp.Name), lowered(codeNames), a.config.MaxRenameDistance); ok {
			actual := codeSet[closest].Name
			renamed[closest] = true
			reasons = append(reasons, models.DriftReason{
				Type:     models.DriftParameterRenamed,
				Severity: models.SeverityMedium,
				Message:  fmt.Sprintf("documented parameter %q appears to be renamed to %q", dp.Name, actual),
				Details:  fmt.Sprintf("closest declared parameter: %s", actual),
			})
			continue
		}
		reasons = append(reasons, models.DriftReason{
			Type:     models.DriftParameterRemoved,
			Severity: models.SeverityHigh,
			Message:  fmt.Sprintf("documented parameter %q no longer exists in the code", dp.Name),
		})
	}

	// Declared names missing from the documentation. Single-letter names are
	// conventionally undocumented (loop counters promoted to parameters etc.).
	for _, cp := range codeParams {
		if len(cp.Name) <= 1 || renamed[strings.ToLower(cp.Name)] {
			continue
		}
		if _, ok := docSet[strings.ToLower(cp.Name)]; !ok {
			reasons = append(reasons, models.DriftReason{
				Type:     models.DriftParameterAdded,
				Severity: models.SeverityMedium,
				Message:  fmt.Sprintf("parameter %q is not documented", cp.Name),
			})
		}
	}

	// Type agreement for names present on both sides.
	for _, dp := range doc.Params {
		cp, ok := codeSet[strings.ToLower(dp.Name)]
		if !ok || dp.Type == "" || cp.Type == "" {
			continue
		}
		if !typesEquivalent(dp.Type, cp.Type) {
			reasons = append(reasons, models.DriftReason{
				Type:     models.DriftParameterMismatch,
				Severity: models.SeverityMedium,
				Message:  fmt.Sprintf("parameter %q is documented as %q but declared as %q", dp.Name, dp.Type, cp.Type),
			})
		}
	}

	return reasons
}

// analyzeReturnType is step B: documented vs declared return type.
func (a *Analyzer) analyzeReturnType(sig *models.CodeSignature, doc *models.ParsedDoc) []models.DriftReason {
	if doc.Returns == nil || doc.Returns.Type == "" {
		return nil
	}
	if sig.ReturnType != "" {
		if typesEquivalent(doc.Returns.Type, sig.ReturnType) {
			return nil
		}
		return []models.DriftReason{{
			Type:     models.DriftReturnTypeMismatch,
			Severity: models.SeverityMedium,
			Message:  fmt.Sprintf("return type documented as %q but declared as %q", doc.Returns.Type, sig.ReturnType),
		}}
	}
	if isVoidType(doc.Returns.Type) {
		return nil
	}
	return []models.DriftReason{{
		Type:     models.DriftReturnTypeMismatch,
		Severity: models.SeverityLow,
		Message:  fmt.Sprintf("documentation declares return type %q but the signature declares none", doc.Returns.Type),
	}}
}

// analyzeDescription is step C: identifier-like tokens in the description that
// no longer appear in the code body. Only near-misses (a close fuzzy match to
// a real identifier) are reported, so ordinary prose never floods the output.
func (a *Analyzer) analyzeDescription(pair *models.DocCodePair, doc *models.ParsedDoc) []models.DriftReason {
	if doc.Description == "" || pair.CodeContent == "" {
		return nil
	}
	identSet := codeIdentifiers(pair.CodeContent, pair.Language)
	idents := make([]string, 0, len(identSet))
	for id := range identSet {
		idents = append(idents, id)
	}
	sort.Strings(idents) // map order is random; fuzzy candidates must be stable

	var reasons []models.DriftReason
	for _, tok := range descriptionTokens(doc.Description) {
		if len(tok) <= 2 {
			continue
		}
		if identSet[strings.ToLower(tok)] {
			continue
		}
		if closest, ok := match.ClosestName(strings.ToLower(tok), idents, a.config.MaxRenameDistance); ok {
			reasons = append(reasons, models.DriftReason{
				Type:     models.DriftDescriptionMismatch,
				Severity: models.SeverityLow,
				Message:  fmt.Sprintf("description references %q which is not in the code; closest identifier is %q", tok, closest),
			})
		}
	}
	return reasons
}

// aggregate is step D: weighted sum of reasons, clamped to [0,1].
func (a *Analyzer) aggregate(reasons []models.DriftReason) float64 {
	score := 0.0
	for _, r := range reasons {
		score += a.config.baseWeight(r.Type) * a.config.severityMultiplier(r.Severity)
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
