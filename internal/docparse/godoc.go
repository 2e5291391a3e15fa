package docparse

import (
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

// parseGodoc parses a Go comment block. Godoc has no formal tag grammar, so
// the body is description; only the Deprecated: paragraph convention carries
// structure. Drift in godoc manifests as stale identifier references in
// prose, which the analyzer's description step covers.
func parseGodoc(text string) models.ParsedDoc {
	var doc models.ParsedDoc
	var descLines []string
	deprecated := false
	var deprecatedLines []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "//")
		trimmed = strings.TrimPrefix(trimmed, " ")
		if strings.HasPrefix(trimmed, "Deprecated:") {
			deprecated = true
			deprecatedLines = append(deprecatedLines, strings.TrimSpace(strings.TrimPrefix(trimmed, "Deprecated:")))
			continue
		}
		if deprecated {
			if trimmed == "" {
				deprecated = false
				continue
			}
			deprecatedLines = append(deprecatedLines, trimmed)
			continue
		}
		descLines = append(descLines, trimmed)
	}

	doc.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	if len(deprecatedLines) > 0 {
		doc.Deprecated = strings.TrimSpace(strings.Join(deprecatedLines, " "))
		if doc.Deprecated == "" {
			doc.Deprecated = "deprecated"
		}
	}
	return doc
}
