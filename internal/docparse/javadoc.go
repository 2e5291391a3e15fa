package docparse

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

var (
	javadocParamRe  = regexp.MustCompile(`^(<\w+>|\w+)\s*(.*)$`)
	javadocThrowsRe = regexp.MustCompile(`^([\w.]+)\s*(.*)$`)
	javadocInlineRe = regexp.MustCompile(`\{@(?:code|link|linkplain|literal)\s+([^}]*)\}`)
)

// parseJavadoc parses a /** ... */ Javadoc block. Javadoc @param carries no
// type (types live in the signature); {@code} and {@link} inline tags are
// unwrapped so their content survives into descriptions.
func parseJavadoc(text string) models.ParsedDoc {
	var doc models.ParsedDoc
	lines := stripCommentMarkers(text)
	var descLines []string
	tag, value := "", ""

	flush := func() {
		if tag == "" {
			return
		}
		applyJavadocTag(&doc, tag, strings.TrimSpace(unwrapInlineTags(value)))
		tag, value = "", ""
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			flush()
			fields := strings.SplitN(trimmed, " ", 2)
			tag = strings.TrimPrefix(fields[0], "@")
			if len(fields) > 1 {
				value = fields[1]
			}
			continue
		}
		if tag != "" {
			value += " " + trimmed
			continue
		}
		descLines = append(descLines, unwrapInlineTags(line))
	}
	flush()

	doc.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	return doc
}

func applyJavadocTag(doc *models.ParsedDoc, tag, value string) {
	switch tag {
	case "param":
		m := javadocParamRe.FindStringSubmatch(value)
		if m == nil {
			return
		}
		name := m[1]
		// Type parameters like <T> are documentation for generics, not
		// runtime parameters.
		if strings.HasPrefix(name, "<") {
			doc.OtherTags = append(doc.OtherTags, models.DocTag{Name: "param", Value: value})
			return
		}
		addParam(doc, models.DocParam{Name: name, Description: strings.TrimSpace(m[2])})
	case "return", "returns":
		setReturn(doc, models.DocReturn{Description: value})
	case "throws", "exception":
		if m := javadocThrowsRe.FindStringSubmatch(value); m != nil {
			doc.Throws = append(doc.Throws, models.DocThrows{Type: m[1], Description: strings.TrimSpace(m[2])})
		}
	case "deprecated":
		if value == "" {
			value = "deprecated"
		}
		doc.Deprecated = value
	case "since":
		doc.Since = value
	default:
		doc.OtherTags = append(doc.OtherTags, models.DocTag{Name: tag, Value: value})
	}
}

func unwrapInlineTags(s string) string {
	return javadocInlineRe.ReplaceAllString(s, "$1")
}
