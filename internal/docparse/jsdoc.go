package docparse

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

var (
	// @param {Type} name desc   |   @param {Type} [name=default] desc
	jsParamBracedRe = regexp.MustCompile(`^\{([^}]*)\}\s*(\[?[\w$.]+(?:=[^\]]*)?\]?)\s*-?\s*(.*)$`)
	// @param name {Type} desc
	jsParamTrailingRe = regexp.MustCompile(`^(\[?[\w$.]+(?:=[^\]]*)?\]?)\s*\{([^}]*)\}\s*-?\s*(.*)$`)
	// @param name desc (no type at all)
	jsParamBareRe = regexp.MustCompile(`^(\[?[\w$.]+(?:=[^\]]*)?\]?)\s*-?\s*(.*)$`)

	jsReturnRe = regexp.MustCompile(`^(?:\{([^}]*)\}\s*)?-?\s*(.*)$`)
)

// parseJSDoc parses a /** ... */ block with @-tags. Three coexisting @param
// notations are recognized and merged without duplicates: braced-type-first,
// trailing-braced-type, and untyped.
func parseJSDoc(text string) models.ParsedDoc {
	var doc models.ParsedDoc
	lines := stripCommentMarkers(text)
	var descLines []string
	tag, value := "", ""

	flush := func() {
		if tag == "" {
			return
		}
		applyJSDocTag(&doc, tag, strings.TrimSpace(value))
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
			// Continuation of the current tag's text.
			value += " " + trimmed
			continue
		}
		descLines = append(descLines, line)
	}
	flush()

	doc.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	return doc
}

func applyJSDocTag(doc *models.ParsedDoc, tag, value string) {
	switch tag {
	case "param", "arg", "argument":
		if p, ok := parseJSDocParam(value); ok {
			addParam(doc, p)
		}
	case "returns", "return":
		if m := jsReturnRe.FindStringSubmatch(value); m != nil {
			setReturn(doc, models.DocReturn{Type: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[2])})
		}
	case "throws", "exception":
		t := models.DocThrows{Description: value}
		if m := jsReturnRe.FindStringSubmatch(value); m != nil && m[1] != "" {
			t.Type = strings.TrimSpace(m[1])
			t.Description = strings.TrimSpace(m[2])
		}
		doc.Throws = append(doc.Throws, t)
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

func parseJSDocParam(value string) (models.DocParam, bool) {
	var name, typ, desc string
	switch {
	case strings.HasPrefix(value, "{"):
		m := jsParamBracedRe.FindStringSubmatch(value)
		if m == nil {
			return models.DocParam{}, false
		}
		typ, name, desc = m[1], m[2], m[3]
	default:
		if m := jsParamTrailingRe.FindStringSubmatch(value); m != nil {
			name, typ, desc = m[1], m[2], m[3]
		} else if m := jsParamBareRe.FindStringSubmatch(value); m != nil {
			name, desc = m[1], m[2]
		} else {
			return models.DocParam{}, false
		}
	}
	p := models.DocParam{Type: strings.TrimSpace(typ), Description: strings.TrimSpace(desc)}
	// Square brackets mark optional parameters, possibly with a default.
	if strings.HasPrefix(name, "[") {
		p.IsOptional = true
		name = strings.Trim(name, "[]")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
	}
	// Drop property paths like options.verbose; the root name is the parameter.
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		return models.DocParam{}, false
	}
	p.Name = strings.TrimSpace(name)
	return p, p.Name != ""
}

// stripCommentMarkers removes /** */ delimiters and leading * or // from each line.
func stripCommentMarkers(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "/**")
		trimmed = strings.TrimSuffix(trimmed, "*/")
		trimmed = strings.TrimSpace(trimmed)
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
		out = append(out, trimmed)
	}
	return out
}
