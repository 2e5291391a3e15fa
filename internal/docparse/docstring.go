package docparse

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

var (
	googleSectionRe = regexp.MustCompile(`^(Args|Arguments|Parameters|Returns|Return|Yields|Raises|Attributes|Examples?|Notes?)\s*:\s*$`)
	googleEntryRe   = regexp.MustCompile(`^([\w*]+)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)

	sphinxParamRe  = regexp.MustCompile(`^:param\s+(?:([\w.\[\]]+)\s+)?(\w+)\s*:\s*(.*)$`)
	sphinxTypeRe   = regexp.MustCompile(`^:type\s+(\w+)\s*:\s*(.*)$`)
	sphinxReturnRe = regexp.MustCompile(`^:returns?\s*:\s*(.*)$`)
	sphinxRtypeRe  = regexp.MustCompile(`^:rtype\s*:\s*(.*)$`)
	sphinxRaisesRe = regexp.MustCompile(`^:raises?\s+([\w.]+)\s*:\s*(.*)$`)

	numpyHeaderRe    = regexp.MustCompile(`^(Parameters|Returns|Raises|Yields)\s*$`)
	numpyUnderlineRe = regexp.MustCompile(`^-{3,}\s*$`)
	numpyEntryRe     = regexp.MustCompile(`^([\w*]+)\s*:\s*(.*)$`)
	numpyTypeLineRe  = regexp.MustCompile(`^[\w.\[\]]+$`)
)

// parseDocstring parses a Python docstring. Google, Sphinx, and NumPy section
// conventions legally coexist in the wild; all three are recognized in one
// pass and merged, first occurrence of a parameter winning and later
// conventions refining a missing type.
func parseDocstring(text string) models.ParsedDoc {
	var doc models.ParsedDoc
	lines := stripDocstringQuotes(text)

	var descLines []string
	section := "" // current Google/NumPy section, lowercased
	numpy := false
	descDone := false

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		// Sphinx field lines are recognized anywhere.
		if strings.HasPrefix(trimmed, ":") {
			descDone = true
			section = ""
			if m := sphinxParamRe.FindStringSubmatch(trimmed); m != nil {
				addParam(&doc, models.DocParam{Name: m[2], Type: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[3])})
				continue
			}
			if m := sphinxTypeRe.FindStringSubmatch(trimmed); m != nil {
				addParam(&doc, models.DocParam{Name: m[1], Type: strings.TrimSpace(m[2])})
				continue
			}
			if m := sphinxReturnRe.FindStringSubmatch(trimmed); m != nil {
				setReturn(&doc, models.DocReturn{Description: strings.TrimSpace(m[1])})
				continue
			}
			if m := sphinxRtypeRe.FindStringSubmatch(trimmed); m != nil {
				setReturn(&doc, models.DocReturn{Type: strings.TrimSpace(m[1])})
				continue
			}
			if m := sphinxRaisesRe.FindStringSubmatch(trimmed); m != nil {
				doc.Throws = append(doc.Throws, models.DocThrows{Type: m[1], Description: strings.TrimSpace(m[2])})
				continue
			}
			doc.OtherTags = append(doc.OtherTags, models.DocTag{Name: strings.Trim(trimmed, ":"), Value: ""})
			continue
		}

		// Google section headers: "Args:", "Returns:", ...
		if m := googleSectionRe.FindStringSubmatch(trimmed); m != nil {
			descDone = true
			section = strings.ToLower(m[1])
			numpy = false
			continue
		}
		// NumPy section headers: "Parameters" followed by a dashed underline.
		if m := numpyHeaderRe.FindStringSubmatch(trimmed); m != nil &&
			i+1 < len(lines) && numpyUnderlineRe.MatchString(strings.TrimSpace(lines[i+1])) {
			descDone = true
			section = strings.ToLower(m[1])
			numpy = true
			i++ // skip the underline
			continue
		}

		if section != "" && trimmed != "" {
			applyDocstringSectionLine(&doc, section, trimmed, numpy)
			continue
		}
		if trimmed == "" {
			if section != "" {
				continue // blank lines inside a section do not end it
			}
			descLines = append(descLines, "")
			continue
		}
		if !descDone {
			descLines = append(descLines, trimmed)
		}
	}

	doc.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	return doc
}

func applyDocstringSectionLine(doc *models.ParsedDoc, section, line string, numpy bool) {
	switch section {
	case "args", "arguments", "parameters":
		m := googleEntryRe.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous entry's description.
			if n := len(doc.Params); n > 0 {
				doc.Params[n-1].Description = strings.TrimSpace(doc.Params[n-1].Description + " " + line)
			}
			return
		}
		name := strings.TrimLeft(m[1], "*")
		if name == "" {
			return
		}
		p := models.DocParam{Name: name, Type: strings.TrimSpace(m[2]), Description: strings.TrimSpace(m[3])}
		if numpy && p.Type == "" {
			// NumPy writes "name : type" with the description on following lines.
			p.Type = strings.TrimSpace(m[3])
			p.Description = ""
		}
		if strings.Contains(p.Type, "optional") {
			p.IsOptional = true
			p.Type = strings.TrimSpace(strings.TrimSuffix(strings.Split(p.Type, ",")[0], ","))
		}
		addParam(doc, p)
	case "returns", "return", "yields":
		// "type: desc" when the prefix looks like a type, otherwise plain desc.
		if m := numpyEntryRe.FindStringSubmatch(line); m != nil && !strings.Contains(m[1], " ") {
			setReturn(doc, models.DocReturn{Type: m[1], Description: strings.TrimSpace(m[2])})
			return
		}
		// NumPy puts the return type alone on the first line of the section.
		if numpy && doc.Returns == nil && numpyTypeLineRe.MatchString(line) {
			setReturn(doc, models.DocReturn{Type: line})
			return
		}
		setReturn(doc, models.DocReturn{Description: line})
	case "raises":
		if m := numpyEntryRe.FindStringSubmatch(line); m != nil {
			doc.Throws = append(doc.Throws, models.DocThrows{Type: m[1], Description: strings.TrimSpace(m[2])})
			return
		}
		if n := len(doc.Throws); n > 0 {
			doc.Throws[n-1].Description = strings.TrimSpace(doc.Throws[n-1].Description + " " + line)
		}
	default:
		doc.OtherTags = append(doc.OtherTags, models.DocTag{Name: section, Value: line})
	}
}

// stripDocstringQuotes removes triple-quote delimiters and common indentation.
func stripDocstringQuotes(text string) []string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "r")
	for _, q := range []string{`"""`, `'''`} {
		trimmed = strings.TrimPrefix(trimmed, q)
		trimmed = strings.TrimSuffix(trimmed, q)
	}
	lines := strings.Split(trimmed, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}
