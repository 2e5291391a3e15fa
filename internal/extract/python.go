package extract

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
	"github.com/driftlens/driftlens/internal/pairid"
)

// PythonExtractor pairs docstrings with the def or class they document.
// Python puts the docstring inside the declaration body, so the doc span nests
// at the top of the code span; the pair is anchored at the declaration line.
// Bodies are indentation-delimited.
type PythonExtractor struct{}

// NewPythonExtractor returns a new PythonExtractor.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

func (e *PythonExtractor) Language() string { return "python" }

func (e *PythonExtractor) Extensions() []string { return []string{".py", ".pyi"} }

var (
	pyDefRe   = regexp.MustCompile(`^\s*(async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClassRe = regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)
	pyDecoRe  = regexp.MustCompile(`^\s*@[\w.]+`)
	pyRetRe   = regexp.MustCompile(`->\s*([^:]+?)\s*:\s*$`)
)

// ExtractPairs scans Python source and returns doc-code pairs in order.
func (e *PythonExtractor) ExtractPairs(filePath, content string) []models.DocCodePair {
	lines := splitLines(content)
	var pairs []models.DocCodePair
	for i := 0; i < len(lines); i++ {
		isDef := pyDefRe.MatchString(lines[i])
		isClass := !isDef && pyClassRe.MatchString(lines[i])
		if !isDef && !isClass {
			continue
		}
		declLine := i
		header, headerEnd := joinSignature(lines, declLine)
		doc, ok := pyDocstring(lines, headerEnd+1, indentWidth(lines[declLine]))
		if !ok {
			// Undocumented declarations are silently skipped.
			i = headerEnd
			continue
		}
		sig, ok := parsePyDeclaration(header, lines, declLine, isClass)
		if !ok {
			i = headerEnd
			continue
		}
		codeEnd := blockEndByIndent(lines, declLine)
		codeContent := strings.Join(lines[declLine:codeEnd+1], "\n")
		sig.Hash = hashDeclaration(codeContent)
		pairs = append(pairs, models.DocCodePair{
			ID:       pairid.PairID(filePath, declLine),
			FilePath: filePath,
			Language: e.Language(),
			DocRange: models.Span{
				Start: models.Position{Line: doc.start, Col: 0},
				End:   models.Position{Line: doc.end, Col: len(lines[doc.end])},
			},
			DocContent: doc.text,
			DocType:    models.DocStyleDocstring,
			CodeRange: models.Span{
				Start: models.Position{Line: declLine, Col: 0},
				End:   models.Position{Line: codeEnd, Col: len(lines[codeEnd])},
			},
			CodeContent:   codeContent,
			CodeSignature: sig,
		})
		// Continue inside the body: nested defs and methods get their own pairs.
	}
	return pairs
}

// pyDocstring finds a docstring starting at or after line from, provided it is
// the first statement of the block (indented deeper than the declaration).
func pyDocstring(lines []string, from int, declIndent int) (blockComment, bool) {
	i := from
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) || indentWidth(lines[i]) <= declIndent {
		return blockComment{}, false
	}
	trimmed := strings.TrimSpace(lines[i])
	quote := ""
	switch {
	case strings.HasPrefix(trimmed, `"""`), strings.HasPrefix(trimmed, `r"""`):
		quote = `"""`
	case strings.HasPrefix(trimmed, `'''`), strings.HasPrefix(trimmed, `r'''`):
		quote = `'''`
	default:
		return blockComment{}, false
	}
	body := strings.TrimPrefix(trimmed, "r")
	// One-line docstring: """text"""
	if rest := body[len(quote):]; strings.Contains(rest, quote) {
		return blockComment{start: i, end: i, text: lines[i]}, true
	}
	for j := i + 1; j < len(lines); j++ {
		if strings.Contains(lines[j], quote) {
			return blockComment{
				start: i,
				end:   j,
				text:  strings.Join(lines[i:j+1], "\n"),
			}, true
		}
	}
	return blockComment{}, false
}

// parsePyDeclaration normalizes a joined def or class header. Decorators
// directly above the declaration become modifiers.
func parsePyDeclaration(header string, lines []string, declLine int, isClass bool) (models.CodeSignature, bool) {
	header = strings.TrimSpace(header)
	if isClass {
		m := pyClassRe.FindStringSubmatch(header)
		if m == nil {
			return models.CodeSignature{}, false
		}
		sig := models.CodeSignature{Name: m[1], Type: models.KindClass}
		sig.Modifiers = pyDecorators(lines, declLine)
		return sig, true
	}
	m := pyDefRe.FindStringSubmatch(header)
	if m == nil {
		return models.CodeSignature{}, false
	}
	sig := models.CodeSignature{Name: m[2], Type: models.KindFunction}
	if indentWidth(lines[declLine]) > 0 {
		sig.Type = models.KindMethod
	}
	if strings.TrimSpace(m[1]) != "" {
		sig.Modifiers = append(sig.Modifiers, "async")
	}
	sig.Modifiers = append(sig.Modifiers, pyDecorators(lines, declLine)...)
	if raw, ok := innerParens(header); ok {
		sig.Parameters = parsePyParams(raw)
	}
	if rm := pyRetRe.FindStringSubmatch(header); rm != nil {
		sig.ReturnType = strings.TrimSpace(rm[1])
	}
	return sig, true
}

// pyDecorators collects decorator names on the contiguous lines above declLine.
func pyDecorators(lines []string, declLine int) []string {
	var decorators []string
	for i := declLine - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if !pyDecoRe.MatchString(trimmed) {
			break
		}
		name := strings.TrimPrefix(trimmed, "@")
		if idx := strings.IndexByte(name, '('); idx >= 0 {
			name = name[:idx]
		}
		decorators = append([]string{name}, decorators...)
	}
	return decorators
}

// parsePyParams parses a def parameter list. self and cls are receivers;
// *args and **kwargs are rest parameters; bare * and / markers are skipped.
func parsePyParams(raw string) []models.ParameterInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []models.ParameterInfo
	for i, part := range splitTopLevel(raw, ',') {
		part = strings.TrimSpace(part)
		if part == "" || part == "*" || part == "/" {
			continue
		}
		p := models.ParameterInfo{}
		if strings.HasPrefix(part, "*") {
			p.IsRest = true
			part = strings.TrimLeft(part, "*")
		}
		if eq := topLevelAssignIndex(part); eq >= 0 {
			p.DefaultValue = strings.TrimSpace(part[eq+1:])
			p.IsOptional = true
			part = strings.TrimSpace(part[:eq])
		}
		if colon := topLevelIndex(part, ':'); colon >= 0 {
			p.Type = strings.TrimSpace(part[colon+1:])
			part = strings.TrimSpace(part[:colon])
		}
		name := strings.TrimSpace(part)
		if name == "" || !identRe.MatchString(name) {
			continue
		}
		p.Name = name
		if i == 0 && (name == "self" || name == "cls") {
			p.IsReceiver = true
		}
		params = append(params, p)
	}
	return params
}
