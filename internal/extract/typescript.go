package extract

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
	"github.com/driftlens/driftlens/internal/pairid"
)

// TypeScriptExtractor pairs JSDoc blocks with the TypeScript declaration that
// follows them. Decorator lines between the block and the declaration are
// skipped without breaking the association.
type TypeScriptExtractor struct{}

// NewTypeScriptExtractor returns a new TypeScriptExtractor.
func NewTypeScriptExtractor() *TypeScriptExtractor {
	return &TypeScriptExtractor{}
}

func (e *TypeScriptExtractor) Language() string { return "typescript" }

func (e *TypeScriptExtractor) Extensions() []string { return []string{".ts", ".tsx"} }

var (
	tsDecoratorRe = regexp.MustCompile(`^@[\w$]+`)

	tsFunctionRe  = regexp.MustCompile(`^(export\s+)?(default\s+)?(declare\s+)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*(?:<[^(]*>)?\s*\(`)
	tsArrowRe     = regexp.MustCompile(`^(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::\s*[^=]+?)?\s*=\s*(async\s+)?\(`)
	tsClassRe     = regexp.MustCompile(`^(export\s+)?(default\s+)?(abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	tsInterfaceRe = regexp.MustCompile(`^(export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	tsTypeRe      = regexp.MustCompile(`^(export\s+)?type\s+([A-Za-z_$][\w$]*)`)
	tsEnumRe      = regexp.MustCompile(`^(export\s+)?(const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	tsVariableRe  = regexp.MustCompile(`^(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::\s*([^=;]+?))?\s*(?:=|;|$)`)
	tsMethodRe    = regexp.MustCompile(`^((?:public|private|protected)\s+)?((?:static)\s+)?((?:async)\s+)?((?:readonly)\s+)?(?:get\s+|set\s+)?([A-Za-z_$][\w$]*)\s*(?:<[^(]*>)?\s*\(`)
	tsReturnRe    = regexp.MustCompile(`^\s*:\s*([^{]+?)\s*(?:\{|$)`)
	tsArrowRetRe  = regexp.MustCompile(`^\s*:\s*(.+?)\s*=>`)

	// statement keywords that look like method calls when followed by (
	tsKeywordBlocklist = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true, "catch": true,
		"return": true, "new": true, "typeof": true, "await": true, "constructor": false,
	}
)

// ExtractPairs scans TypeScript source and returns doc-code pairs in order.
func (e *TypeScriptExtractor) ExtractPairs(filePath, content string) []models.DocCodePair {
	return extractJSDocPairs(filePath, content, e.Language(), true)
}

// extractJSDocPairs is shared between the TypeScript and JavaScript
// extractors; typed controls whether type annotations are expected.
func extractJSDocPairs(filePath, content, language string, typed bool) []models.DocCodePair {
	lines := splitLines(content)
	var pairs []models.DocCodePair
	for _, cm := range scanBlockComments(lines) {
		declLine := nextDeclLine(lines, cm.end+1, tsDecoratorRe)
		if declLine < 0 {
			continue
		}
		header, headerEnd := joinSignature(lines, declLine)
		sig, ok := parseTSDeclaration(header, typed)
		if !ok {
			continue
		}
		codeEnd := declBlockEnd(lines, declLine, headerEnd)
		pairs = append(pairs, buildPair(filePath, language, lines, cm, declLine, codeEnd, models.DocStyleJSDoc, sig))
	}
	return pairs
}

// buildPair assembles a DocCodePair from resolved spans. The declaration hash
// covers the whitespace-normalized code span.
func buildPair(filePath, language string, lines []string, cm blockComment, declLine, codeEnd int, style models.DocStyle, sig models.CodeSignature) models.DocCodePair {
	codeContent := strings.Join(lines[declLine:codeEnd+1], "\n")
	sig.Hash = hashDeclaration(codeContent)
	return models.DocCodePair{
		ID:       pairid.PairID(filePath, declLine),
		FilePath: filePath,
		Language: language,
		DocRange: models.Span{
			Start: models.Position{Line: cm.start, Col: 0},
			End:   models.Position{Line: cm.end, Col: len(lines[cm.end])},
		},
		DocContent: cm.text,
		DocType:    style,
		CodeRange: models.Span{
			Start: models.Position{Line: declLine, Col: 0},
			End:   models.Position{Line: codeEnd, Col: len(lines[codeEnd])},
		},
		CodeContent:   codeContent,
		CodeSignature: sig,
	}
}

// parseTSDeclaration normalizes one joined declaration header into a signature.
// Matchers run in fixed order so the same header always classifies the same way.
func parseTSDeclaration(header string, typed bool) (models.CodeSignature, bool) {
	header = strings.TrimSpace(header)

	if m := tsFunctionRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[5], Type: models.KindFunction}
		addModifiers(&sig, m[1], "export")
		addModifiers(&sig, m[2], "default")
		addModifiers(&sig, m[4], "async")
		sig.Parameters = parseTSParams(header, typed)
		sig.ReturnType = tsReturnType(header)
		return sig, true
	}
	if m := tsArrowRe.FindStringSubmatch(header); m != nil && strings.Contains(header, "=>") {
		sig := models.CodeSignature{Name: m[2], Type: models.KindFunction}
		addModifiers(&sig, m[1], "export")
		addModifiers(&sig, m[3], "async")
		sig.Parameters = parseTSParams(header, typed)
		if rest, ok := afterParams(header); ok {
			if rm := tsArrowRetRe.FindStringSubmatch(rest); rm != nil {
				sig.ReturnType = strings.TrimSpace(rm[1])
			}
		}
		return sig, true
	}
	if m := tsClassRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[4], Type: models.KindClass}
		addModifiers(&sig, m[1], "export")
		addModifiers(&sig, m[3], "abstract")
		return sig, true
	}
	if m := tsInterfaceRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[2], Type: models.KindInterface}
		addModifiers(&sig, m[1], "export")
		return sig, true
	}
	if m := tsEnumRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[3], Type: models.KindType}
		addModifiers(&sig, m[1], "export")
		return sig, true
	}
	if m := tsTypeRe.FindStringSubmatch(header); m != nil && typed {
		sig := models.CodeSignature{Name: m[2], Type: models.KindType}
		addModifiers(&sig, m[1], "export")
		return sig, true
	}
	if m := tsMethodRe.FindStringSubmatch(header); m != nil && looksLikeTSMethod(header, m[5]) {
		sig := models.CodeSignature{Name: m[5], Type: models.KindMethod}
		addModifiers(&sig, m[1], strings.TrimSpace(m[1]))
		addModifiers(&sig, m[2], "static")
		addModifiers(&sig, m[3], "async")
		addModifiers(&sig, m[4], "readonly")
		sig.Parameters = parseTSParams(header, typed)
		sig.ReturnType = tsReturnType(header)
		return sig, true
	}
	if m := tsVariableRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[2], Type: models.KindVariable}
		addModifiers(&sig, m[1], "export")
		if len(m) > 3 && typed {
			sig.ReturnType = strings.TrimSpace(m[3])
		}
		return sig, true
	}
	return models.CodeSignature{}, false
}

// looksLikeTSMethod rejects control-flow statements and call expressions that
// superficially match the method pattern.
func looksLikeTSMethod(header, name string) bool {
	if tsKeywordBlocklist[name] {
		return false
	}
	rest, ok := afterParams(header)
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	// A method signature continues with a return annotation, a body, or (for
	// interface members and overloads) a semicolon; a call expression does not.
	return strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "{") || rest == ";" || rest == ""
}

// afterParams returns the header text following the first balanced paren group.
func afterParams(header string) (string, bool) {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(header); i++ {
		switch header[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return header[i+1:], true
			}
		}
	}
	return "", false
}

func tsReturnType(header string) string {
	rest, ok := afterParams(header)
	if !ok {
		return ""
	}
	if m := tsReturnRe.FindStringSubmatch(rest); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseTSParams parses the parameter list of a TS/JS declaration header.
// Destructuring patterns have no single name and are skipped; the analyzer
// treats missing names as undocumentable rather than drifted.
func parseTSParams(header string, typed bool) []models.ParameterInfo {
	raw, ok := innerParens(header)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	var params []models.ParameterInfo
	for _, part := range splitTopLevel(raw, ',') {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "{") || strings.HasPrefix(part, "[") {
			continue
		}
		p := models.ParameterInfo{}
		if strings.HasPrefix(part, "...") {
			p.IsRest = true
			part = strings.TrimPrefix(part, "...")
		}
		// default value
		if eq := topLevelAssignIndex(part); eq >= 0 {
			p.DefaultValue = strings.TrimSpace(part[eq+1:])
			p.IsOptional = true
			part = strings.TrimSpace(part[:eq])
		}
		if typed {
			if colon := topLevelIndex(part, ':'); colon >= 0 {
				p.Type = strings.TrimSpace(part[colon+1:])
				part = strings.TrimSpace(part[:colon])
			}
		}
		if strings.HasSuffix(part, "?") {
			p.IsOptional = true
			part = strings.TrimSuffix(part, "?")
		}
		name := strings.TrimSpace(part)
		if name == "" || !identRe.MatchString(name) {
			continue
		}
		p.Name = name
		params = append(params, p)
	}
	return params
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// topLevelAssignIndex returns the index of the first assignment '=' not nested
// in brackets. Arrow ("=>") and comparison ("==", ">=", "<=", "!=") operators
// inside type expressions or defaults are not assignments.
func topLevelAssignIndex(s string) int {
	for i := topLevelIndex(s, '='); i >= 0; {
		if (i+1 >= len(s) || (s[i+1] != '>' && s[i+1] != '=')) &&
			(i == 0 || (s[i-1] != '<' && s[i-1] != '>' && s[i-1] != '!' && s[i-1] != '=')) {
			return i
		}
		next := topLevelIndex(s[i+1:], '=')
		if next < 0 {
			return -1
		}
		i = i + 1 + next
	}
	return -1
}

// topLevelIndex returns the index of the first sep not nested in brackets.
func topLevelIndex(s string, sep byte) int {
	depth := 0
	angle := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		case sep:
			if depth == 0 && angle == 0 {
				return i
			}
		}
	}
	return -1
}

// addModifiers appends name when the matched group is non-empty.
func addModifiers(sig *models.CodeSignature, matched, name string) {
	if strings.TrimSpace(matched) != "" && name != "" {
		sig.Modifiers = append(sig.Modifiers, name)
	}
}
