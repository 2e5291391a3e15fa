package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/driftlens/driftlens/internal/models"
)

// GoExtractor pairs godoc comment blocks (consecutive // lines) with the
// declaration that follows. Go grouped parameters sharing one trailing type
// ("a, b int") are expanded so every name carries the type.
type GoExtractor struct{}

// NewGoExtractor returns a new GoExtractor.
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

func (e *GoExtractor) Language() string { return "go" }

func (e *GoExtractor) Extensions() []string { return []string{".go"} }

var (
	goFuncRe = regexp.MustCompile(`^func\s*(?:\(\s*(\w+)\s+([*\w.\[\]]+)\s*\)\s*)?([A-Za-z_]\w*)\s*(?:\[[^\]]*\]\s*)?\(`)
	goTypeRe = regexp.MustCompile(`^type\s+([A-Za-z_]\w*)(?:\[[^\]]*\])?\s+(struct|interface|func)?`)
	goVarRe  = regexp.MustCompile(`^(?:var|const)\s+([A-Za-z_]\w*)`)
)

// ExtractPairs scans Go source and returns doc-code pairs in order.
func (e *GoExtractor) ExtractPairs(filePath, content string) []models.DocCodePair {
	lines := splitLines(content)
	var pairs []models.DocCodePair
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "//go:") {
			i++
			continue
		}
		// Collect the contiguous comment block.
		start := i
		for i < len(lines) {
			t := strings.TrimSpace(lines[i])
			if !strings.HasPrefix(t, "//") {
				break
			}
			i++
		}
		end := i - 1
		// Godoc convention: the declaration follows immediately, no blank line.
		if i >= len(lines) || strings.TrimSpace(lines[i]) == "" {
			continue
		}
		declLine := i
		header, headerEnd := joinSignature(lines, declLine)
		sig, ok := parseGoDeclaration(header)
		if !ok {
			continue
		}
		codeEnd := declBlockEnd(lines, declLine, headerEnd)
		cm := blockComment{start: start, end: end, text: strings.Join(lines[start:end+1], "\n")}
		pairs = append(pairs, buildPair(filePath, e.Language(), lines, cm, declLine, codeEnd, models.DocStyleGodoc, sig))
		i = codeEnd + 1
	}
	return pairs
}

// parseGoDeclaration normalizes one joined Go declaration header.
func parseGoDeclaration(header string) (models.CodeSignature, bool) {
	header = strings.TrimSpace(header)

	if idx := goFuncRe.FindStringSubmatchIndex(header); idx != nil {
		m := goFuncRe.FindStringSubmatch(header)
		sig := models.CodeSignature{Name: m[3], Type: models.KindFunction}
		if m[1] != "" {
			sig.Type = models.KindMethod
			sig.Parameters = append(sig.Parameters, models.ParameterInfo{
				Name:       m[1],
				Type:       m[2],
				IsReceiver: true,
			})
		}
		if isExportedGoName(m[3]) {
			sig.Modifiers = append(sig.Modifiers, "exported")
		}
		// The parameter list is the paren group after the name, not the receiver.
		rest := header[idx[7]:]
		if raw, ok := innerParens(rest); ok {
			sig.Parameters = append(sig.Parameters, parseGoParams(raw)...)
		}
		if after, ok := afterParams(rest); ok {
			sig.ReturnType = goReturnType(after)
		}
		return sig, true
	}
	if m := goTypeRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[1], Type: models.KindType}
		if m[2] == "interface" {
			sig.Type = models.KindInterface
		}
		if isExportedGoName(m[1]) {
			sig.Modifiers = append(sig.Modifiers, "exported")
		}
		return sig, true
	}
	if m := goVarRe.FindStringSubmatch(header); m != nil {
		sig := models.CodeSignature{Name: m[1], Type: models.KindVariable}
		if isExportedGoName(m[1]) {
			sig.Modifiers = append(sig.Modifiers, "exported")
		}
		return sig, true
	}
	return models.CodeSignature{}, false
}

// parseGoParams expands a Go parameter list, assigning a group's trailing type
// to every name in the group: "a, b int, c string" yields a:int, b:int, c:string.
func parseGoParams(raw string) []models.ParameterInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []models.ParameterInfo
	var pending []string
	for _, part := range splitTopLevel(raw, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := splitTopLevelFields(part)
		switch {
		case len(fields) == 1:
			// Bare name awaiting a shared type from a later group member.
			pending = append(pending, fields[0])
		default:
			name := fields[0]
			typ := strings.Join(fields[1:], " ")
			isRest := strings.HasPrefix(typ, "...")
			typ = strings.TrimPrefix(typ, "...")
			for _, p := range pending {
				params = append(params, models.ParameterInfo{Name: p, Type: typ})
			}
			pending = nil
			params = append(params, models.ParameterInfo{Name: name, Type: typ, IsRest: isRest})
		}
	}
	// Names with no type anywhere (e.g. an unnamed-type heuristic miss): keep
	// the names, leave types absent.
	for _, p := range pending {
		params = append(params, models.ParameterInfo{Name: p})
	}
	return params
}

// splitTopLevelFields splits on spaces outside (), [], {}, and <>, so
// bracketed and generic types stay whole while name and type separate.
func splitTopLevelFields(s string) []string {
	var fields []string
	depth := 0
	angle := 0
	start := -1
	for i, c := range s {
		switch c {
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
		}
		if c == ' ' && depth == 0 && angle == 0 {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// goReturnType extracts the result clause between the parameter list and the body.
func goReturnType(after string) string {
	after = strings.TrimSpace(after)
	if idx := strings.IndexByte(after, '{'); idx >= 0 {
		after = after[:idx]
	}
	return strings.TrimSpace(after)
}

func isExportedGoName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
