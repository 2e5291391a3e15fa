package extract

import (
	"regexp"
	"strings"

	"github.com/driftlens/driftlens/internal/models"
)

// JavaExtractor pairs Javadoc blocks with the method, constructor, or type
// declaration that follows. Annotation lines (@Override etc.) between the
// block and the declaration are skipped.
type JavaExtractor struct{}

// NewJavaExtractor returns a new JavaExtractor.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

func (e *JavaExtractor) Language() string { return "java" }

func (e *JavaExtractor) Extensions() []string { return []string{".java"} }

var (
	javaAnnotationRe = regexp.MustCompile(`^@\w+`)

	javaModifier = `(?:public|protected|private|abstract|final|static|synchronized|native|default|strictfp)`
	javaClassRe  = regexp.MustCompile(`^((?:` + javaModifier + `\s+)*)class\s+(\w+)`)
	javaIfaceRe  = regexp.MustCompile(`^((?:` + javaModifier + `\s+)*)(?:@)?interface\s+(\w+)`)
	javaEnumRe   = regexp.MustCompile(`^((?:` + javaModifier + `\s+)*)enum\s+(\w+)`)
	javaMethodRe = regexp.MustCompile(`^((?:` + javaModifier + `\s+)*)(?:<[^>]+>\s+)?([\w.]+(?:<[^(]*?>)?(?:\[\])*)\s+(\w+)\s*\(`)
	javaCtorRe   = regexp.MustCompile(`^((?:public|protected|private)\s+)?([A-Z]\w*)\s*\(`)
	javaFieldRe  = regexp.MustCompile(`^((?:` + javaModifier + `\s+)*)([\w.]+(?:<[^=;]*?>)?(?:\[\])*)\s+(\w+)\s*(?:=|;)`)

	javaKeywords = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true, "catch": true,
		"return": true, "new": true, "throw": true, "synchronized": true,
	}
)

// ExtractPairs scans Java source and returns doc-code pairs in order.
func (e *JavaExtractor) ExtractPairs(filePath, content string) []models.DocCodePair {
	lines := splitLines(content)
	var pairs []models.DocCodePair
	for _, cm := range scanBlockComments(lines) {
		declLine := nextDeclLine(lines, cm.end+1, javaAnnotationRe)
		if declLine < 0 {
			continue
		}
		header, headerEnd := joinSignature(lines, declLine)
		sig, ok := parseJavaDeclaration(header)
		if !ok {
			continue
		}
		codeEnd := declBlockEnd(lines, declLine, headerEnd)
		pairs = append(pairs, buildPair(filePath, e.Language(), lines, cm, declLine, codeEnd, models.DocStyleJavadoc, sig))
	}
	return pairs
}

// parseJavaDeclaration normalizes one joined Java declaration header.
func parseJavaDeclaration(header string) (models.CodeSignature, bool) {
	header = strings.TrimSpace(header)

	if m := javaClassRe.FindStringSubmatch(header); m != nil {
		return models.CodeSignature{Name: m[2], Type: models.KindClass, Modifiers: javaModifiers(m[1])}, true
	}
	if m := javaIfaceRe.FindStringSubmatch(header); m != nil {
		return models.CodeSignature{Name: m[2], Type: models.KindInterface, Modifiers: javaModifiers(m[1])}, true
	}
	if m := javaEnumRe.FindStringSubmatch(header); m != nil {
		return models.CodeSignature{Name: m[2], Type: models.KindType, Modifiers: javaModifiers(m[1])}, true
	}
	if m := javaMethodRe.FindStringSubmatch(header); m != nil && !javaKeywords[m[3]] && !javaKeywords[m[2]] {
		sig := models.CodeSignature{
			Name:      m[3],
			Type:      models.KindMethod,
			Modifiers: javaModifiers(m[1]),
		}
		if rt := strings.TrimSpace(m[2]); rt != "void" {
			sig.ReturnType = rt
		}
		if raw, ok := innerParens(header); ok {
			sig.Parameters = parseJavaParams(raw)
		}
		return sig, true
	}
	if m := javaCtorRe.FindStringSubmatch(header); m != nil && !javaKeywords[m[2]] {
		sig := models.CodeSignature{
			Name:      m[2],
			Type:      models.KindMethod,
			Modifiers: javaModifiers(m[1]),
		}
		if raw, ok := innerParens(header); ok {
			sig.Parameters = parseJavaParams(raw)
		}
		return sig, true
	}
	if m := javaFieldRe.FindStringSubmatch(header); m != nil && !javaKeywords[m[2]] {
		return models.CodeSignature{
			Name:       m[3],
			Type:       models.KindVariable,
			ReturnType: strings.TrimSpace(m[2]),
			Modifiers:  javaModifiers(m[1]),
		}, true
	}
	return models.CodeSignature{}, false
}

func javaModifiers(matched string) []string {
	fields := strings.Fields(matched)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// parseJavaParams parses "final Type name, Type... rest" style parameter lists.
// Parameter annotations (@NonNull etc.) are dropped.
func parseJavaParams(raw string) []models.ParameterInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var params []models.ParameterInfo
	for _, part := range splitTopLevel(raw, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := splitTopLevelFields(part)
		var kept []string
		for _, f := range fields {
			if strings.HasPrefix(f, "@") || f == "final" {
				continue
			}
			kept = append(kept, f)
		}
		if len(kept) == 0 {
			continue
		}
		p := models.ParameterInfo{Name: kept[len(kept)-1]}
		if len(kept) > 1 {
			typ := strings.Join(kept[:len(kept)-1], " ")
			if strings.HasSuffix(typ, "...") {
				p.IsRest = true
				typ = strings.TrimSuffix(typ, "...")
			}
			p.Type = strings.TrimSpace(typ)
		}
		if !identRe.MatchString(p.Name) {
			continue
		}
		params = append(params, p)
	}
	return params
}
