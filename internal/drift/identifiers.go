package drift

import (
	"regexp"
	"strings"
)

var (
	backtickRe  = regexp.MustCompile("`([^`]+)`")
	camelCaseRe = regexp.MustCompile(`\b[a-z][a-z0-9]*[A-Z]\w*\b`)
	snakeCaseRe = regexp.MustCompile(`\b[a-z][a-z0-9]*_[a-z0-9_]+\b`)
	codeIdentRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)
)

// descriptionTokens extracts identifier-like tokens from free prose:
// backtick-quoted tokens verbatim, plus camelCase and snake_case tokens found
// by pattern scan. Order follows first appearance; duplicates are dropped.
func descriptionTokens(description string) []string {
	var tokens []string
	seen := make(map[string]bool)
	add := func(tok string) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			return
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	for _, m := range backtickRe.FindAllStringSubmatch(description, -1) {
		// Backticked text may be an expression; only bare identifiers count.
		if codeIdentRe.FindString(m[1]) == m[1] {
			add(m[1])
		}
	}
	stripped := backtickRe.ReplaceAllString(description, " ")
	for _, m := range camelCaseRe.FindAllString(stripped, -1) {
		add(m)
	}
	for _, m := range snakeCaseRe.FindAllString(stripped, -1) {
		add(m)
	}
	return tokens
}

// languageKeywords maps a language identifier to its keyword blocklist, so
// keywords in a code body are not treated as referenceable identifiers.
var languageKeywords = map[string]map[string]bool{
	"typescript": makeKeywordSet(
		"abstract async await break case catch class const continue debugger default delete do else enum export extends false finally for function if implements import in instanceof interface let new null of private protected public readonly return static super switch this throw true try type typeof undefined var void while yield string number boolean any unknown never object",
	),
	"javascript": makeKeywordSet(
		"async await break case catch class const continue debugger default delete do else export extends false finally for function if import in instanceof let new null of return static super switch this throw true try typeof undefined var void while yield",
	),
	"python": makeKeywordSet(
		"False None True and as assert async await break class continue def del elif else except finally for from global if import in is lambda nonlocal not or pass raise return try while with yield self cls",
	),
	"go": makeKeywordSet(
		"break case chan const continue default defer else fallthrough for func go goto if import interface map package range return select struct switch type var nil true false iota int string bool byte rune error float64 float32 int64 int32 uint append len cap make new copy delete panic recover",
	),
	"java": makeKeywordSet(
		"abstract assert boolean break byte case catch char class const continue default do double else enum extends final finally float for goto if implements import instanceof int interface long native new package private protected public return short static strictfp super switch synchronized this throw throws transient try void volatile while true false null var String",
	),
}

func makeKeywordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// codeIdentifiers returns the lowercased set of identifiers appearing in a
// code body, with the language's keywords excluded.
func codeIdentifiers(code, language string) map[string]bool {
	keywords := languageKeywords[strings.ToLower(language)]
	idents := make(map[string]bool)
	for _, m := range codeIdentRe.FindAllString(code, -1) {
		if keywords[m] {
			continue
		}
		idents[strings.ToLower(m)] = true
	}
	return idents
}
