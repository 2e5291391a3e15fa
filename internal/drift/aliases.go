package drift

import (
	"regexp"
	"strings"
)

// aliasClasses groups type spellings across ecosystems that are considered
// semantically equivalent for comparison. Each member maps to its class index.
var aliasClasses = [][]string{
	{"string", "str"},
	{"number", "int", "float", "integer", "double", "float32", "float64", "int32", "int64"},
	{"boolean", "bool"},
	{"array", "list", "[]", "slice"},
	{"object", "dict", "map", "record"},
	{"any", "unknown", "interface{}"},
	{"void", "none", "null", "undefined", "nil"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]int {
	idx := make(map[string]int)
	for i, class := range aliasClasses {
		for _, name := range class {
			idx[name] = i
		}
	}
	return idx
}

var typeSpaceRe = regexp.MustCompile(`\s+`)

// normalizeType lowercases a type string and collapses internal whitespace.
func normalizeType(t string) string {
	return typeSpaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(t)), " ")
}

// typesEquivalent reports whether two declared type strings should be treated
// as the same type: exact match after normalization, membership in the same
// alias class, or substring containment (covers generics and unions such as
// "Promise<string>" vs "string" or "string | null" vs "string").
func typesEquivalent(a, b string) bool {
	na, nb := normalizeType(a), normalizeType(b)
	if na == "" || nb == "" {
		return true // an absent type never conflicts
	}
	if na == nb {
		return true
	}
	ia, okA := aliasIndex[na]
	ib, okB := aliasIndex[nb]
	if okA && okB && ia == ib {
		return true
	}
	// Array shorthand: "T[]" vs "array"/"list".
	if strings.HasSuffix(na, "[]") && okB && ib == aliasIndex["array"] {
		return true
	}
	if strings.HasSuffix(nb, "[]") && okA && ia == aliasIndex["array"] {
		return true
	}
	// Containment fallback for generics and unions.
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return false
}

// isVoidType reports whether a documented type means "returns nothing".
func isVoidType(t string) bool {
	idx, ok := aliasIndex[normalizeType(t)]
	return ok && idx == aliasIndex["void"]
}
