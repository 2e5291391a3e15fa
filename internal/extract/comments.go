package extract

import (
	"regexp"
	"strings"
)

// blockComment is one /** ... */ documentation comment found in source text.
type blockComment struct {
	start int // zero-based first line
	end   int // zero-based last line
	text  string
}

// scanBlockComments finds /** ... */ documentation comments. Plain /* ... */
// comments are not documentation and are skipped. An unterminated comment is
// dropped rather than extending to end of file.
func scanBlockComments(lines []string) []blockComment {
	var comments []blockComment
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "/**") || strings.HasPrefix(trimmed, "/***/") {
			continue
		}
		if idx := strings.Index(trimmed[2:], "*/"); idx >= 0 {
			comments = append(comments, blockComment{start: i, end: i, text: lines[i]})
			continue
		}
		closed := false
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], "*/") {
				comments = append(comments, blockComment{
					start: i,
					end:   j,
					text:  strings.Join(lines[i:j+1], "\n"),
				})
				i = j
				closed = true
				break
			}
		}
		if !closed {
			return comments
		}
	}
	return comments
}

// nextDeclLine returns the first candidate declaration line at or after from,
// skipping blank lines and lines matched by skipRe (decorators, annotations).
// A decorator with a multi-line argument list is skipped as one unit. Returns
// -1 when another comment begins or the file ends, so the original doc block
// yields no pair.
func nextDeclLine(lines []string, from int, skipRe *regexp.Regexp) int {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			return -1
		}
		if skipRe != nil && skipRe.MatchString(trimmed) {
			if strings.Contains(trimmed, "(") {
				_, end := joinSignature(lines, i)
				i = end
			}
			continue
		}
		return i
	}
	return -1
}
