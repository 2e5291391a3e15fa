package extract

import "strings"

// splitLines splits content into lines without trailing newlines.
// A trailing newline does not produce a phantom empty last line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && strings.HasSuffix(content, "\n") {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// declBlockEnd returns the zero-based last line of a brace-delimited
// declaration starting at startLine whose header ends at headerEnd. Brace
// depth is counted with string literals and line comments stripped. A
// declaration that opens no block by its header end (a single-statement
// declaration such as a type alias or variable) ends at the header itself;
// an opening brace alone on the line after the header is still part of the
// block. Truncated input ends at the last line of the file.
func declBlockEnd(lines []string, startLine, headerEnd int) int {
	depth := 0
	opened := false
	for i := startLine; i < len(lines); i++ {
		for _, c := range strippedCode(lines[i]) {
			switch c {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i
		}
		if !opened && i >= headerEnd {
			if i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "{") {
				continue
			}
			return i
		}
	}
	return len(lines) - 1
}

// blockEndByIndent returns the zero-based last line of an indentation-delimited
// block whose header (e.g. a def line) is at headerLine. The block ends before
// the first non-blank line indented at or below the header's level.
func blockEndByIndent(lines []string, headerLine int) int {
	headerIndent := indentWidth(lines[headerLine])
	end := headerLine
	for i := headerLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[i]) <= headerIndent {
			break
		}
		end = i
	}
	return end
}

// indentWidth returns the leading whitespace width with tabs counted as 4.
func indentWidth(line string) int {
	w := 0
	for _, c := range line {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// joinSignature joins lines from startLine until parenthesis depth returns to
// zero, producing one logical declaration header. Returns the joined text and
// the zero-based line the header ends on. Handles parameter lists spanning
// several lines.
func joinSignature(lines []string, startLine int) (string, int) {
	depth := 0
	seenParen := false
	var b strings.Builder
	for i := startLine; i < len(lines); i++ {
		if i > startLine {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(lines[i]))
		for _, c := range strippedCode(lines[i]) {
			switch c {
			case '(':
				depth++
				seenParen = true
			case ')':
				depth--
			}
		}
		if seenParen && depth <= 0 {
			return b.String(), i
		}
		if !seenParen {
			// Header with no parameter list (class, type, variable): one line.
			return b.String(), i
		}
	}
	return b.String(), len(lines) - 1
}

// strippedCode removes line comments and the contents of string literals from
// one line so delimiter counting ignores them. This is a heuristic, not a
// lexer: multi-line strings are not tracked.
func strippedCode(line string) string {
	var b strings.Builder
	var quote rune
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				return b.String()
			}
			b.WriteRune(c)
		case '#':
			return b.String()
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// splitTopLevel splits s on sep, ignoring separators nested inside (), [], {},
// or <>. Used to split parameter lists whose types carry generics or defaults
// carry literals.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	angle := 0
	start := 0
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
		case sep:
			if depth == 0 && angle == 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(c))
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// innerParens returns the text between the first top-level '(' and its
// matching ')'. The second return is false when no balanced pair exists.
func innerParens(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open+1 : i], true
			}
		}
	}
	return "", false
}
