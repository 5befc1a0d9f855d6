package lexer

import "strings"

// matchBalanced returns the index just past the closing rune that balances
// the opening rune at src[openIdx], honoring string/template literal
// boundaries so braces inside strings are not mistaken for structural ones.
// Returns -1 if unbalanced.
func matchBalanced(src string, openIdx int, open, close byte) int {
	depth := 0
	i := openIdx
	inString := byte(0)
	for i < len(src) {
		c := src[i]
		if inString != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == inString {
				inString = 0
			}
			i++
			continue
		}
		switch c {
		case '\'', '"', '`':
			inString = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return -1
}

// splitTopLevel splits s on sep at bracket/paren/brace/string nesting depth
// zero, mirroring the way the colon-to-default rewrite (spec §4.1 step 4)
// must split a parameter list on commas without being confused by default
// values that themselves contain commas (e.g. `x = [1, 2]`).
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inString := byte(0)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			inString = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// findKeyword finds the next standalone occurrence of kw in s starting at
// or after from (not part of a larger identifier). String and comment
// content is not skipped: an occurrence inside a literal or a comment is
// returned like any other.
func findKeyword(s, kw string, from int) int {
	for i := from; i+len(kw) <= len(s); i++ {
		if s[i:i+len(kw)] != kw {
			continue
		}
		if i > 0 && isIdentByte(s[i-1]) {
			continue
		}
		end := i + len(kw)
		if end < len(s) && isIdentByte(s[end]) {
			continue
		}
		return i
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// stripLineComments removes `//...` line comments that are not inside a
// string literal, used by passes that need a comment-free view of a single
// logical line without disturbing the original source offsets used for
// diagnostics (callers operate on the stripped copy only for keyword
// scanning, never for emitting output).
func stripLineComments(line string) string {
	inString := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			inString = c
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}
	return line
}

// firstNonBlank returns the first line of source that is neither blank nor
// only a `//` line comment, used by the safety-directive pass (spec §4.1
// step 1). `/* ... */` block comments are not skipped.
func firstNonBlank(src string) (line string, idx int) {
	lines := strings.Split(src, "\n")
	offset := 0
	for _, l := range lines {
		trimmed := strings.TrimSpace(stripLineComments(l))
		if trimmed == "" {
			offset += len(l) + 1
			continue
		}
		return l, offset
	}
	return "", -1
}
