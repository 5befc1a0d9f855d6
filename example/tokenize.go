package example

import "strings"

func tokenize(src string) []token {
	var toks []token
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '\'' || c == '"':
			j := i + 1
			var b strings.Builder
			for j < n && src[j] != c {
				if src[j] == '\\' && j+1 < n {
					b.WriteByte(unescape(src[j+1]))
					j += 2
					continue
				}
				b.WriteByte(src[j])
				j++
			}
			toks = append(toks, token{kind: "str", text: b.String()})
			i = j + 1
		case c >= '0' && c <= '9':
			j := i
			for j < n && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: "num", text: src[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: "ident", text: src[i:j]})
			i = j
		case c == '|' && i+1 < n && src[i+1] == '|':
			toks = append(toks, token{kind: "punct", text: "||"})
			i += 2
		case strings.ContainsRune("[]{}:,-", rune(c)):
			toks = append(toks, token{kind: "punct", text: string(c)})
			i++
		default:
			// Unknown punctuation: skip it rather than fail tokenizing,
			// callers surface a parse error when the grammar can't proceed.
			i++
		}
	}
	return toks
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
