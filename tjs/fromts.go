package tjs

import (
	"regexp"
	"strings"
)

// tsFnHeaderRe finds a TypeScript function header up to its parameter
// list's opening paren: `function name(`.
var tsFnHeaderRe = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)\s*\(`)

// FromTS erases a minimal TypeScript function-declaration subset (type
// annotations only, not a general TS parser) into TJS source (spec §6):
// `: Type` parameter annotations become example values, a TS `?` optional
// marker becomes TJS's default-assignment form while a required parameter
// becomes TJS's colon-example form (preserving which parameters the
// signature compiler will treat as required), and the declared return
// type is always erased to `-!` (skip signature test) since an erased
// example is never the author's actual intended return value.
func FromTS(tsSource string) (string, error) {
	loc := tsFnHeaderRe.FindStringSubmatchIndex(tsSource)
	if loc == nil {
		return tsSource, nil
	}
	openParen := loc[1] - 1
	closeParen := matchBalancedParen(tsSource, openParen)
	if closeParen == -1 {
		return "", &fromTSError{msg: "unterminated parameter list"}
	}

	inner := tsSource[openParen+1 : closeParen-1]
	params, err := eraseParamList(inner)
	if err != nil {
		return "", err
	}

	rest := tsSource[closeParen:]
	rest = stripReturnAnnotation(rest)

	var b strings.Builder
	b.WriteString(tsSource[:openParen+1])
	b.WriteString(params)
	b.WriteString(") -! erased {")
	// stripReturnAnnotation already consumed through the opening brace.
	b.WriteString(rest)
	return b.String(), nil
}

type fromTSError struct{ msg string }

func (e *fromTSError) Error() string { return "tjs: fromTS: " + e.msg }

// stripReturnAnnotation consumes an optional `: ReturnType` immediately
// after the parameter list's closing paren, up to (and including) the
// function body's opening brace, returning the text starting just after
// that brace.
func stripReturnAnnotation(rest string) string {
	trimmed := strings.TrimLeft(rest, " \t\n")
	if !strings.HasPrefix(trimmed, ":") {
		brace := strings.Index(rest, "{")
		if brace == -1 {
			return rest
		}
		return rest[brace+1:]
	}
	brace := strings.Index(trimmed, "{")
	if brace == -1 {
		return rest
	}
	return trimmed[brace+1:]
}

func eraseParamList(inner string) (string, error) {
	if strings.TrimSpace(inner) == "" {
		return inner, nil
	}
	parts := splitTopLevelComma(inner)
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		name, optional, tsType, ok := splitTSParam(trimmed)
		if !ok {
			out = append(out, part)
			continue
		}
		example := eraseType(tsType)
		if optional {
			out = append(out, name+" = "+example)
		} else {
			out = append(out, name+": "+example)
		}
	}
	return strings.Join(out, ","), nil
}

// splitTSParam splits "name: Type", "name?: Type", or a bare "name" (no
// annotation, passed through as an already-optional any) into its parts.
func splitTSParam(trimmed string) (name string, optional bool, tsType string, ok bool) {
	i := 0
	for i < len(trimmed) && isIdentByte(trimmed[i]) {
		i++
	}
	if i == 0 {
		return "", false, "", false
	}
	name = trimmed[:i]
	rest := trimmed[i:]
	if strings.HasPrefix(rest, "?") {
		optional = true
		rest = rest[1:]
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return name, true, "any", true
	}
	return name, optional, strings.TrimSpace(rest[1:]), true
}

// eraseType implements spec §6's erasure table, recursing through array
// and object shapes and the common `T | null` union form.
func eraseType(t string) string {
	t = strings.TrimSpace(t)
	switch {
	case strings.HasSuffix(t, "[]"):
		inner := eraseType(t[:len(t)-2])
		return "[" + inner + "]"
	case strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}"):
		return eraseObjectShape(t[1 : len(t)-1])
	case strings.Contains(t, "|"):
		return eraseUnion(t)
	}
	switch t {
	case "string":
		return "''"
	case "number":
		return "0"
	case "boolean":
		return "false"
	case "null", "undefined":
		return "null"
	default:
		return "null"
	}
}

func eraseUnion(t string) string {
	members := splitTopLevelPipe(t)
	var nonNull []string
	hasNull := false
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "null" || m == "undefined" {
			hasNull = true
			continue
		}
		nonNull = append(nonNull, m)
	}
	if len(nonNull) == 0 {
		return "null"
	}
	ex := eraseType(nonNull[0])
	if hasNull {
		return ex + " || null"
	}
	return ex
}

func eraseObjectShape(inner string) string {
	parts := splitTopLevelComma(inner)
	var fields []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		idx := strings.IndexByte(trimmed, ':')
		if idx == -1 {
			continue
		}
		key := strings.TrimSpace(trimmed[:idx])
		key = strings.TrimSuffix(key, "?")
		val := eraseType(trimmed[idx+1:])
		fields = append(fields, key+":"+val)
	}
	return "{" + strings.Join(fields, ",") + "}"
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// matchBalancedParen returns the index just past the ')' that balances
// the '(' at openParen, or -1 if unterminated. Nested (), {}, and []
// (object/array type annotations inside the parameter list) are tracked
// so a '}' or ']' never mistakenly closes the parameter list.
func matchBalancedParen(src string, openParen int) int {
	depth := 0
	for i := openParen; i < len(src); i++ {
		switch src[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// splitTopLevelComma splits s on commas that are not nested inside (), {},
// or [].
func splitTopLevelComma(s string) []string {
	return splitTopLevel(s, ',')
}

// splitTopLevelPipe splits s on '|' that are not nested inside (), {}, or
// [].
func splitTopLevelPipe(s string) []string {
	return splitTopLevel(s, '|')
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
