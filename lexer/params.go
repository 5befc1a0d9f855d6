package lexer

import (
	"regexp"
	"strings"
)

var fnHeaderRe = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)\s*\(`)

// paramList describes one function's parameter-list parenthesis span,
// located by rewriteParams before any rewriting happens so byte offsets
// stay valid while the list is processed right-to-left across all lists.
type paramList struct {
	openParen  int // index of '('
	closeParen int // index just past ')'
}

// rewriteParams implements spec §4.1 step 4: for each parameter
// `name: EXAMPLE`, rewrite to `name = EXAMPLE` and record name in
// requiredParams. A required parameter after any `=` parameter, or a
// duplicate name, is a hard error. Only `function` declarations are
// processed — arrow-function parameter lists in TJS source carry no
// example-typed parameters of their own (arrows close over the enclosing
// function's already-typed bindings), matching how spec §4.1 frames
// colon-to-default rewriting purely in terms of "parameter" lists attached
// to a declared function.
func rewriteParams(src string, r *Result) (string, error) {
	var lists []paramList
	for _, m := range fnHeaderRe.FindAllStringSubmatchIndex(src, -1) {
		openParen := m[1] - 1 // position of '(' is just before m[1]? adjust below
		// m[1] is the index just after the matched '(' since regex ends in "\(".
		openParen = m[1] - 1
		closeParen := matchBalanced(src, openParen, '(', ')')
		if closeParen == -1 {
			return src, syntaxErrAt(r.original, openParen, "unterminated-block", "unterminated parameter list")
		}
		lists = append(lists, paramList{openParen: openParen, closeParen: closeParen})
	}

	out := src
	for i := len(lists) - 1; i >= 0; i-- {
		pl := lists[i]
		inner := out[pl.openParen+1 : pl.closeParen-1]
		rewritten, required, err := rewriteOneParamList(out, pl.openParen+1, inner)
		if err != nil {
			return src, err
		}
		out = out[:pl.openParen+1] + rewritten + out[pl.closeParen-1:]
		// Lists are visited right-to-left; prepend to keep source order.
		r.RequiredParams = append(required, r.RequiredParams...)
	}
	return out, nil
}

func rewriteOneParamList(fullSrc string, innerOffset int, inner string) (string, []string, error) {
	if strings.TrimSpace(inner) == "" {
		return inner, nil, nil
	}
	rawParts := splitTopLevel(inner, ',')

	seen := map[string]bool{}
	var required []string
	sawOptional := false
	var rewrittenParts []string

	cursor := 0
	for _, part := range rawParts {
		partStart := innerOffset + cursor
		cursor += len(part) + 1 // account for the comma consumed by splitTopLevel

		trimmed := strings.TrimSpace(part)
		leading := len(part) - len(strings.TrimLeft(part, " \t\n"))
		name, sep, rhs, ok := splitParam(trimmed)
		if !ok {
			// Not a simple `name: ex` / `name = ex` / bare `name` parameter
			// (destructuring, rest params, ...) — passed through untouched.
			rewrittenParts = append(rewrittenParts, part)
			continue
		}
		if seen[name] {
			return "", nil, dupParamError(fullSrc, partStart+leading, name)
		}
		seen[name] = true

		if sep == ":" {
			if sawOptional {
				return "", nil, requiredAfterOptionalError(fullSrc, partStart+leading, name)
			}
			required = append(required, name)
			rewrittenParts = append(rewrittenParts, name+" = "+rhs)
		} else if sep == "=" {
			sawOptional = true
			rewrittenParts = append(rewrittenParts, part)
		} else {
			// Bare name with no example/default: treated as already-optional
			// (an `any`-typed parameter with no declared default).
			sawOptional = true
			rewrittenParts = append(rewrittenParts, part)
		}
	}
	return strings.Join(rewrittenParts, ","), required, nil
}

// splitParam splits "name: rhs" or "name = rhs" or bare "name" into its
// parts. ok is false when the parameter isn't a simple identifier form
// (e.g. destructuring patterns), in which case it should pass through
// unrewritten.
func splitParam(trimmed string) (name string, sep string, rhs string, ok bool) {
	if trimmed == "" {
		return "", "", "", false
	}
	if !isIdentStartByte(trimmed[0]) {
		return "", "", "", false
	}
	i := 0
	for i < len(trimmed) && isIdentByte(trimmed[i]) {
		i++
	}
	name = trimmed[:i]
	rest := strings.TrimSpace(trimmed[i:])
	switch {
	case rest == "":
		return name, "", "", true
	case strings.HasPrefix(rest, ":"):
		return name, ":", strings.TrimSpace(rest[1:]), true
	case strings.HasPrefix(rest, "="):
		return name, "=", strings.TrimSpace(rest[1:]), true
	default:
		return "", "", "", false
	}
}

func isIdentStartByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
