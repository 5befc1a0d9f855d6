package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rewriteDeclarations implements spec §4.1 step 5: the `Type`, `Generic`,
// `Union`, and `Enum` declaration forms all lower to a `const N = ...(...)`
// call so the parser (spec §4.2) never has to special-case them — by the
// time syntactic parsing runs, every declaration already looks like an
// ordinary JS const binding.
func rewriteDeclarations(src string) (string, error) {
	var err error
	src, err = rewriteTypeDecls(src)
	if err != nil {
		return "", err
	}
	src, err = rewriteGenericDecls(src)
	if err != nil {
		return "", err
	}
	src, err = rewriteUnionDecls(src)
	if err != nil {
		return "", err
	}
	src, err = rewriteEnumDecls(src)
	if err != nil {
		return "", err
	}
	return src, nil
}

var (
	typeWithBodyRe = regexp.MustCompile(`\bType\s+([A-Za-z_$][\w$]*)\s+('[^']*'|"[^"]*")\s*\{`)
	typeSimpleRe   = regexp.MustCompile(`\bType\s+([A-Za-z_$][\w$]*)\s+`)
)

// rewriteTypeDecls handles both:
//
//	Type N EXAMPLE
//	Type N 'desc' { example: E, predicate(x){...} }
func rewriteTypeDecls(src string) (string, error) {
	out := src
	for {
		loc := typeWithBodyRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		name := out[loc[2]:loc[3]]
		desc := out[loc[4]:loc[5]]
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated Type body")
		}
		body := out[braceOpen+1 : braceClose-1]
		predicate, example := extractExampleAndPredicate(body)
		replacement := fmt.Sprintf("const %s = Type(%s, %s, %s)", name, desc, predicate, example)
		out = out[:loc[0]] + replacement + out[braceClose:]
	}

	for {
		loc := typeSimpleRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		// Skip matches that are actually the body form (already rewritten
		// above) or where the remainder starts a description string the
		// body-form regex should have caught; re-scanning here only
		// targets `Type N EXAMPLE` with no trailing `{`.
		name := out[loc[2]:loc[3]]
		rest := out[loc[1]:]
		stmtLen := statementLength(rest)
		example := strings.TrimSpace(strings.TrimSuffix(rest[:stmtLen], ";"))
		if example == "" {
			break
		}
		replacement := fmt.Sprintf("const %s = Type(%q, %s)", name, name, example)
		out = out[:loc[0]] + replacement + out[loc[1]+stmtLen:]
	}
	return out, nil
}

// extractExampleAndPredicate pulls `example:` and the `predicate(...)`
// function text out of a Type body's object literal, defaulting each to a
// permissive placeholder when absent.
func extractExampleAndPredicate(body string) (predicate, example string) {
	predicate = "null"
	example = "null"
	if idx := strings.Index(body, "example"); idx >= 0 {
		rest := body[idx+len("example"):]
		rest = strings.TrimSpace(rest)
		rest = strings.TrimPrefix(rest, ":")
		stmtLen := commaOrBraceLength(rest)
		example = strings.TrimSpace(rest[:stmtLen])
	}
	if idx := strings.Index(body, "predicate"); idx >= 0 {
		open := strings.Index(body[idx:], "(")
		if open >= 0 {
			open += idx
			close := matchBalanced(body, open, '(', ')')
			if close != -1 {
				braceIdx := strings.Index(body[close:], "{")
				if braceIdx >= 0 {
					braceOpen := close + braceIdx
					braceClose := matchBalanced(body, braceOpen, '{', '}')
					if braceClose != -1 {
						predicate = "function" + body[open:braceClose]
					}
				}
			}
		}
	}
	return predicate, example
}

var genericRe = regexp.MustCompile(`\bGeneric\s+([A-Za-z_$][\w$]*)\s*<([^>]*)>\s*\{`)

// rewriteGenericDecls handles `Generic N<T,U=''> { predicate(x,T,U){...} }`.
func rewriteGenericDecls(src string) (string, error) {
	out := src
	for {
		loc := genericRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		name := out[loc[2]:loc[3]]
		paramsText := out[loc[4]:loc[5]]
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated Generic body")
		}
		body := out[braceOpen+1 : braceClose-1]
		predicate, _ := extractExampleAndPredicate(body)
		params := genericParamList(paramsText)
		replacement := fmt.Sprintf("const %s = Generic(%s, %s)", name, params, predicate)
		out = out[:loc[0]] + replacement + out[braceClose:]
	}
	return out, nil
}

// genericParamList renders `T,U=''` as `['T', ['U', '']]`.
func genericParamList(raw string) string {
	parts := splitTopLevel(raw, ',')
	var rendered []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if eq := strings.Index(p, "="); eq >= 0 {
			pname := strings.TrimSpace(p[:eq])
			def := strings.TrimSpace(p[eq+1:])
			rendered = append(rendered, fmt.Sprintf("['%s', %s]", pname, def))
		} else {
			rendered = append(rendered, fmt.Sprintf("'%s'", p))
		}
	}
	return "[" + strings.Join(rendered, ", ") + "]"
}

var unionRe = regexp.MustCompile(`\bUnion\s+([A-Za-z_$][\w$]*)\s+('[^']*'|"[^"]*")\s+`)

// rewriteUnionDecls handles `Union N 'desc' A | B | C`.
func rewriteUnionDecls(src string) (string, error) {
	out := src
	for {
		loc := unionRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		name := out[loc[2]:loc[3]]
		desc := out[loc[4]:loc[5]]
		rest := out[loc[1]:]
		stmtLen := statementLength(rest)
		membersText := strings.TrimSpace(strings.TrimSuffix(rest[:stmtLen], ";"))
		members := splitTopLevel(membersText, '|')
		for i, m := range members {
			members[i] = strings.TrimSpace(m)
		}
		replacement := fmt.Sprintf("const %s = Union(%s, [%s])", name, desc, strings.Join(members, ", "))
		out = out[:loc[0]] + replacement + out[loc[1]+stmtLen:]
	}
	return out, nil
}

var enumRe = regexp.MustCompile(`\bEnum\s+([A-Za-z_$][\w$]*)\s+('[^']*'|"[^"]*")\s*\{`)

// rewriteEnumDecls handles `Enum N 'desc' { A, B=10, C }`, auto-incrementing
// from 0 (or from the last explicit value) per spec §4.1 step 5.
func rewriteEnumDecls(src string) (string, error) {
	out := src
	for {
		loc := enumRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		name := out[loc[2]:loc[3]]
		desc := out[loc[4]:loc[5]]
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated Enum body")
		}
		body := out[braceOpen+1 : braceClose-1]
		members := splitTopLevel(body, ',')
		var pairs []string
		next := 0
		for _, m := range members {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if eq := strings.Index(m, "="); eq >= 0 {
				key := strings.TrimSpace(m[:eq])
				valText := strings.TrimSpace(m[eq+1:])
				if n, err := strconv.Atoi(valText); err == nil {
					pairs = append(pairs, fmt.Sprintf("%s: %d", key, n))
					next = n + 1
					continue
				}
				pairs = append(pairs, fmt.Sprintf("%s: %s", key, valText))
				continue
			}
			pairs = append(pairs, fmt.Sprintf("%s: %d", m, next))
			next++
		}
		replacement := fmt.Sprintf("const %s = Enum(%s, {%s})", name, desc, strings.Join(pairs, ", "))
		out = out[:loc[0]] + replacement + out[braceClose:]
	}
	return out, nil
}

// statementLength returns the byte length up to the next top-level `;` or
// `\n`, whichever comes first (a `;` is counted in the length, a newline
// is not), used for the single-line
// `Type N EXAMPLE` / `Union N 'desc' A | B` forms that have no braces.
func statementLength(s string) int {
	depth := 0
	inString := byte(0)
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
		case ';':
			if depth <= 0 {
				return i + 1
			}
		case '\n':
			if depth <= 0 {
				return i
			}
		}
	}
	return len(s)
}

// commaOrBraceLength returns the byte length up to the next top-level comma
// or closing brace, used to isolate the `example:` value inside a Type body.
func commaOrBraceLength(s string) int {
	depth := 0
	inString := byte(0)
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
			if depth == 0 {
				return i
			}
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}
