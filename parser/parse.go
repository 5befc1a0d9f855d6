// Package parser turns preprocessed TJS source (the output of package
// lexer's Preprocess) into a restricted-ECMAScript AST (spec §4.2): a flat
// list of every named function declaration, nested ones included, with
// their parameter lists, doc comments, and source locations. Full ECMAScript-2022 syntax validation
// is delegated to goja's parser — the same JS-parsing library the
// grafana-k6 load-testing engine embeds for executing real-world JS test
// scripts — so operator precedence, automatic semicolon insertion, and
// template-literal edge cases are handled by a mature implementation
// rather than re-derived here. This package only adds the layer goja
// doesn't have: TJS's forbidden-construct list and its declaration-level
// structure (function boundaries, JSDoc attachment).
package parser

import (
	"regexp"
	"strings"

	gojaparser "github.com/dop251/goja/parser"
	"github.com/tjs-lang/tjs/lexer"
)

var fnDeclRe = regexp.MustCompile(`\b(async\s+)?function\s+([A-Za-z_$][\w$]*)\s*\(`)

// Parse validates src against TJS's syntactic restrictions, confirms it is
// valid ECMAScript via goja's parser, and extracts every named function
// declaration, including ones nested inside another function's body. A
// goja parse failure is returned as a *lexer.SyntaxError at goja's
// reported line and column.
func Parse(src string) (*Program, error) {
	if err := checkForbidden(src); err != nil {
		return nil, err
	}

	if _, err := gojaparser.ParseFile(nil, "module.tjs.js", src, 0); err != nil {
		pos := 0
		if list, ok := err.(gojaparser.ErrorList); ok && len(list) > 0 {
			line, col := list[0].Position.Line, list[0].Position.Column
			for i := 0; i < len(src) && line > 1; i++ {
				if src[i] == '\n' {
					line--
					pos = i + 1
				}
			}
			pos += col - 1
		}
		return nil, syntaxErr(src, pos, "parse-error", "invalid ECMAScript after preprocessing: %v", err)
	}

	prog := &Program{Source: src}

	for _, m := range fnDeclRe.FindAllStringSubmatchIndex(src, -1) {
		isAsync := m[2] != -1
		name := src[m[4]:m[5]]
		openParen := m[1] - 1
		closeParen := matchBalanced(src, openParen, '(', ')')
		if closeParen == -1 {
			return nil, syntaxErr(src, openParen, "unterminated-block", "unterminated parameter list in function %q", name)
		}
		braceIdx := strings.Index(src[closeParen:], "{")
		if braceIdx == -1 {
			return nil, syntaxErr(src, closeParen, "unterminated-block", "function %q has no body", name)
		}
		braceOpen := closeParen + braceIdx
		braceClose := matchBalanced(src, braceOpen, '{', '}')
		if braceClose == -1 {
			return nil, syntaxErr(src, braceOpen, "unterminated-block", "unterminated body in function %q", name)
		}

		declStart := m[0]
		line, col := lexer.LineCol(src, declStart)

		fn := &FunctionDecl{
			Name:    name,
			Params:  splitParams(src[openParen+1 : closeParen-1]),
			Body:    src[braceOpen:braceClose],
			Doc:     docBefore(src, declStart),
			IsAsync: isAsync,
			Loc:     SourceLocation{Start: declStart, End: braceClose, Line: line, Column: col},
		}
		prog.Functions = append(prog.Functions, fn)
	}

	return prog, nil
}

func splitParams(inner string) []Param {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil
	}
	parts := splitTopLevelComma(inner)
	params := make([]Param, 0, len(parts))
	for _, p := range parts {
		raw := strings.TrimSpace(p)
		if raw == "" {
			continue
		}
		params = append(params, Param{Raw: raw, Name: paramName(raw)})
	}
	return params
}

func paramName(raw string) string {
	raw = strings.TrimPrefix(raw, "...")
	i := 0
	for i < len(raw) && isIdentByte(raw[i]) {
		i++
	}
	return raw[:i]
}

func splitTopLevelComma(s string) []string {
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
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
