package parser

import (
	"regexp"

	"github.com/tjs-lang/tjs/lexer"
)

// forbiddenKeywordRe matches any of the reserved-in-TJS keywords (spec
// §4.2: TJS is a restricted ECMAScript subset) at a word boundary, outside
// of string/template literals. Class declarations are rejected because
// TJS has no inheritance model; import/export because a module's surface
// is whatever its exported `function`s are, not an ESM graph; throw
// because errors are monadic (spec §7) not exceptional; switch because
// every branch must be reachable through the atom-VM's explicit control
// atoms (spec §5), which model if/else but not fallthrough-style dispatch.
var forbiddenKeywordRe = regexp.MustCompile(`\b(import|export|class|throw|switch)\b`)

var cStyleForRe = regexp.MustCompile(`\bfor\s*\(`)

// checkForbidden implements spec §4.2's rejection list: import, export,
// class, throw, switch, and the three-clause C-style `for(init;cond;post)`
// loop (for-of and for-in remain allowed). Returns the first violation
// found, or nil.
func checkForbidden(src string) error {
	clean := stripStringsAndComments(src)

	if loc := forbiddenKeywordRe.FindStringIndex(clean); loc != nil {
		kw := clean[loc[0]:loc[1]]
		return syntaxErr(src, loc[0], "forbidden-construct", "%q is not permitted in TJS", kw)
	}

	for _, loc := range cStyleForRe.FindAllStringIndex(clean, -1) {
		openParen := loc[1] - 1
		closeParen := matchBalanced(clean, openParen, '(', ')')
		if closeParen == -1 {
			continue
		}
		inner := clean[openParen+1 : closeParen-1]
		if countTopLevelSemicolons(inner) >= 2 {
			return syntaxErr(src, loc[0], "forbidden-construct", "C-style for(;;) loops are not permitted in TJS; use for-of or for-in")
		}
	}
	return nil
}

func countTopLevelSemicolons(s string) int {
	depth := 0
	inString := byte(0)
	count := 0
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
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

func syntaxErr(src string, pos int, kind, format string, args ...any) error {
	return lexer.NewSyntaxErrorAt(src, kind, pos, format, args...)
}
