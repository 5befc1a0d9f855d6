package lexer

import (
	"regexp"
	"strings"
)

var tryRe = regexp.MustCompile(`\btry\s*\{`)

const tryCatchTemplate = ` catch(e) { return { $error:true, message: e?.message||String(e), op:'try', cause: e, stack: (e&&e.stack)||null }; }`

// wrapTryWithoutCatch implements spec §4.1 step 7: a `try { … }` with no
// following `catch`/`finally` is wrapped so the caught exception becomes a
// monadic error return instead of propagating as a thrown JS exception —
// TJS forbids `throw` (spec §4.2) but the preprocessor still needs to give
// ordinary `try` a monadic escape hatch.
func wrapTryWithoutCatch(src string) (string, error) {
	out := src
	searchFrom := 0
	for {
		loc := tryRe.FindStringIndex(out[searchFrom:])
		if loc == nil {
			break
		}
		start := searchFrom + loc[0]
		braceOpen := searchFrom + loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated try block")
		}

		afterTrim := strings.TrimLeft(out[braceClose:], " \t\n\r")
		if strings.HasPrefix(afterTrim, "catch") || strings.HasPrefix(afterTrim, "finally") {
			// Already has a catch/finally clause; leave it untouched and
			// keep scanning after this try block.
			searchFrom = braceClose
			continue
		}

		out = out[:braceClose] + tryCatchTemplate + out[braceClose:]
		searchFrom = start + len("try") // re-scan in case of nested try blocks ahead
	}
	return out, nil
}

var unsafeBlockRe = regexp.MustCompile(`\bunsafe\s*\{`)

const unsafeCatchTemplate = ` catch(e) { return { $error:true, message: e?.message||String(e), op:'unsafe', cause: e, stack: (e&&e.stack)||null }; }`

// wrapUnsafeBlocks implements spec §4.1 step 8: the legacy `unsafe { … }`
// form gets the same try/catch wrapping as a bare `try`, but tagged
// `op:'unsafe'` in the resulting monadic error, and each block's source
// text is also collected into the preprocessor's `wasmBlocks` output
// (spec §4.1 "Outputs") for downstream tooling that wants to audit them.
func wrapUnsafeBlocks(src string) (string, []string, error) {
	out := src
	var blocks []string
	for {
		loc := unsafeBlockRe.FindStringIndex(out)
		if loc == nil {
			break
		}
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", nil, syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated unsafe block")
		}
		body := out[braceOpen : braceClose]
		blocks = append(blocks, body)
		replacement := "try " + body + unsafeCatchTemplate
		out = out[:loc[0]] + replacement + out[braceClose:]
	}
	return out, blocks, nil
}
