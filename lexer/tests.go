package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	testDescRe  = regexp.MustCompile(`\btest\s+('[^']*'|"[^"]*")\s*\{`)
	testCallRe  = regexp.MustCompile(`\btest\s*\(([^)]*)\)\s*\{`)
	testAnonRe  = regexp.MustCompile(`\btest\s*\{`)
	mockRe      = regexp.MustCompile(`\bmock\s*\{`)
	embeddedRe  = regexp.MustCompile(`/\*\s*test([\s\S]*?)\*/`)
)

// extractTests implements spec §4.1 step 6: `test 'desc' {…}`,
// `test(…){…}`, anonymous `test {…}`, `mock {…}`, and the block-comment
// variant `/*test …*/` are lifted into a parallel structure (Result.Tests /
// Result.Mocks) and replaced with nothing in the source. Anonymous tests
// get sequential descriptions (`test 1`, `embedded test 1`).
func extractTests(src string, r *Result) (string, error) {
	out := src
	anonCounter := 0
	embeddedCounter := 0

	// Embedded block-comment tests are lifted first since their bodies are
	// themselves ordinary test syntax; each removal shrinks the string so
	// the remaining passes re-scan against the shrinking `out`.
	for {
		loc := embeddedRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		embeddedCounter++
		body := out[loc[2]:loc[3]]
		r.Tests = append(r.Tests, TestBlock{
			Description: fmt.Sprintf("embedded test %d", embeddedCounter),
			Body:        strings.TrimSpace(body),
			Line:        lineOf(out, loc[0]),
		})
		out = out[:loc[0]] + out[loc[1]:]
	}

	for {
		loc := testDescRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		desc := unquote(out[loc[2]:loc[3]])
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated test body")
		}
		r.Tests = append(r.Tests, TestBlock{Description: desc, Body: out[braceOpen+1 : braceClose-1], Line: lineOf(out, loc[0])})
		out = out[:loc[0]] + out[braceClose:]
	}

	for {
		loc := testCallRe.FindStringSubmatchIndex(out)
		if loc == nil {
			break
		}
		args := strings.TrimSpace(out[loc[2]:loc[3]])
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated test body")
		}
		desc := args
		if desc == "" {
			anonCounter++
			desc = fmt.Sprintf("test %d", anonCounter)
		}
		r.Tests = append(r.Tests, TestBlock{Description: desc, Body: out[braceOpen+1 : braceClose-1], Line: lineOf(out, loc[0])})
		out = out[:loc[0]] + out[braceClose:]
	}

	for {
		loc := testAnonRe.FindStringIndex(out)
		if loc == nil {
			break
		}
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated test body")
		}
		anonCounter++
		r.Tests = append(r.Tests, TestBlock{
			Description: fmt.Sprintf("test %d", anonCounter),
			Body:        out[braceOpen+1 : braceClose-1],
			Line:        lineOf(out, loc[0]),
		})
		out = out[:loc[0]] + out[braceClose:]
	}

	for {
		loc := mockRe.FindStringIndex(out)
		if loc == nil {
			break
		}
		braceOpen := loc[1] - 1
		braceClose := matchBalanced(out, braceOpen, '{', '}')
		if braceClose == -1 {
			return "", syntaxErrAt(out, braceOpen, "unterminated-block", "unterminated mock body")
		}
		r.Mocks = append(r.Mocks, TestBlock{IsMock: true, Body: out[braceOpen+1 : braceClose-1], Line: lineOf(out, loc[0])})
		out = out[:loc[0]] + out[braceClose:]
	}

	return out, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func lineOf(src string, pos int) int {
	line, _ := lineColOf(src, pos)
	return line
}
