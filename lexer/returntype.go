package lexer

import "regexp"

var returnTypeRe = regexp.MustCompile(`\)\s*(->|-\?|-!)\s*([^{]+?)\s*\{`)

// extractReturnType implements spec §4.1 step 3: `) -> T {`, `) -? T {`,
// `) -! T {` — the first return type is captured for the primary function;
// all occurrences are stripped so downstream parsing sees ordinary
// JavaScript (`) {`).
func extractReturnType(src string) (rest, returnType, policy string) {
	matches := returnTypeRe.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, "", ""
	}
	first := matches[0]
	policy = src[first[2]:first[3]]
	returnType = src[first[4]:first[5]]

	out := src
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		out = out[:m[0]] + ") {" + out[m[1]:]
	}
	return out, returnType, policy
}
