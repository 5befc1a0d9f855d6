package lexer

import "strings"

// extractSafetyDirective implements spec §4.1 step 1: a bare
// `safety none|inputs|all` as the first non-comment logical line sets
// module-wide safety mode; the line is removed from the source.
func extractSafetyDirective(src string) (rest string, mode string) {
	line, offset := firstNonBlank(src)
	if offset < 0 {
		return src, ""
	}
	trimmed := strings.TrimSpace(stripLineComments(line))
	fields := strings.Fields(trimmed)
	if len(fields) != 2 || fields[0] != "safety" {
		return src, ""
	}
	switch fields[1] {
	case "none", "inputs", "all":
		mode = fields[1]
	default:
		return src, ""
	}
	end := offset + len(line)
	if end < len(src) && src[end] == '\n' {
		end++
	}
	rest = src[:offset] + src[end:]
	return rest, mode
}
