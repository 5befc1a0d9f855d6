package parser

import (
	"regexp"
	"strings"
)

var (
	jsdocRe = regexp.MustCompile(`/\*\*([\s\S]*?)\*/\s*$`)
	terseRe = regexp.MustCompile(`/\*#([\s\S]*?)\*/\s*$`)
	tagRe   = regexp.MustCompile(`(?m)^\s*\*?\s*@(\w+)\s*(?:\{([^}]*)\})?\s*(.*)$`)
)

// docBefore looks for a `/** ... */` or `/*# ... */` comment immediately
// preceding offset pos in src (only whitespace between the comment and
// pos), and parses it. Returns nil if there is none.
func docBefore(src string, pos int) *Doc {
	head := src[:pos]
	head = strings.TrimRight(head, " \t\n\r")

	if m := jsdocRe.FindStringSubmatchIndex(head); m != nil && m[1] == len(head) {
		return parseJSDocBody(head[m[2]:m[3]], false)
	}
	if m := terseRe.FindStringSubmatchIndex(head); m != nil && m[1] == len(head) {
		return parseJSDocBody(head[m[2]:m[3]], true)
	}
	return nil
}

func parseJSDocBody(body string, terse bool) *Doc {
	lines := strings.Split(body, "\n")
	var descLines []string
	var tags []JSDocTag
	inTags := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimSpace(trimmed)
		if strings.HasPrefix(trimmed, "@") {
			inTags = true
			sub := tagRe.FindStringSubmatch("* " + trimmed)
			if sub != nil {
				tags = append(tags, JSDocTag{Name: sub[1], Type: sub[2], Description: strings.TrimSpace(sub[3])})
			}
			continue
		}
		if !inTags && trimmed != "" {
			descLines = append(descLines, trimmed)
		}
	}
	return &Doc{
		Raw:         body,
		Description: strings.TrimSpace(strings.Join(descLines, " ")),
		Tags:        tags,
		Terse:       terse,
	}
}
