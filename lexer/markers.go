package lexer

import (
	"regexp"
	"sort"
)

var (
	fnMarkerRe    = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)\s*\(\s*([!?])`)
	arrowMarkerRe = regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*\(\s*([!?])`)
)

type markerEdit struct {
	start, end int // byte range of the marker char to remove
	insert     string
	name       string
	isUnsafe   bool
}

// extractMarkers implements spec §4.1 step 2: `function f(! …)` strips the
// `!` and records f in unsafeFunctions; `function f(? …)` strips the `?`
// and records f in safeFunctions. Arrow-function equivalents collapse the
// marker into a comment instead of disappearing silently, since an arrow
// function has no declaration keyword to hang the "this was marked" fact
// on for a human reader of the emitted JS.
func extractMarkers(src string, r *Result) (string, error) {
	var edits []markerEdit

	for _, m := range fnMarkerRe.FindAllStringSubmatchIndex(src, -1) {
		markerStart, markerEnd := m[4], m[5]
		name := src[m[2]:m[3]]
		isUnsafe := src[markerStart:markerEnd] == "!"
		edits = append(edits, markerEdit{start: markerStart, end: markerEnd, insert: "", name: name, isUnsafe: isUnsafe})
	}
	for _, m := range arrowMarkerRe.FindAllStringSubmatchIndex(src, -1) {
		markerStart, markerEnd := m[4], m[5]
		name := src[m[2]:m[3]]
		isUnsafe := src[markerStart:markerEnd] == "!"
		label := "safe"
		if isUnsafe {
			label = "unsafe"
		}
		edits = append(edits, markerEdit{start: markerStart, end: markerEnd, insert: "/* " + label + " */", name: name, isUnsafe: isUnsafe})
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := src
	for _, e := range edits {
		out = out[:e.start] + e.insert + out[e.end:]
		if e.isUnsafe {
			r.UnsafeFunctions[e.name] = true
		} else {
			r.SafeFunctions[e.name] = true
		}
	}
	return out, nil
}
