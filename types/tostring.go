package types

import "strings"

// TypeToString renders a Type back to a display string for diagnostics
// (signature-test failure messages, §4.6: "Expected X, got Y").
func TypeToString(t *Type) string {
	if t == nil {
		return "any"
	}
	base := string(t.Kind)
	switch t.Kind {
	case KindArray:
		base = TypeToString(t.Items) + "[]"
	case KindObject:
		var parts []string
		for _, k := range t.ShapeKeys {
			parts = append(parts, k+": "+TypeToString(t.Shape[k]))
		}
		base = "{" + strings.Join(parts, ", ") + "}"
	case KindUnion:
		var parts []string
		for _, m := range t.Members {
			parts = append(parts, TypeToString(m))
		}
		base = strings.Join(parts, " | ")
	}
	if t.Nullable && t.Kind != KindUnion {
		base += " | null"
	}
	return base
}

// TypeOf mirrors the JS-visible `typeOf` monadic helper from spec §6: it
// reports the runtime kind of a value using the same conventions as
// InferTypeFromValue, so `InferTypeFromValue(v).Kind` always matches
// `TypeOf(v)` (spec §8 round-trip law).
func TypeOf(v any) Kind {
	return InferTypeFromValue(v).Kind
}
