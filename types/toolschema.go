package types

// ToToolSchema renders a Type as an OpenAI-style JSON Schema fragment
// (spec §6): `{kind:'number'|'integer'}` both collapse to `"number"`,
// arrays become `"array"` with `items`, and objects become `"object"` with
// `properties` + a `required` list. The richer `integer` vs `number`
// distinction named in spec §9's Open Questions is preserved in the TJS
// `fn.__tjs` metadata (types.Type itself) and only collapsed at this
// tool-descriptor boundary.
func ToToolSchema(t *Type, required bool) map[string]any {
	out := toolSchemaInner(t)
	if t != nil && t.Nullable {
		out["nullable"] = true
	}
	return out
}

func toolSchemaInner(t *Type) map[string]any {
	if t == nil {
		return map[string]any{}
	}
	switch t.Kind {
	case KindInteger, KindNumber:
		return map[string]any{"type": "number"}
	case KindString:
		return map[string]any{"type": "string"}
	case KindBoolean:
		return map[string]any{"type": "boolean"}
	case KindNull:
		return map[string]any{"type": "null"}
	case KindAny:
		return map[string]any{}
	case KindArray:
		return map[string]any{"type": "array", "items": toolSchemaInner(t.Items)}
	case KindObject:
		props := make(map[string]any, len(t.ShapeKeys))
		var required []string
		for _, k := range t.ShapeKeys {
			member := t.Shape[k]
			props[k] = toolSchemaInner(member)
			if member == nil || !member.Nullable {
				required = append(required, k)
			}
		}
		schema := map[string]any{"type": "object", "properties": props}
		if len(required) > 0 {
			schema["required"] = required
		}
		return schema
	case KindUnion:
		var anyOf []map[string]any
		for _, m := range t.Members {
			anyOf = append(anyOf, toolSchemaInner(m))
		}
		return map[string]any{"anyOf": anyOf}
	default:
		return map[string]any{}
	}
}
