package types

// CheckType recursively tests whether v is a member of T, per spec §4.3.
// Extra keys on object values are allowed (the spec's reference behavior);
// there is no strict mode that rejects them.
func CheckType(v any, t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindAny:
		return true
	case KindNull:
		if isNilOrUndefined(v) {
			return true
		}
		return t.Nullable && checkNonNullMember(v, t)
	case KindString:
		_, ok := v.(string)
		return ok || (t.Nullable && isNilOrUndefined(v))
	case KindBoolean:
		_, ok := v.(bool)
		return ok || (t.Nullable && isNilOrUndefined(v))
	case KindNumber:
		_, ok := asFloat(v)
		return ok || (t.Nullable && isNilOrUndefined(v))
	case KindInteger:
		f, ok := asFloat(v)
		if ok {
			return isIntegerValued(f)
		}
		return t.Nullable && isNilOrUndefined(v)
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return t.Nullable && isNilOrUndefined(v)
		}
		for _, el := range arr {
			if !CheckType(el, t.Items) {
				return false
			}
		}
		return true
	case KindObject:
		if isNilOrUndefined(v) {
			return t.Nullable
		}
		obj, ok := toLookup(v)
		if !ok {
			return false
		}
		for _, key := range t.ShapeKeys {
			mv, present := obj[key]
			if !present {
				if t.Shape[key] != nil && t.Shape[key].Nullable {
					continue
				}
				return false
			}
			if !CheckType(mv, t.Shape[key]) {
				return false
			}
		}
		return true
	case KindUnion:
		for _, m := range t.Members {
			if CheckType(v, m) {
				return true
			}
		}
		return t.Nullable && isNilOrUndefined(v)
	default:
		return false
	}
}

func checkNonNullMember(v any, t *Type) bool {
	clone := t.Clone()
	clone.Nullable = false
	return CheckType(v, clone)
}

func isNilOrUndefined(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Undefined)
	return ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toLookup(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case *OrderedObject:
		return o.Values, true
	case map[string]any:
		return o, true
	default:
		return nil, false
	}
}
