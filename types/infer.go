package types

// OrderedObject represents a literal object example value with property
// order preserved as written in source (spec §4.3: "insertion order
// preserved"). Plain Go maps cannot carry that order, so every object
// literal produced by the parser/preprocessor when evaluating an example
// expression is wrapped in one of these rather than a bare map[string]any.
type OrderedObject struct {
	Keys   []string
	Values map[string]any
}

// NewOrderedObject returns an empty OrderedObject ready for Set calls.
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{Values: make(map[string]any)}
}

// Set appends key (if new) and stores value, preserving first-seen order.
func (o *OrderedObject) Set(key string, value any) {
	if _, ok := o.Values[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// UnionExample wraps the member example values of a source-level union
// expression (`A || B`, spec §4.3) so InferTypeFromValue can special-case it
// instead of trying to infer a single value's type.
type UnionExample struct {
	Members []any
}

// InferTypeFromValue derives a Type record from a literal example value,
// per spec §4.3. The accepted value shapes are the ones the preprocessor
// and parser produce when evaluating example expressions: nil, bool,
// float64/int (both read as "number" source), string, []any, *OrderedObject,
// and *UnionExample.
func InferTypeFromValue(v any) *Type {
	switch val := v.(type) {
	case nil:
		return Null()
	case Undefined:
		return &Type{Kind: KindNull, XTJSUndefined: true}
	case string:
		return &Type{Kind: KindString}
	case bool:
		return &Type{Kind: KindBoolean}
	case int:
		return &Type{Kind: KindInteger}
	case int64:
		return &Type{Kind: KindInteger}
	case float64:
		if isIntegerValued(val) {
			return &Type{Kind: KindInteger}
		}
		return &Type{Kind: KindNumber}
	case []any:
		if len(val) == 0 {
			return &Type{Kind: KindArray, Items: Any}
		}
		return &Type{Kind: KindArray, Items: InferTypeFromValue(val[0])}
	case *OrderedObject:
		shape := &Type{Kind: KindObject}
		for _, k := range val.Keys {
			shape.WithShapeKey(k, InferTypeFromValue(val.Values[k]))
		}
		return shape
	case map[string]any:
		// Fallback for values constructed without order tracking (tests,
		// programmatic callers); order falls back to Go's randomized map
		// iteration, which is why the parser always prefers *OrderedObject.
		shape := &Type{Kind: KindObject}
		for k, mv := range val {
			shape.WithShapeKey(k, InferTypeFromValue(mv))
		}
		return shape
	case *UnionExample:
		return inferUnion(val.Members)
	default:
		return &Type{Kind: KindAny}
	}
}

// Undefined is the sentinel value representing a JS `undefined` example,
// distinct from nil/null (spec §4.3).
type Undefined struct{}

func isIntegerValued(f float64) bool {
	return f == float64(int64(f))
}

// inferUnion derives a union Type from the example values of each branch of
// a source-level `A || B [|| C...]` expression. If any branch infers to
// null, that member is dropped and Nullable is set on the remaining
// member(s) instead of keeping a standalone null member — spec §4.3: "if
// any member is null, set nullable:true on the other."
func inferUnion(members []any) *Type {
	var inferred []*Type
	sawNull := false
	for _, m := range members {
		t := InferTypeFromValue(m)
		if t.Kind == KindNull && !t.XTJSUndefined {
			sawNull = true
			continue
		}
		inferred = append(inferred, t)
	}
	if len(inferred) == 0 {
		return Null()
	}
	if sawNull {
		if len(inferred) == 1 {
			out := inferred[0].Clone()
			out.Nullable = true
			return out
		}
		for _, t := range inferred {
			t.Nullable = true
		}
	}
	if len(inferred) == 1 {
		return inferred[0]
	}
	return &Type{Kind: KindUnion, Members: inferred}
}
