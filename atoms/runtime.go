package atoms

import (
	"reflect"

	"github.com/dop251/goja"

	"github.com/tjs-lang/tjs/types"
)

// typeRecord is the JS-visible shape a Type/Generic/Union/Enum declaration
// evaluates to once lowered by the preprocessor (spec §4.1/§3): a plain
// object carrying its inferred/declared Type alongside the declaration's
// own name, so `CheckType`/`Is` calls elsewhere in the same
// procedure body can find it again via a variable reference.
type typeRecord struct {
	Name string      `json:"name"`
	Type *types.Type `json:"-"`
}

// Bind installs the built-in declaration constructors and identity
// operators (spec §3, §4.1) as globals in rt, so source rewritten by the
// preprocessor's declaration/identity passes resolves to real behavior
// instead of an undefined JS function.
func Bind(rt *goja.Runtime) {
	// Type(name, example), or the body form Type(desc, predicate, example):
	// the example is always the last argument.
	rt.Set("Type", func(name string, args ...goja.Value) *typeRecord {
		var example goja.Value
		if len(args) > 0 {
			example = args[len(args)-1]
		}
		return &typeRecord{Name: name, Type: types.InferTypeFromValue(toGo(example))}
	})

	rt.Set("Generic", func(name string, members ...goja.Value) *typeRecord {
		return &typeRecord{Name: name, Type: &types.Type{Kind: types.KindAny}}
	})

	rt.Set("Union", func(name string, members ...goja.Value) *typeRecord {
		values := make([]any, 0, len(members))
		for _, m := range members {
			values = append(values, toGo(m))
		}
		// The preprocessor's rewrite passes the members as one array.
		if len(values) == 1 {
			if arr, ok := values[0].([]any); ok {
				values = arr
			}
		}
		t := &types.Type{Kind: types.KindUnion}
		for _, v := range values {
			t.Members = append(t.Members, types.InferTypeFromValue(v))
		}
		return &typeRecord{Name: name, Type: t}
	})

	rt.Set("Enum", func(name string, members ...goja.Value) map[string]any {
		// The preprocessor's rewrite passes one object of already-numbered
		// members; the variadic form numbers string members by position.
		if len(members) == 1 {
			if obj, ok := toGo(members[0]).(map[string]any); ok {
				return obj
			}
		}
		out := map[string]any{}
		for i, m := range members {
			key, _ := toGo(m).(string)
			if key == "" {
				continue
			}
			out[key] = int64(i)
		}
		return out
	})

	rt.Set("Is", func(a, b goja.Value) bool {
		return deepEqual(toGo(a), toGo(b))
	})
	rt.Set("IsNot", func(a, b goja.Value) bool {
		return !deepEqual(toGo(a), toGo(b))
	})

	rt.Set("CheckType", func(v goja.Value, t *typeRecord) bool {
		if t == nil {
			return false
		}
		return types.CheckType(toGo(v), t.Type)
	})
}

func toGo(v goja.Value) any {
	if v == nil {
		return nil
	}
	return v.Export()
}

func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
