package types

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferTypeFromValue_Primitives(t *testing.T) {
	assert.Equal(t, KindString, InferTypeFromValue("s").Kind)
	assert.Equal(t, KindInteger, InferTypeFromValue(42).Kind)
	assert.Equal(t, KindInteger, InferTypeFromValue(42.0).Kind)
	assert.Equal(t, KindNumber, InferTypeFromValue(4.2).Kind)
	assert.Equal(t, KindBoolean, InferTypeFromValue(true).Kind)
	assert.Equal(t, KindNull, InferTypeFromValue(nil).Kind)

	undef := InferTypeFromValue(Undefined{})
	require.Equal(t, KindNull, undef.Kind)
	assert.True(t, undef.XTJSUndefined)
}

func TestInferTypeFromValue_EmptyArrayIsAny(t *testing.T) {
	arr := InferTypeFromValue([]any{})
	require.Equal(t, KindArray, arr.Kind)
	assert.Equal(t, KindAny, arr.Items.Kind)
	assert.True(t, CheckType([]any{"x", 1, true}, arr))
}

func TestInferTypeFromValue_ArrayOfNumber(t *testing.T) {
	arr := InferTypeFromValue([]any{1.0, 2.0})
	require.Equal(t, KindArray, arr.Kind)
	assert.Equal(t, KindInteger, arr.Items.Kind)
}

func TestInferTypeFromValue_Object(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("a", 1.0)
	obj.Set("b", "x")
	tv := InferTypeFromValue(obj)
	require.Equal(t, KindObject, tv.Kind)
	assert.Equal(t, []string{"a", "b"}, tv.ShapeKeys)
	assert.Equal(t, KindInteger, tv.Shape["a"].Kind)
	assert.Equal(t, KindString, tv.Shape["b"].Kind)
}

func TestInferTypeFromValue_Union(t *testing.T) {
	u := InferTypeFromValue(&UnionExample{Members: []any{"x", 1.0}})
	require.Equal(t, KindUnion, u.Kind)
	require.Len(t, u.Members, 2)
}

func TestInferTypeFromValue_UnionWithNullFoldsIntoNullable(t *testing.T) {
	u := InferTypeFromValue(&UnionExample{Members: []any{"x", nil}})
	require.Equal(t, KindString, u.Kind)
	assert.True(t, u.Nullable)
	assert.True(t, CheckType(nil, u))
	assert.True(t, CheckType("hi", u))
}

func TestCheckType_ObjectAllowsExtraKeys(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("a", 1.0)
	tv := InferTypeFromValue(obj)

	val := NewOrderedObject()
	val.Set("a", 2.0)
	val.Set("extra", "ignored")
	assert.True(t, CheckType(val, tv))
}

// TestCheckTypeRoundTrip is the §8 invariant: ∀ example value v:
// checkType(v, inferTypeFromValue(v)) === true.
func TestCheckTypeRoundTrip(t *testing.T) {
	params := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(params)

	properties.Property("round-trip holds for strings", prop.ForAll(
		func(s string) bool {
			return CheckType(s, InferTypeFromValue(s))
		},
		gen.AlphaString(),
	))

	properties.Property("round-trip holds for integers", prop.ForAll(
		func(n int) bool {
			return CheckType(float64(n), InferTypeFromValue(float64(n)))
		},
		gen.Int(),
	))

	properties.Property("round-trip holds for bools", prop.ForAll(
		func(b bool) bool {
			return CheckType(b, InferTypeFromValue(b))
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestTypeOfMatchesInferKind(t *testing.T) {
	for _, v := range []any{"s", 1.0, true, nil, []any{}} {
		assert.Equal(t, InferTypeFromValue(v).Kind, TypeOf(v))
	}
}
