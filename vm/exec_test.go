package vm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/atomir"
)

func mustLower(t *testing.T, body string) *atomir.Node {
	t.Helper()
	n, err := atomir.Lower(body)
	require.NoError(t, err)
	return n
}

func TestExecute_SimpleReturn(t *testing.T) {
	node := mustLower(t, "{ return a + b; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{"a": int64(1), "b": int64(2)})
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
}

func TestExecute_IfElse(t *testing.T) {
	node := mustLower(t, "{ if (a > 0) { return 1; } else { return -1; } }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{"a": int64(-5)})
	require.NoError(t, err)
	assert.EqualValues(t, -1, v)
}

func TestExecute_ForOfAccumulates(t *testing.T) {
	node := mustLower(t, "{ let total = 0; for (const x of xs) { total = total + x; } return total; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{"xs": []any{int64(1), int64(2), int64(3)}})
	require.NoError(t, err)
	assert.EqualValues(t, 6, v)
}

func TestExecute_ForOfBreak(t *testing.T) {
	node := mustLower(t, "{ let total = 0; for (const x of xs) { if (x > 2) { break; } total = total + x; } return total; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{"xs": []any{int64(1), int64(2), int64(3), int64(4)}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
}

func TestExecute_WhileAccumulates(t *testing.T) {
	node := mustLower(t, "{ let total = 0; let n = 0; while (n < 3) { total = total + n; n = n + 1; } return total; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
}

func TestExecute_WhileBreak(t *testing.T) {
	node := mustLower(t, "{ let n = 0; while (n < 10) { if (n > 2) { break; } n = n + 1; } return n; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
}

func TestExecute_WhileChargesFuelPerIteration(t *testing.T) {
	node := mustLower(t, "{ let n = 0; while (n < 1000000) { n = n + 1; } return n; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	_, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.Error(t, err)
	var me *MonadicError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "fuel", me.Op)
	assert.EqualValues(t, 1000, rctx.Fuel.Charged())
}

func TestExecute_ConstReassignmentViaPlainAssignmentErrors(t *testing.T) {
	node := mustLower(t, "{ const x = 5; x = 10; return x; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	_, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.Error(t, err)
	var me *MonadicError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "const-reassignment", me.Op)
	assert.Contains(t, me.Message, "Cannot reassign const variable 'x'")
}

func TestExecute_ConstRedeclarationErrors(t *testing.T) {
	node := mustLower(t, "{ const x = 5; let x = 10; return x; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	_, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.Error(t, err)
	var me *MonadicError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "const-reassignment", me.Op)
}

func TestExecute_LetReassignmentIsFine(t *testing.T) {
	node := mustLower(t, "{ let x = 5; x = 10; return x; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.NoError(t, err)
	assert.EqualValues(t, 10, v)
}

func TestExecute_TryCatchRecovers(t *testing.T) {
	node := mustLower(t, "{ try { return boom(); } catch (e) { return 'recovered'; } }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	v, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestExecute_FuelExhaustion(t *testing.T) {
	node := mustLower(t, "{ let total = 0; for (const x of xs) { total = total + x; } return total; }")
	rctx := NewRuntimeContext(2, Capabilities{})
	_, err := Execute(context.Background(), rctx, node, map[string]any{"xs": []any{int64(1), int64(2), int64(3)}})
	require.Error(t, err)
	var me *MonadicError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "fuel", me.Op)
}

func TestExecute_TimeoutFromContext(t *testing.T) {
	node := mustLower(t, "{ return 1; }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err := Execute(ctx, rctx, node, map[string]any{})
	require.Error(t, err)
}

type fakeStore struct {
	data map[string]any
}

func (f *fakeStore) Get(ctx context.Context, key string) (any, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}
func (f *fakeStore) Set(ctx context.Context, key string, value any) error {
	f.data[key] = value
	return nil
}
func (f *fakeStore) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestExecute_StoreCapability(t *testing.T) {
	node := mustLower(t, "{ store.set('k', v); return store.get('k'); }")
	store := &fakeStore{data: map[string]any{}}
	rctx := NewRuntimeContext(1000, Capabilities{Store: store})
	v, err := Execute(context.Background(), rctx, node, map[string]any{"v": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestExecute_MissingCapabilityIsMonadicError(t *testing.T) {
	node := mustLower(t, "{ return fetch.fetch('http://x', {}); }")
	rctx := NewRuntimeContext(1000, Capabilities{})
	_, err := Execute(context.Background(), rctx, node, map[string]any{})
	require.Error(t, err)
	var me *MonadicError
	require.ErrorAs(t, err, &me)
}
