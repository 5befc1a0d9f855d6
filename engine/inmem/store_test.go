package inmem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/vm"
)

func TestStore_NewSaveLoadDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	state, err := s.New(ctx, "double", map[string]any{"n": 2})
	require.NoError(t, err)
	assert.NotEmpty(t, state.Token)

	state.Result = map[string]any{"n": 4}
	state.Done = true
	require.NoError(t, s.Save(ctx, state))

	loaded, err := s.Load(ctx, state.Token)
	require.NoError(t, err)
	assert.True(t, loaded.Done)
	assert.Equal(t, map[string]any{"n": 4}, loaded.Result)

	require.NoError(t, s.Delete(ctx, state.Token))
	_, err = s.Load(ctx, state.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrProcedureNotFound))
}

func TestStore_LoadExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	state, err := s.New(ctx, "double", nil)
	require.NoError(t, err)
	state.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, s.Save(ctx, state))

	_, err = s.Load(ctx, state.Token)
	require.Error(t, err)
}

func TestStore_ClearExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	fresh, err := s.New(ctx, "f", nil)
	require.NoError(t, err)
	stale, err := s.New(ctx, "g", nil)
	require.NoError(t, err)
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.Save(ctx, stale))

	n, err := s.ClearExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Load(ctx, fresh.Token)
	assert.NoError(t, err)
	_, err = s.Load(ctx, stale.Token)
	assert.Error(t, err)
}
