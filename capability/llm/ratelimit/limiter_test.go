package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/vm"
)

type stubLLM struct{ calls int }

func (s *stubLLM) Complete(ctx context.Context, req vm.LLMRequest) (vm.LLMResponse, error) {
	s.calls++
	return vm.LLMResponse{Text: "ok"}, nil
}

func TestWrap_ZeroRateDisablesLimiting(t *testing.T) {
	stub := &stubLLM{}
	wrapped := Wrap(stub, 0)
	assert.Same(t, stub, wrapped)
}

func TestWrap_NilCapabilityPassesThrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, 60))
}

func TestLimiter_DelegatesAfterWaiting(t *testing.T) {
	stub := &stubLLM{}
	wrapped := Wrap(stub, 6000) // 100/sec, fast enough for a test
	resp, err := wrapped.Complete(context.Background(), vm.LLMRequest{Messages: []vm.LLMMessage{{Role: "user", Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 1, stub.calls)
}

func TestLimiter_RespectsContextCancellation(t *testing.T) {
	stub := &stubLLM{}
	wrapped := Wrap(stub, 1) // one per minute: second call must wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := wrapped.Complete(context.Background(), vm.LLMRequest{Messages: []vm.LLMMessage{{Role: "user", Content: "hi"}}})
	require.NoError(t, err)

	_, err = wrapped.Complete(ctx, vm.LLMRequest{Messages: []vm.LLMMessage{{Role: "user", Content: "hi"}}})
	assert.Error(t, err)
}
