package anthropic

import (
	"context"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/vm"
)

type stubMessagesClient struct {
	lastParams sdk.MessageNewParams
	resp       *sdk.Message
	err        error
}

func (s *stubMessagesClient) New(_ context.Context, body sdk.MessageNewParams, _ ...option.RequestOption) (*sdk.Message, error) {
	s.lastParams = body
	return s.resp, s.err
}

func TestComplete_TextResponse(t *testing.T) {
	stub := &stubMessagesClient{
		resp: &sdk.Message{
			Content:    []sdk.ContentBlockUnion{{Type: "text", Text: "world"}},
			StopReason: sdk.StopReasonEndTurn,
		},
	}
	cl, err := New(stub, Options{DefaultModel: "claude-3.5-sonnet"})
	require.NoError(t, err)

	resp, err := cl.Complete(context.Background(), vm.LLMRequest{
		Messages: []vm.LLMMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, string(sdk.StopReasonEndTurn), resp.StopReason)
	assert.Equal(t, sdk.Model("claude-3.5-sonnet"), stub.lastParams.Model)
}

func TestComplete_RequiresMessages(t *testing.T) {
	cl, err := New(&stubMessagesClient{}, Options{DefaultModel: "claude-3.5-sonnet"})
	require.NoError(t, err)
	_, err = cl.Complete(context.Background(), vm.LLMRequest{})
	require.Error(t, err)
}

func TestNew_RequiresDefaultModel(t *testing.T) {
	_, err := New(&stubMessagesClient{}, Options{})
	require.Error(t, err)
}
