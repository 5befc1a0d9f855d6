package openai

import (
	"context"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/vm"
)

type stubChatClient struct {
	lastParams openai.ChatCompletionNewParams
	resp       *openai.ChatCompletion
	err        error
}

func (s *stubChatClient) New(_ context.Context, params openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	s.lastParams = params
	return s.resp, s.err
}

func TestComplete_TextResponse(t *testing.T) {
	stub := &stubChatClient{
		resp: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "world"}, FinishReason: "stop"},
			},
		},
	}
	cl, err := New(stub, Options{DefaultModel: "gpt-4o"})
	require.NoError(t, err)

	resp, err := cl.Complete(context.Background(), vm.LLMRequest{
		Messages: []vm.LLMMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, "stop", resp.StopReason)
	assert.Equal(t, "gpt-4o", stub.lastParams.Model)
}

func TestComplete_RequiresMessages(t *testing.T) {
	cl, err := New(&stubChatClient{}, Options{DefaultModel: "gpt-4o"})
	require.NoError(t, err)
	_, err = cl.Complete(context.Background(), vm.LLMRequest{})
	require.Error(t, err)
}

func TestNew_RequiresDefaultModel(t *testing.T) {
	_, err := New(&stubChatClient{}, Options{})
	require.Error(t, err)
}
