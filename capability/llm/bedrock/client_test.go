package bedrock

import (
	"context"
	"errors"
	"testing"

	smithy "github.com/aws/smithy-go"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjs-lang/tjs/vm"
)

type fakeAPIError struct{ code string }

func (e *fakeAPIError) Error() string             { return "api error: " + e.code }
func (e *fakeAPIError) ErrorCode() string         { return e.code }
func (e *fakeAPIError) ErrorMessage() string      { return e.code }
func (e *fakeAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }

type stubRuntimeClient struct {
	lastInput *bedrockruntime.ConverseInput
	resp      *bedrockruntime.ConverseOutput
	err       error
}

func (s *stubRuntimeClient) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	s.lastInput = params
	return s.resp, s.err
}

func TestComplete_TextResponse(t *testing.T) {
	stub := &stubRuntimeClient{
		resp: &bedrockruntime.ConverseOutput{
			Output: &brtypes.ConverseOutputMemberMessage{
				Value: brtypes.Message{
					Role:    brtypes.ConversationRoleAssistant,
					Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: "world"}},
				},
			},
			StopReason: brtypes.StopReasonEndTurn,
		},
	}
	cl, err := New(stub, Options{DefaultModel: "anthropic.claude-3-sonnet"})
	require.NoError(t, err)

	resp, err := cl.Complete(context.Background(), vm.LLMRequest{
		Messages: []vm.LLMMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, string(brtypes.StopReasonEndTurn), resp.StopReason)
	assert.Equal(t, "anthropic.claude-3-sonnet", *stub.lastInput.ModelId)
}

func TestComplete_RequiresMessages(t *testing.T) {
	cl, err := New(&stubRuntimeClient{}, Options{DefaultModel: "anthropic.claude-3-sonnet"})
	require.NoError(t, err)
	_, err = cl.Complete(context.Background(), vm.LLMRequest{})
	require.Error(t, err)
}

func TestNew_RequiresDefaultModel(t *testing.T) {
	_, err := New(&stubRuntimeClient{}, Options{})
	require.Error(t, err)
}

func TestNew_RequiresRuntime(t *testing.T) {
	_, err := New(nil, Options{DefaultModel: "anthropic.claude-3-sonnet"})
	require.Error(t, err)
}

func TestComplete_ClassifiesThrottlingAsRateLimited(t *testing.T) {
	stub := &stubRuntimeClient{err: &fakeAPIError{code: "ThrottlingException"}}
	cl, err := New(stub, Options{DefaultModel: "anthropic.claude-3-sonnet"})
	require.NoError(t, err)

	_, err = cl.Complete(context.Background(), vm.LLMRequest{
		Messages: []vm.LLMMessage{{Role: "user", Content: "hello"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestComplete_NonThrottlingErrorIsNotRateLimited(t *testing.T) {
	stub := &stubRuntimeClient{err: &fakeAPIError{code: "ValidationException"}}
	cl, err := New(stub, Options{DefaultModel: "anthropic.claude-3-sonnet"})
	require.NoError(t, err)

	_, err = cl.Complete(context.Background(), vm.LLMRequest{
		Messages: []vm.LLMMessage{{Role: "user", Content: "hello"}},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRateLimited))
}
