// Package bedrock implements vm.LLMCapability on top of the AWS Bedrock
// Converse API, adapted from the teacher's Bedrock adapter
// (features/model/bedrock) down to the plainer request/response shapes
// package vm's `llm.call` binding works with.
package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	smithy "github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/tjs-lang/tjs/vm"
)

// ErrRateLimited marks a Converse failure as provider-side throttling
// (spec §7 expects distinguishable failure ops), so callers/retries can
// treat it differently from an ordinary request error rather than
// inspecting the error message text.
var ErrRateLimited = errors.New("bedrock: rate limited")

// RuntimeClient captures the subset of the Bedrock runtime SDK used here,
// so callers can pass either a real client or a mock in tests — the same
// seam the teacher's adapter exposes.
type RuntimeClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configures a Client.
type Options struct {
	// DefaultModel is used when a request's Model is empty.
	DefaultModel string
}

// Client implements vm.LLMCapability via Bedrock Converse.
type Client struct {
	runtime      RuntimeClient
	defaultModel string
}

// New builds a Client from a Bedrock runtime client.
func New(runtime RuntimeClient, opts Options) (*Client, error) {
	if runtime == nil {
		return nil, errors.New("bedrock: runtime client is required")
	}
	modelID := strings.TrimSpace(opts.DefaultModel)
	if modelID == "" {
		return nil, errors.New("bedrock: default model identifier is required")
	}
	return &Client{runtime: runtime, defaultModel: modelID}, nil
}

// Complete implements vm.LLMCapability.
func (c *Client) Complete(ctx context.Context, req vm.LLMRequest) (vm.LLMResponse, error) {
	if len(req.Messages) == 0 {
		return vm.LLMResponse{}, errors.New("bedrock: at least one message is required")
	}
	modelID := strings.TrimSpace(req.Model)
	if modelID == "" {
		modelID = c.defaultModel
	}

	var conversation []brtypes.Message
	for _, m := range req.Messages {
		role := brtypes.ConversationRoleUser
		if m.Role == "assistant" {
			role = brtypes.ConversationRoleAssistant
		}
		conversation = append(conversation, brtypes.Message{
			Role:    role,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: m.Content}},
		})
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  &modelID,
		Messages: conversation,
	}
	if req.System != "" {
		input.System = []brtypes.SystemContentBlock{&brtypes.SystemContentBlockMemberText{Value: req.System}}
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		cfg := brtypes.InferenceConfiguration{}
		if req.MaxTokens > 0 {
			maxTokens := int32(req.MaxTokens)
			cfg.MaxTokens = &maxTokens
		}
		if req.Temperature > 0 {
			temp := float32(req.Temperature)
			cfg.Temperature = &temp
		}
		input.InferenceConfig = &cfg
	}

	output, err := c.runtime.Converse(ctx, input)
	if err != nil {
		if isRateLimited(err) {
			return vm.LLMResponse{}, fmt.Errorf("bedrock converse: %w: %w", ErrRateLimited, err)
		}
		return vm.LLMResponse{}, fmt.Errorf("bedrock converse: %w", err)
	}
	return translateResponse(output)
}

// isRateLimited classifies a Converse error as provider throttling,
// adapted from the teacher's own bedrock adapter: a recognized
// ThrottlingException/TooManyRequestsException API error code, or an
// HTTP 429 response, both count.
func isRateLimited(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 429 {
		return true
	}
	return false
}

func translateResponse(output *bedrockruntime.ConverseOutput) (vm.LLMResponse, error) {
	if output == nil {
		return vm.LLMResponse{}, errors.New("bedrock: response is nil")
	}
	msg, ok := output.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return vm.LLMResponse{}, errors.New("bedrock: response had no message output")
	}
	var text string
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok {
			text += tb.Value
		}
	}
	return vm.LLMResponse{Text: text, StopReason: string(output.StopReason)}, nil
}
