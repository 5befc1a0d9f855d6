// Package anthropic implements vm.LLMCapability on top of the Anthropic
// Claude Messages API, adapted from the teacher's own Anthropic adapter
// (features/model/anthropic) down to the plainer request/response shapes
// package vm's `llm.call` binding works with.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tjs-lang/tjs/vm"
)

// MessagesClient captures the subset of the Anthropic SDK used here, so
// callers can pass either a real client or a mock in tests — the same
// seam the teacher's adapter exposes.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Client implements vm.LLMCapability via Anthropic Messages.
type Client struct {
	msg          MessagesClient
	defaultModel string
}

// Options configures a Client.
type Options struct {
	// DefaultModel is used when a request's Model is empty.
	DefaultModel string
}

// New builds a Client from an Anthropic Messages client.
func New(msg MessagesClient, opts Options) (*Client, error) {
	if msg == nil {
		return nil, errors.New("anthropic: messages client is required")
	}
	if opts.DefaultModel == "" {
		return nil, errors.New("anthropic: default model identifier is required")
	}
	return &Client{msg: msg, defaultModel: opts.DefaultModel}, nil
}

// NewFromAPIKey constructs a Client using the SDK's default HTTP client.
func NewFromAPIKey(apiKey, defaultModel string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, Options{DefaultModel: defaultModel})
}

// Complete implements vm.LLMCapability.
func (c *Client) Complete(ctx context.Context, req vm.LLMRequest) (vm.LLMResponse, error) {
	if len(req.Messages) == 0 {
		return vm.LLMResponse{}, errors.New("anthropic: at least one message is required")
	}
	modelID := req.Model
	if modelID == "" {
		modelID = c.defaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	var conversation []sdk.MessageParam
	for _, m := range req.Messages {
		block := sdk.NewTextBlock(m.Content)
		switch m.Role {
		case "assistant":
			conversation = append(conversation, sdk.NewAssistantMessage(block))
		default:
			conversation = append(conversation, sdk.NewUserMessage(block))
		}
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(modelID),
		MaxTokens: int64(maxTokens),
		Messages:  conversation,
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	msg, err := c.msg.New(ctx, params)
	if err != nil {
		return vm.LLMResponse{}, fmt.Errorf("anthropic messages.new: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return vm.LLMResponse{Text: text, StopReason: string(msg.StopReason)}, nil
}
