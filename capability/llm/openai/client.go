// Package openai implements vm.LLMCapability on top of the OpenAI Chat
// Completions API via the official github.com/openai/openai-go SDK,
// following the same client-interface/Options/New/NewFromAPIKey layering
// the teacher uses for its own model adapters (features/model/anthropic,
// features/model/openai).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tjs-lang/tjs/vm"
)

// ChatClient captures the subset of the OpenAI SDK used here.
type ChatClient interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Options configures a Client.
type Options struct {
	// DefaultModel is used when a request's Model is empty.
	DefaultModel string
}

// Client implements vm.LLMCapability via OpenAI Chat Completions.
type Client struct {
	chat  ChatClient
	model string
}

// New builds a Client from a Chat Completions client.
func New(chat ChatClient, opts Options) (*Client, error) {
	if chat == nil {
		return nil, errors.New("openai: chat client is required")
	}
	modelID := strings.TrimSpace(opts.DefaultModel)
	if modelID == "" {
		return nil, errors.New("openai: default model is required")
	}
	return &Client{chat: chat, model: modelID}, nil
}

// NewFromAPIKey constructs a Client using the SDK's default HTTP client.
func NewFromAPIKey(apiKey, defaultModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	cl := openai.NewClient(option.WithAPIKey(apiKey))
	return New(&cl.Chat.Completions, Options{DefaultModel: defaultModel})
}

// Complete implements vm.LLMCapability.
func (c *Client) Complete(ctx context.Context, req vm.LLMRequest) (vm.LLMResponse, error) {
	if len(req.Messages) == 0 {
		return vm.LLMResponse{}, errors.New("openai: messages are required")
	}
	modelID := strings.TrimSpace(req.Model)
	if modelID == "" {
		modelID = c.model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    modelID,
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := c.chat.New(ctx, params)
	if err != nil {
		return vm.LLMResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return vm.LLMResponse{}, errors.New("openai: response had no choices")
	}
	choice := resp.Choices[0]
	return vm.LLMResponse{Text: choice.Message.Content, StopReason: choice.FinishReason}, nil
}
