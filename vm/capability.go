package vm

import "context"

// StoreCapability is the key/value persistence surface exposed to
// procedures as the `store` global (spec §5 capability injection).
type StoreCapability interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// FetchCapability is the outbound-HTTP surface exposed as `fetch`.
type FetchCapability interface {
	Fetch(ctx context.Context, url string, opts map[string]any) (map[string]any, error)
}

// LLMCapability is the model-call surface exposed as `llm`.
type LLMCapability interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// LLMRequest is the provider-agnostic shape procedures build before
// calling `llm.call(...)`.
type LLMRequest struct {
	Model       string
	System      string
	Messages    []LLMMessage
	Tools       []map[string]any
	MaxTokens   int
	Temperature float64
}

// LLMMessage is one turn in an LLMRequest's conversation.
type LLMMessage struct {
	Role    string
	Content string
}

// LLMResponse is what `llm.call(...)` resolves to.
type LLMResponse struct {
	Text      string
	ToolCalls []map[string]any
	StopReason string
}

// VectorCapability is the similarity-search surface exposed as `vector`.
type VectorCapability interface {
	Search(ctx context.Context, collection string, embedding []float64, k int) ([]VectorMatch, error)
	Upsert(ctx context.Context, collection string, id string, embedding []float64, metadata map[string]any) error
}

// VectorMatch is one result row from VectorCapability.Search.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// Capabilities bundles the capability backends available to a given
// procedure invocation. Any field may be nil; a procedure that calls an
// unavailable capability gets a monadic error (spec §5's "capability
// availability" gating), and the same nil-ness is also what tool-schema
// export (package vm, GetTools) uses to filter out atoms the current
// environment can't actually run.
type Capabilities struct {
	Store  StoreCapability
	Fetch  FetchCapability
	LLM    LLMCapability
	Vector VectorCapability
}
