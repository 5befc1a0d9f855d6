package vm

import (
	"context"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/tjs-lang/tjs/atomir"
)

// bindCapabilities exposes whichever of rctx.Capabilities are non-nil as
// `store`/`fetch`/`llm`/`vector` globals inside rt. A capability that is
// nil (not configured for this environment) is simply not bound, so a
// procedure calling it sees a JS ReferenceError — translated by
// translateJSError into the same monadic-error shape as any other runtime
// failure, rather than a distinct "capability unavailable" code path.
func bindCapabilities(ctx context.Context, rt *goja.Runtime, rctx *RuntimeContext) {
	caps := rctx.Capabilities

	if caps.Store != nil {
		rt.Set("store", map[string]any{
			"get": func(key string) (any, error) {
				v, ok, err := caps.Store.Get(ctx, key)
				if err != nil || !ok {
					return nil, err
				}
				return v, nil
			},
			"set": func(key string, value any) error {
				return caps.Store.Set(ctx, key, value)
			},
			"delete": func(key string) error {
				return caps.Store.Delete(ctx, key)
			},
		})
	}

	if caps.Fetch != nil {
		rt.Set("fetch", map[string]any{
			"fetch": func(url string, opts map[string]any) (map[string]any, error) {
				return caps.Fetch.Fetch(ctx, url, opts)
			},
		})
	}

	if caps.LLM != nil {
		rt.Set("llm", map[string]any{
			"call": func(req map[string]any) (map[string]any, error) {
				resp, err := caps.LLM.Complete(ctx, llmRequestFromJS(req))
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"text":       resp.Text,
					"toolCalls":  resp.ToolCalls,
					"stopReason": resp.StopReason,
				}, nil
			},
		})
	}

	if caps.Vector != nil {
		rt.Set("vector", map[string]any{
			"search": func(collection string, embedding []any, k int) ([]map[string]any, error) {
				matches, err := caps.Vector.Search(ctx, collection, toFloatSlice(embedding), k)
				if err != nil {
					return nil, err
				}
				out := make([]map[string]any, len(matches))
				for i, m := range matches {
					out[i] = map[string]any{"id": m.ID, "score": m.Score, "metadata": m.Metadata}
				}
				return out, nil
			},
			"upsert": func(collection, id string, embedding []any, metadata map[string]any) error {
				return caps.Vector.Upsert(ctx, collection, id, toFloatSlice(embedding), metadata)
			},
		})
	}

	if rctx.Procedures != nil {
		bindProcedures(ctx, rt, rctx)
	}
}

// clearableProcedureStore is implemented by ProcedureStore backends (e.g.
// engine/inmem) that can evict their own expired entries in bulk. Backends
// without bulk eviction (e.g. a TTL-per-workflow engine/temporal store)
// simply don't satisfy it, and clearExpiredProcedures reports zero.
type clearableProcedureStore interface {
	ClearExpired(ctx context.Context) (int, error)
}

// bindProcedures exposes the procedure-token atoms (spec §4.5/§9):
// storeProcedure/releaseProcedure/clearExpiredProcedures manage tokens in
// rctx.Procedures, and agentRun invokes either a raw lowered-body source
// string or a previously stored `proc_<uuid>` token.
func bindProcedures(ctx context.Context, rt *goja.Runtime, rctx *RuntimeContext) {
	rt.Set("storeProcedure", func(opts map[string]any) (string, error) {
		ast, _ := opts["ast"].(string)
		if ast == "" {
			return "", NewMonadicError("validation", "storeProcedure requires an ast source string", nil)
		}
		if maxSize, ok := opts["maxSize"].(int64); ok && maxSize > 0 && int64(len(ast)) > maxSize {
			return "", NewMonadicError("size", "procedure ast exceeds maxSize", nil)
		}
		function, _ := opts["function"].(string)
		state, err := rctx.Procedures.New(ctx, function, nil)
		if err != nil {
			return "", NewMonadicError("store", "failed to store procedure", err)
		}
		state.Node = ast
		if ttlMS, ok := opts["ttl"].(int64); ok && ttlMS > 0 {
			state.ExpiresAt = time.Now().Add(time.Duration(ttlMS) * time.Millisecond)
		}
		if err := rctx.Procedures.Save(ctx, state); err != nil {
			return "", NewMonadicError("store", "failed to store procedure", err)
		}
		return state.Token, nil
	})

	rt.Set("releaseProcedure", func(opts map[string]any) bool {
		token, _ := opts["token"].(string)
		if token == "" {
			return false
		}
		return rctx.Procedures.Delete(ctx, token) == nil
	})

	rt.Set("clearExpiredProcedures", func(map[string]any) int {
		clearable, ok := rctx.Procedures.(clearableProcedureStore)
		if !ok {
			return 0
		}
		n, err := clearable.ClearExpired(ctx)
		if err != nil {
			return 0
		}
		return n
	})

	rt.Set("agentRun", func(opts map[string]any) (any, error) {
		agentID, _ := opts["agentId"].(string)
		input, _ := opts["input"].(map[string]any)
		ast := agentID
		if strings.HasPrefix(agentID, "proc_") {
			state, err := rctx.Procedures.Load(ctx, agentID)
			if err != nil {
				return nil, NewMonadicError("expired", "procedure token is unknown or expired", err)
			}
			ast = state.Node
		}
		node, err := atomir.Lower(ast)
		if err != nil {
			return nil, NewMonadicError("validation", "agentRun ast failed to lower", err)
		}
		return Execute(ctx, rctx, node, input)
	})
}

func toFloatSlice(vs []any) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		switch n := v.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		}
	}
	return out
}

func llmRequestFromJS(req map[string]any) LLMRequest {
	out := LLMRequest{}
	if v, ok := req["model"].(string); ok {
		out.Model = v
	}
	if v, ok := req["system"].(string); ok {
		out.System = v
	}
	if v, ok := req["maxTokens"].(int64); ok {
		out.MaxTokens = int(v)
	}
	if v, ok := req["temperature"].(float64); ok {
		out.Temperature = v
	}
	if msgs, ok := req["messages"].([]any); ok {
		for _, m := range msgs {
			mm, ok := m.(map[string]any)
			if !ok {
				continue
			}
			role, _ := mm["role"].(string)
			content, _ := mm["content"].(string)
			out.Messages = append(out.Messages, LLMMessage{Role: role, Content: content})
		}
	}
	if tools, ok := req["tools"].([]any); ok {
		for _, t := range tools {
			if tm, ok := t.(map[string]any); ok {
				out.Tools = append(out.Tools, tm)
			}
		}
	}
	return out
}
