package vm

import (
	"strings"

	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/types"
)

// ToolDescriptor is one entry of the OpenAI-style tool list `vm.getTools`
// exposes to an LLM capability backend (spec §6/§9): name, description
// (from the function's doc comment, if any), and a JSON-schema-shaped
// parameter record built from each parameter's declared/inferred type.
type ToolDescriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// capabilityMarkers maps a textual marker a function body might reference
// to the Capabilities field that must be non-nil for it to be callable.
// This is a coarse heuristic (spec's "capability availability" filtering
// doesn't mandate static analysis precision) rather than a real
// data-flow/taint analysis — good enough to keep an LLM from being handed
// a tool it has no way to actually invoke in this environment.
var capabilityMarkers = map[string]func(Capabilities) bool{
	"store.":  func(c Capabilities) bool { return c.Store != nil },
	"fetch.":  func(c Capabilities) bool { return c.Fetch != nil },
	"llm.":    func(c Capabilities) bool { return c.LLM != nil },
	"vector.": func(c Capabilities) bool { return c.Vector != nil },
}

// GetTools renders every function in prog (nested declarations included,
// as parser.Parse lists them) as a tool descriptor,
// skipping any function whose body references a capability not present in
// caps.
func GetTools(prog *parser.Program, caps Capabilities, signatures map[string]*types.FunctionSignature) []ToolDescriptor {
	var out []ToolDescriptor
	for _, fn := range prog.Functions {
		if !capabilitiesSatisfied(fn.Body, caps) {
			continue
		}
		desc := ""
		if fn.Doc != nil {
			desc = fn.Doc.Description
		}
		params := map[string]any{"type": "object", "properties": map[string]any{}}
		if sig, ok := signatures[fn.Name]; ok {
			props := map[string]any{}
			var required []string
			for _, name := range sig.ParamOrder {
				p := sig.Parameters[name]
				props[name] = types.ToToolSchema(p.Type, p.Required)
				if p.Required {
					required = append(required, name)
				}
			}
			params = map[string]any{"type": "object", "properties": props}
			if len(required) > 0 {
				params["required"] = required
			}
		}
		out = append(out, ToolDescriptor{Name: fn.Name, Description: desc, Parameters: params})
	}
	return out
}

func capabilitiesSatisfied(body string, caps Capabilities) bool {
	for marker, has := range capabilityMarkers {
		if strings.Contains(body, marker) && !has(caps) {
			return false
		}
	}
	return true
}
