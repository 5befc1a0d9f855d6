package types

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidateAgainstSchema validates a decoded JSON value against a raw JSON
// Schema document, using santhosh-tekuri/jsonschema/v6. This is the
// standard-JSON-Schema escape hatch named in SPEC_FULL's DOMAIN STACK
// section for embedders that want to validate `fn.__tjs` tool descriptors
// (or any ToToolSchema output) against the draft-2020-12 meta-schema rather
// than TJS's own Type records, which have no notion of required-by-default
// JSON Schema semantics.
func ValidateAgainstSchema(ctx context.Context, schemaDoc map[string]any, value any) error {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return fmt.Errorf("types: marshal schema: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("types: decode schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	const resourceURL = "mem://tjs/schema.json"
	if err := compiler.AddResource(resourceURL, decoded); err != nil {
		return fmt.Errorf("types: add schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return fmt.Errorf("types: compile schema: %w", err)
	}

	valueBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("types: marshal value: %w", err)
	}
	var decodedValue any
	if err := json.Unmarshal(valueBytes, &decodedValue); err != nil {
		return fmt.Errorf("types: decode value: %w", err)
	}
	if err := schema.Validate(decodedValue); err != nil {
		return fmt.Errorf("types: schema validation failed: %w", err)
	}
	_ = ctx
	return nil
}
