package types

// ParamSpec is the per-parameter record from spec §3. Required is true iff
// the original syntax used colon-example form (`name: EXAMPLE`); false iff
// default-assignment form (`name = EXAMPLE`).
type ParamSpec struct {
	Type        *Type  `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
}

// FunctionSignature is the compiled record for a single TJS function
// declaration (spec §3). Parameters is insertion-ordered via ParamOrder.
type FunctionSignature struct {
	Name        string
	Description string
	Parameters  map[string]*ParamSpec
	ParamOrder  []string
	Returns     *Type

	Safe          bool
	Unsafe        bool
	SafeReturn    bool
	UnsafeReturn  bool
}

// NewFunctionSignature returns an empty signature ready for AddParam calls.
func NewFunctionSignature(name string) *FunctionSignature {
	return &FunctionSignature{Name: name, Parameters: make(map[string]*ParamSpec)}
}

// AddParam appends a parameter to the signature, preserving declaration
// order (spec §3: "insertion-ordered").
func (f *FunctionSignature) AddParam(name string, spec *ParamSpec) {
	if _, exists := f.Parameters[name]; !exists {
		f.ParamOrder = append(f.ParamOrder, name)
	}
	f.Parameters[name] = spec
}
