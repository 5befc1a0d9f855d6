// Package atoms is the catalog of TJS's built-in operations (spec §3/§5):
// the declaration-time type constructors (`Type`, `Generic`, `Union`,
// `Enum`), the identity operators' function forms (`Is`, `IsNot`), and the
// capability-category groupings (flow, vars, collections, string, http,
// store, llm, vector) tool-schema export and capability-availability
// filtering (package vm) key off of. Registry entries are descriptive
// metadata; the actual runtime behavior these names resolve to at
// execution time lives in Bind (runtime.go), which installs them as
// globals in a goja runtime.
package atoms

// Category groups related built-ins for documentation and for the
// capability-availability filter in package vm.
type Category string

const (
	CategoryFlow        Category = "flow"
	CategoryVars        Category = "vars"
	CategoryCollections Category = "collections"
	CategoryString      Category = "string"
	CategoryHTTP        Category = "http"
	CategoryStore       Category = "store"
	CategoryLLM         Category = "llm"
	CategoryVector      Category = "vector"
	CategoryProcedure   Category = "procedure"
)

// Atom describes one built-in by name, its category, and which
// capability (if any) must be configured for it to work.
type Atom struct {
	Name               string
	Category           Category
	Description        string
	RequiresCapability string // "" if none
}

// Default returns the full built-in catalog (spec §3's declaration forms,
// §4.1's identity operators, and §5's capability-bound categories).
func Default() []Atom {
	return []Atom{
		{Name: "if", Category: CategoryFlow, Description: "conditional branch"},
		{Name: "return", Category: CategoryFlow, Description: "procedure return"},
		{Name: "forOf", Category: CategoryFlow, Description: "iterate an array's values"},
		{Name: "forIn", Category: CategoryFlow, Description: "iterate an object's keys"},
		{Name: "tryCatch", Category: CategoryFlow, Description: "monadic-error recovery block"},

		{Name: "Type", Category: CategoryVars, Description: "declares an example-typed value constructor"},
		{Name: "Generic", Category: CategoryVars, Description: "declares a parameterized type constructor"},
		{Name: "Union", Category: CategoryVars, Description: "declares a tagged union of member types"},
		{Name: "Enum", Category: CategoryVars, Description: "declares a named integer enumeration"},
		{Name: "Is", Category: CategoryVars, Description: "deep-equality identity check"},
		{Name: "IsNot", Category: CategoryVars, Description: "negated deep-equality identity check"},
		{Name: "CheckType", Category: CategoryVars, Description: "checks a value against a declared Type/Union/Enum"},

		{Name: "map", Category: CategoryCollections, Description: "array map"},
		{Name: "filter", Category: CategoryCollections, Description: "array filter"},
		{Name: "reduce", Category: CategoryCollections, Description: "array reduce"},
		{Name: "forEach", Category: CategoryCollections, Description: "array forEach"},

		{Name: "trim", Category: CategoryString, Description: "string trim"},
		{Name: "split", Category: CategoryString, Description: "string split"},
		{Name: "join", Category: CategoryString, Description: "array join"},

		{Name: "fetch", Category: CategoryHTTP, Description: "outbound HTTP request", RequiresCapability: "fetch"},
		{Name: "store", Category: CategoryStore, Description: "key/value persistence", RequiresCapability: "store"},
		{Name: "llm", Category: CategoryLLM, Description: "model completion call", RequiresCapability: "llm"},
		{Name: "vector", Category: CategoryVector, Description: "vector similarity search/upsert", RequiresCapability: "vector"},

		{Name: "storeProcedure", Category: CategoryProcedure, Description: "stores a lowered procedure ast under a ttl-bounded token"},
		{Name: "releaseProcedure", Category: CategoryProcedure, Description: "evicts a stored procedure token"},
		{Name: "clearExpiredProcedures", Category: CategoryProcedure, Description: "evicts every expired procedure token, reporting the count"},
		{Name: "agentRun", Category: CategoryProcedure, Description: "invokes a raw procedure ast or a stored proc_<uuid> token"},
	}
}

// ByCategory groups the default catalog.
func ByCategory() map[Category][]Atom {
	out := map[Category][]Atom{}
	for _, a := range Default() {
		out[a.Category] = append(out[a.Category], a)
	}
	return out
}
