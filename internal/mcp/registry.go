package mcp

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind is the declared type of a tool parameter.
type Kind string

// Parameter kinds.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindDecimal Kind = "decimal"
	KindBoolean Kind = "boolean"
)

// IsValid reports whether k is a known parameter kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindDecimal, KindBoolean:
		return true
	default:
		return false
	}
}

// ParameterSpec declares one parameter of a tool.
//
// A parameter is either required (no default) or optional with a default of
// matching kind.
type ParameterSpec struct {
	Name        string
	Kind        Kind
	Required    bool
	Default     any
	Description string
}

// Required declares a required parameter.
func Required(name string, kind Kind, description string) ParameterSpec {
	return ParameterSpec{Name: name, Kind: kind, Required: true, Description: description}
}

// Optional declares an optional parameter with a default value.
func Optional(name string, kind Kind, def any, description string) ParameterSpec {
	return ParameterSpec{Name: name, Kind: kind, Default: def, Description: description}
}

// normalize validates the spec and returns a copy whose default has been
// coerced to the declared kind.
func (p ParameterSpec) normalize() (ParameterSpec, error) {
	if p.Name == "" {
		return p, fmt.Errorf("parameter name must not be empty")
	}

	if !p.Kind.IsValid() {
		return p, fmt.Errorf("parameter %q has unknown kind %q", p.Name, p.Kind)
	}

	if p.Required {
		if p.Default != nil {
			return p, fmt.Errorf("required parameter %q must not declare a default", p.Name)
		}

		return p, nil
	}

	if p.Default == nil {
		return p, fmt.Errorf("optional parameter %q must declare a default", p.Name)
	}

	def, err := Coerce(p.Kind, p.Default)
	if err != nil {
		return p, fmt.Errorf("default of parameter %q: %w", p.Name, err)
	}

	p.Default = def

	return p, nil
}

// Descriptor is the public description of a registered tool.
type Descriptor struct {
	Name        string
	Description string
	Parameters  []ParameterSpec
	Annotations *mcp.ToolAnnotations
}

// Parameter returns the spec for the named parameter.
func (d Descriptor) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return ParameterSpec{}, false
}

func (d Descriptor) clone() Descriptor {
	d.Parameters = slices.Clone(d.Parameters)

	return d
}

// Handler implements a tool. It receives the resolved argument list and
// returns a value to be wrapped in an envelope, or a fault.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool pairs a descriptor with its handler.
type Tool struct {
	Descriptor Descriptor
	Handler    Handler
}

// Registry holds the set of invocable tools in registration order.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]*Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool, 32),
	}
}

// Register adds a tool. Registering a name twice returns a
// *DuplicateToolError; an invalid parameter list returns an
// *InvalidParameterError.
func (r *Registry) Register(desc Descriptor, handler Handler) error {
	if desc.Name == "" {
		return &InvalidParameterError{Err: fmt.Errorf("tool name must not be empty")}
	}

	if handler == nil {
		return &InvalidParameterError{Tool: desc.Name, Err: fmt.Errorf("handler must not be nil")}
	}

	params := make([]ParameterSpec, 0, len(desc.Parameters))
	seen := make(map[string]struct{}, len(desc.Parameters))

	for _, p := range desc.Parameters {
		normalized, err := p.normalize()
		if err != nil {
			return &InvalidParameterError{Tool: desc.Name, Err: err}
		}

		if _, dup := seen[p.Name]; dup {
			return &InvalidParameterError{Tool: desc.Name, Err: fmt.Errorf("parameter %q declared twice", p.Name)}
		}

		seen[p.Name] = struct{}{}
		params = append(params, normalized)
	}

	desc.Parameters = params

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[desc.Name]; exists {
		return &DuplicateToolError{Name: desc.Name}
	}

	r.tools[desc.Name] = &Tool{Descriptor: desc, Handler: handler}
	r.order = append(r.order, desc.Name)

	return nil
}

// MustRegister is like Register but panics on error. Use it for the static
// tool table built at startup.
func (r *Registry) MustRegister(desc Descriptor, handler Handler) {
	if err := r.Register(desc, handler); err != nil {
		panic(err)
	}
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name].Descriptor.clone())
	}

	return result
}

// Names returns all tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Resolve looks up a tool by exact, case-sensitive name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}

	return Tool{Descriptor: t.Descriptor.clone(), Handler: t.Handler}, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
