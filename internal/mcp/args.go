package mcp

import (
	"github.com/shopspring/decimal"
)

// Arg is one resolved argument.
type Arg struct {
	Name  string
	Kind  Kind
	Value any
	// Supplied is false when Value is the declared default.
	Supplied bool
}

// Args is the resolved argument list handed to a Handler, in declared
// parameter order. Every declared parameter is present and already coerced
// to its kind.
type Args struct {
	list []Arg
}

// NewArgs builds an argument list directly. It is intended for tests that
// call handlers without a dispatcher.
func NewArgs(list ...Arg) Args {
	return Args{list: list}
}

// Len returns the number of resolved arguments.
func (a Args) Len() int { return len(a.list) }

// All returns the arguments in declared order.
func (a Args) All() []Arg {
	out := make([]Arg, len(a.list))
	copy(out, a.list)

	return out
}

func (a Args) lookup(name string) (Arg, bool) {
	for _, arg := range a.list {
		if arg.Name == name {
			return arg, true
		}
	}

	return Arg{}, false
}

// Value returns the raw resolved value of name.
func (a Args) Value(name string) (any, bool) {
	arg, ok := a.lookup(name)
	if !ok {
		return nil, false
	}

	return arg.Value, true
}

// Has reports whether the caller supplied name explicitly.
func (a Args) Has(name string) bool {
	arg, ok := a.lookup(name)

	return ok && arg.Supplied
}

// String returns the string argument name, or "" if absent.
func (a Args) String(name string) string {
	v, _ := a.Value(name)
	s, _ := v.(string)

	return s
}

// Int returns the integer argument name, or 0 if absent.
func (a Args) Int(name string) int64 {
	v, _ := a.Value(name)
	i, _ := v.(int64)

	return i
}

// Float returns the float argument name, or 0 if absent.
func (a Args) Float(name string) float64 {
	v, _ := a.Value(name)
	f, _ := v.(float64)

	return f
}

// Decimal returns the decimal argument name, or zero if absent.
func (a Args) Decimal(name string) decimal.Decimal {
	v, _ := a.Value(name)
	d, _ := v.(decimal.Decimal)

	return d
}

// Bool returns the boolean argument name, or false if absent.
func (a Args) Bool(name string) bool {
	v, _ := a.Value(name)
	b, _ := v.(bool)

	return b
}

// Map returns the arguments keyed by name.
func (a Args) Map() map[string]any {
	out := make(map[string]any, len(a.list))
	for _, arg := range a.list {
		out[arg.Name] = arg.Value
	}

	return out
}
