package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func noop(context.Context, Args) (any, error) { return nil, nil }

func TestRegistry_Register(t *testing.T) {
	t.Run("list preserves registration order", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(Descriptor{Name: "zeta"}, noop)
		reg.MustRegister(Descriptor{Name: "alpha"}, noop)
		reg.MustRegister(Descriptor{Name: "mid"}, noop)

		require.Equal(t, []string{"zeta", "alpha", "mid"}, reg.Names())
		require.Equal(t, 3, reg.Len())

		list := reg.List()
		require.Len(t, list, 3)
		require.Equal(t, "zeta", list[0].Name)
		require.Equal(t, "mid", list[2].Name)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(Descriptor{Name: "add"}, noop))

		err := reg.Register(Descriptor{Name: "add"}, noop)

		var dup *DuplicateToolError
		require.True(t, errors.As(err, &dup))
		require.Equal(t, "add", dup.Name)
		require.Equal(t, 1, reg.Len())
	})

	t.Run("must register panics on duplicate", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(Descriptor{Name: "add"}, noop)

		require.Panics(t, func() { reg.MustRegister(Descriptor{Name: "add"}, noop) })
	})

	t.Run("invalid declarations", func(t *testing.T) {
		tests := []struct {
			name    string
			desc    Descriptor
			handler Handler
		}{
			{name: "empty tool name", desc: Descriptor{}, handler: noop},
			{name: "nil handler", desc: Descriptor{Name: "x"}},
			{name: "unknown kind", desc: Descriptor{Name: "x", Parameters: []ParameterSpec{{Name: "a", Kind: "list", Required: true}}}, handler: noop},
			{name: "required with default", desc: Descriptor{Name: "x", Parameters: []ParameterSpec{{Name: "a", Kind: KindInteger, Required: true, Default: 1}}}, handler: noop},
			{name: "optional without default", desc: Descriptor{Name: "x", Parameters: []ParameterSpec{{Name: "a", Kind: KindInteger}}}, handler: noop},
			{name: "default of wrong kind", desc: Descriptor{Name: "x", Parameters: []ParameterSpec{Optional("a", KindInteger, "three", "")}}, handler: noop},
			{name: "duplicate parameter", desc: Descriptor{Name: "x", Parameters: []ParameterSpec{
				Required("a", KindString, ""),
				Required("a", KindString, ""),
			}}, handler: noop},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := NewRegistry().Register(tt.desc, tt.handler)

				var invalid *InvalidParameterError
				require.True(t, errors.As(err, &invalid), "got %v", err)
			})
		}
	})

	t.Run("defaults are coerced to the declared kind", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(Descriptor{Name: "forecast", Parameters: []ParameterSpec{
			Optional("days", KindInteger, 3, "Number of days"),
		}}, noop)

		tool, ok := reg.Resolve("forecast")
		require.True(t, ok)

		p, ok := tool.Descriptor.Parameter("days")
		require.True(t, ok)
		require.Equal(t, int64(3), p.Default)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Descriptor{Name: "add", Description: "Add two numbers"}, noop)

	tool, ok := reg.Resolve("add")
	require.True(t, ok)
	require.Equal(t, "Add two numbers", tool.Descriptor.Description)
	require.NotNil(t, tool.Handler)

	_, ok = reg.Resolve("Add")
	require.False(t, ok, "resolution is case-sensitive")

	_, ok = reg.Resolve("missing")
	require.False(t, ok)
}

func TestRegistry_ListIsACopy(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Descriptor{Name: "add", Parameters: []ParameterSpec{Required("a", KindFloat, "")}}, noop)

	list := reg.List()
	list[0].Parameters[0].Name = "mutated"

	again := reg.List()
	require.Equal(t, "a", again[0].Parameters[0].Name)
}
