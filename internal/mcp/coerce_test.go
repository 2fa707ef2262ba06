package mcp

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   any
		want any
	}{
		{name: "string passthrough", kind: KindString, in: "hello", want: "hello"},
		{name: "string from int", kind: KindString, in: 42, want: "42"},
		{name: "string from float", kind: KindString, in: 2.5, want: "2.5"},
		{name: "string from bool", kind: KindString, in: true, want: "true"},
		{name: "string from json number", kind: KindString, in: json.Number("7"), want: "7"},

		{name: "integer from int", kind: KindInteger, in: 3, want: int64(3)},
		{name: "integer from integral float", kind: KindInteger, in: 3.0, want: int64(3)},
		{name: "integer from json number", kind: KindInteger, in: json.Number("12"), want: int64(12)},
		{name: "integer from exponent json number", kind: KindInteger, in: json.Number("1e2"), want: int64(100)},
		{name: "integer from string", kind: KindInteger, in: " 10 ", want: int64(10)},

		{name: "float from int", kind: KindFloat, in: 2, want: 2.0},
		{name: "float from json number", kind: KindFloat, in: json.Number("1.25"), want: 1.25},
		{name: "float from string", kind: KindFloat, in: "-0.5", want: -0.5},

		{name: "boolean passthrough", kind: KindBoolean, in: false, want: false},
		{name: "boolean from yes", kind: KindBoolean, in: "YES", want: true},
		{name: "boolean from 0 string", kind: KindBoolean, in: "0", want: false},
		{name: "boolean from 1", kind: KindBoolean, in: 1, want: true},
		{name: "boolean from json number", kind: KindBoolean, in: json.Number("0"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Decimal(t *testing.T) {
	for _, in := range []any{"19.99", json.Number("19.99"), 19.99, decimal.RequireFromString("19.99")} {
		got, err := Coerce(KindDecimal, in)
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("19.99").Equal(got.(decimal.Decimal)), "input %v", in)
	}

	got, err := Coerce(KindDecimal, 5)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(5).Equal(got.(decimal.Decimal)))
}

func TestCoerce_Failures(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   any
	}{
		{name: "null", kind: KindString, in: nil},
		{name: "string from map", kind: KindString, in: map[string]any{}},
		{name: "integer from fraction", kind: KindInteger, in: 2.5},
		{name: "integer from word", kind: KindInteger, in: "ten"},
		{name: "integer from bool", kind: KindInteger, in: true},
		{name: "float from word", kind: KindFloat, in: "abc"},
		{name: "float from NaN", kind: KindFloat, in: math.NaN()},
		{name: "float from Inf string", kind: KindFloat, in: "Inf"},
		{name: "decimal from word", kind: KindDecimal, in: "cheap"},
		{name: "boolean from word", kind: KindBoolean, in: "maybe"},
		{name: "boolean from 2", kind: KindBoolean, in: 2},
		{name: "unknown kind", kind: "list", in: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := Coerce(tt.kind, tt.in)
				require.Error(t, err)
			})
		})
	}
}
