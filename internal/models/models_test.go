package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in     string
		want   Priority
		wantOK bool
	}{
		{in: "High", want: PriorityHigh, wantOK: true},
		{in: "low", want: PriorityLow, wantOK: true},
		{in: " MEDIUM ", want: PriorityMedium, wantOK: true},
		{in: "urgent", want: DefaultPriority, wantOK: false},
		{in: "", want: DefaultPriority, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePriority(tt.in)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityJSON(t *testing.T) {
	data, err := json.Marshal(PriorityHigh)
	require.NoError(t, err)
	require.JSONEq(t, `"High"`, string(data))

	var p Priority
	require.NoError(t, json.Unmarshal([]byte(`"low"`), &p))
	require.Equal(t, PriorityLow, p)

	require.Error(t, json.Unmarshal([]byte(`"someday"`), &p))
}

func TestCalculationResultNaN(t *testing.T) {
	r := CalculationResult{Operation: "divide", Result: math.NaN(), Label: "Division Error: Cannot divide by zero"}
	require.True(t, r.IsError())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"operation":"divide","result":null,"label":"Division Error: Cannot divide by zero"}`, string(data))

	var back CalculationResult
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, math.IsNaN(back.Result))
	require.Equal(t, r.Label, back.Label)
}

func TestProductPriceIsNumber(t *testing.T) {
	p := ProductItem{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), IsActive: true}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"name":"Widget","price":9.99,"isActive":true}`, string(data))
	require.False(t, decimal.MarshalJSONWithoutQuotes, "package-wide decimal encoding is left alone")

	var back ProductItem
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, int64(1), back.ID)
	require.True(t, p.Price.Equal(back.Price))

	desc := "Blue ink"
	data, err = json.Marshal([]ProductInput{{Name: "Pen", Price: decimal.RequireFromString("-1.5"), Description: &desc}})
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"Pen","price":-1.5,"description":"Blue ink","isActive":false}]`, string(data))

	data, err = json.Marshal(decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	require.Equal(t, `"2.5"`, string(data))
}
