// Package arithmetic provides the stateless calculator tools.
//
// Domain errors (division by zero, square root of a negative) are data: the
// result is NaN and the label carries the error tag. The handlers never
// fault.
package arithmetic

import (
	"context"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Error tags carried in CalculationResult.Label.
const (
	LabelDivideByZero = "Division Error: Cannot divide by zero"
	LabelModuloByZero = "Modulo Error: Cannot take modulo by zero"
	LabelNegativeSqrt = "Square Root Error: Cannot take the square root of a negative number"
)

// Add returns a + b.
func Add(a, b float64) models.CalculationResult {
	return binary("Addition", "+", a, b, a+b)
}

// Subtract returns a - b.
func Subtract(a, b float64) models.CalculationResult {
	return binary("Subtraction", "-", a, b, a-b)
}

// Multiply returns a * b.
func Multiply(a, b float64) models.CalculationResult {
	return binary("Multiplication", "*", a, b, a*b)
}

// Divide returns a / b, or NaN with an error label when b is zero.
func Divide(a, b float64) models.CalculationResult {
	if b == 0 {
		return failed("Division", LabelDivideByZero)
	}

	return binary("Division", "/", a, b, a/b)
}

// Power returns base raised to exponent.
func Power(base, exponent float64) models.CalculationResult {
	return binary("Power", "^", base, exponent, math.Pow(base, exponent))
}

// SquareRoot returns the square root of n, or NaN with an error label when
// n is negative.
func SquareRoot(n float64) models.CalculationResult {
	if n < 0 {
		return failed("Square Root", LabelNegativeSqrt)
	}

	r := math.Sqrt(n)

	return models.CalculationResult{
		Operation: "Square Root",
		Result:    r,
		Label:     fmt.Sprintf("sqrt(%g) = %g", n, r),
	}
}

// Percentage returns percent percent of value.
func Percentage(value, percent float64) models.CalculationResult {
	r := value * percent / 100

	return models.CalculationResult{
		Operation: "Percentage",
		Result:    r,
		Label:     fmt.Sprintf("%g%% of %g = %g", percent, value, r),
	}
}

// Modulo returns the remainder of a / b, or NaN with an error label when b
// is zero.
func Modulo(a, b float64) models.CalculationResult {
	if b == 0 {
		return failed("Modulo", LabelModuloByZero)
	}

	return binary("Modulo", "%", a, b, math.Mod(a, b))
}

func binary(operation, symbol string, a, b, r float64) models.CalculationResult {
	return models.CalculationResult{
		Operation: operation,
		Result:    r,
		Label:     fmt.Sprintf("%g %s %g = %g", a, symbol, b, r),
	}
}

func failed(operation, label string) models.CalculationResult {
	return models.CalculationResult{
		Operation: operation,
		Result:    math.NaN(),
		Label:     label,
	}
}

// Register adds the calculator tools to reg.
func Register(reg *internalmcp.Registry) error {
	annotations := &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}

	pair := func(a, b, adesc, bdesc string) []internalmcp.ParameterSpec {
		return []internalmcp.ParameterSpec{
			internalmcp.Required(a, internalmcp.KindFloat, adesc),
			internalmcp.Required(b, internalmcp.KindFloat, bdesc),
		}
	}

	binaryTool := func(fn func(a, b float64) models.CalculationResult, first, second string) internalmcp.Handler {
		return func(_ context.Context, args internalmcp.Args) (any, error) {
			return fn(args.Float(first), args.Float(second)), nil
		}
	}

	tools := []internalmcp.Tool{
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "add",
				Description: "Add two numbers",
				Parameters:  pair("a", "b", "First addend", "Second addend"),
			},
			Handler: binaryTool(Add, "a", "b"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "subtract",
				Description: "Subtract b from a",
				Parameters:  pair("a", "b", "Minuend", "Subtrahend"),
			},
			Handler: binaryTool(Subtract, "a", "b"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "multiply",
				Description: "Multiply two numbers",
				Parameters:  pair("a", "b", "First factor", "Second factor"),
			},
			Handler: binaryTool(Multiply, "a", "b"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "divide",
				Description: "Divide a by b",
				Parameters:  pair("a", "b", "Dividend", "Divisor"),
			},
			Handler: binaryTool(Divide, "a", "b"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "power",
				Description: "Raise a number to a power",
				Parameters:  pair("base", "exponent", "Base", "Exponent"),
			},
			Handler: binaryTool(Power, "base", "exponent"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "square_root",
				Description: "Calculate the square root of a number",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Required("number", internalmcp.KindFloat, "Number to take the square root of"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return SquareRoot(args.Float("number")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "percentage",
				Description: "Calculate a percentage of a value",
				Parameters:  pair("value", "percentage", "Base value", "Percentage to take"),
			},
			Handler: binaryTool(Percentage, "value", "percentage"),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "modulo",
				Description: "Remainder of a divided by b",
				Parameters:  pair("a", "b", "Dividend", "Divisor"),
			},
			Handler: binaryTool(Modulo, "a", "b"),
		},
	}

	for _, t := range tools {
		t.Descriptor.Annotations = annotations
		if err := reg.Register(t.Descriptor, t.Handler); err != nil {
			return err
		}
	}

	return nil
}
