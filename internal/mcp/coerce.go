package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotFinite = errors.New("not a finite number")

// Coerce converts a loosely-typed argument value to the Go representation
// of kind:
//
//   - KindString  → string
//   - KindInteger → int64
//   - KindFloat   → float64
//   - KindDecimal → decimal.Decimal
//   - KindBoolean → bool
//
// Values decoded from JSON (float64, json.Number, string, bool) and native
// Go numbers are accepted. Numeric strings are parsed. Coerce never panics;
// a value that cannot be represented returns an error.
func Coerce(kind Kind, v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("value is null")
	}

	switch kind {
	case KindString:
		return coerceString(v)
	case KindInteger:
		return coerceInteger(v)
	case KindFloat:
		return coerceFloat(v)
	case KindDecimal:
		return coerceDecimal(v)
	case KindBoolean:
		return coerceBoolean(v)
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func coerceString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), nil
	case decimal.Decimal:
		return s.String(), nil
	}

	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10), nil
	}

	return nil, fmt.Errorf("cannot convert %T to string", v)
}

func coerceInteger(v any) (any, error) {
	if i, ok := asInt64(v); ok {
		return i, nil
	}

	switch n := v.(type) {
	case float64:
		return integralFloat(n)
	case float32:
		return integralFloat(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}

		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to integer", n.String())
		}

		return integralFloat(f)
	case decimal.Decimal:
		if !n.IsInteger() {
			return nil, fmt.Errorf("%s is not an integer", n.String())
		}

		return n.IntPart(), nil
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to integer", n)
		}

		return integralFloat(f)
	}

	return nil, fmt.Errorf("cannot convert %T to integer", v)
}

func integralFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errNotFinite
	}

	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}

	if f > math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("%v overflows int64", f)
	}

	return int64(f), nil
}

func coerceFloat(v any) (any, error) {
	if i, ok := asInt64(v); ok {
		return float64(i), nil
	}

	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float", n.String())
		}

		f = parsed
	case decimal.Decimal:
		f = n.InexactFloat64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float", n)
		}

		f = parsed
	default:
		return nil, fmt.Errorf("cannot convert %T to float", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errNotFinite
	}

	return f, nil
}

func coerceDecimal(v any) (any, error) {
	if i, ok := asInt64(v); ok {
		return decimal.NewFromInt(i), nil
	}

	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, errNotFinite
		}

		return decimal.NewFromFloat(n), nil
	case float32:
		return coerceDecimal(float64(n))
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to decimal", n.String())
		}

		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to decimal", n)
		}

		return d, nil
	}

	return nil, fmt.Errorf("cannot convert %T to decimal", v)
}

func coerceBoolean(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "t", "1", "yes", "y", "on":
			return true, nil
		case "false", "f", "0", "no", "n", "off":
			return false, nil
		}

		return nil, fmt.Errorf("cannot convert %q to boolean", b)
	}

	if i, ok := asInt64(v); ok && (i == 0 || i == 1) {
		return i == 1, nil
	}

	if n, ok := v.(json.Number); ok {
		switch n.String() {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	}

	if f, ok := v.(float64); ok && (f == 0 || f == 1) {
		return f == 1, nil
	}

	return nil, fmt.Errorf("cannot convert %v to boolean", v)
}

// asInt64 converts native Go integer types.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	default:
		return 0, false
	}
}
