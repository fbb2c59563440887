package dense

import (
	"math"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// The boxed Value/SetValue paths accept the natural Go literal types as well
// as the exact element type, so callers are not forced to write int32(7) for
// an int column. Lossy conversions are rejected.

// AsBool coerces a boxed value for a bool column.
func AsBool(v interface{}) bool {
	b, ok := v.(bool)
	if !ok {
		panic(errors.IncompatibleType(false, v))
	}
	return b
}

// AsInt32 coerces a boxed value for an int32 column.
func AsInt32(v interface{}) int32 {
	switch n := v.(type) {
	case int32:
		return n
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			panic(errors.IncompatibleType(int32(0), v))
		}
		return int32(n)
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			panic(errors.IncompatibleType(int32(0), v))
		}
		return int32(n)
	case int16:
		return int32(n)
	}
	panic(errors.IncompatibleType(int32(0), v))
}

// AsInt64 coerces a boxed value for an int64 column.
func AsInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	}
	panic(errors.IncompatibleType(int64(0), v))
}

// AsFloat64 coerces a boxed value for a float64 column. nil maps to NaN,
// the column's null representation.
func AsFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	panic(errors.IncompatibleType(float64(0), v))
}

// AsString coerces a boxed value for a string column.
func AsString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		panic(errors.IncompatibleType("", v))
	}
	return s
}

