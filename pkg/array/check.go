package array

import (
	"github.com/tabular-io/columnstore/pkg/errors"
)

// CheckIndex panics with a structured bounds error when index is outside
// [0, length).
func CheckIndex(index, length int) {
	if index < 0 || index >= length {
		panic(errors.Bounds(index, length))
	}
}

// CheckRange panics when [start, end) is not a valid range within length.
func CheckRange(start, end, length int) {
	if start < 0 || start > end || end > length {
		panic(errors.Newf(errors.ErrorTypeBounds,
			"range [%d,%d) invalid for length %d", start, end, length).
			WithDetail("start", start).
			WithDetail("end", end).
			WithDetail("length", length))
	}
}

// CheckUpdate validates a scatter-update's index slices against both arrays
// before any slot is touched, so a failed batch mutates nothing.
func CheckUpdate(from Array, to Array, fromIndexes, toIndexes []int) {
	if len(fromIndexes) != len(toIndexes) {
		panic(errors.LengthMismatch(len(fromIndexes), len(toIndexes)))
	}
	for _, i := range fromIndexes {
		CheckIndex(i, from.Length())
	}
	for _, i := range toIndexes {
		CheckIndex(i, to.Length())
	}
}

// ErrWrongKind builds the type-incompatibility error raised (by panic) when
// a typed fast path is called against a mismatched representation.
func ErrWrongKind(op string, k Kind) error {
	return errors.Newf(errors.ErrorTypeIncompatibleType,
		"%s not supported on %s-backed array", op, k)
}
