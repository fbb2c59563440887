package reduce

import (
	"math"

	"github.com/tabular-io/columnstore/pkg/array"
)

// Bounds is the smallest and largest value in a scanned range, nulls skipped.
type Bounds struct {
	Min interface{}
	Max interface{}
}

// BoundsOf computes the min/max over the closed range [from, to]. The second
// return is false when the range is empty or holds nothing but nulls.
//
// For coded and zoned arrays the scan tracks the index of the running min and
// max, comparing stored codes, and decodes the two winners once at the end.
func BoundsOf(a array.Array, from, to int, opts ...Option) (Bounds, bool) {
	if from > to {
		return Bounds{}, false
	}
	array.CheckRange(from, to+1, a.Length())
	o := resolve(opts)

	switch a.Kind() {
	case array.KindBool:
		return scalarBounds(a, from, to, o.threshold,
			array.Array.Bool,
			func(x, y bool) bool { return !x && y },
			nil)
	case array.KindInt:
		return scalarBounds(a, from, to, o.threshold,
			array.Array.Int,
			func(x, y int32) bool { return x < y },
			nil)
	case array.KindInt64:
		return scalarBounds(a, from, to, o.threshold,
			array.Array.Int64,
			func(x, y int64) bool { return x < y },
			nil)
	case array.KindFloat64:
		return scalarBounds(a, from, to, o.threshold,
			array.Array.Float64,
			func(x, y float64) bool { return x < y },
			math.IsNaN)
	case array.KindCodedInt:
		return argBounds(a, from, to, o.threshold,
			func(i, j int) bool { return a.Int(i) < a.Int(j) })
	case array.KindCodedInt64, array.KindZoned:
		return argBounds(a, from, to, o.threshold,
			func(i, j int) bool { return a.Int64(i) < a.Int64(j) })
	default:
		return argBounds(a, from, to, o.threshold,
			func(i, j int) bool { return a.Compare(i, j) < 0 })
	}
}

type scalarPartial[T any] struct {
	min, max T
	ok       bool
}

// scalarBounds reduces kinds whose values fit an unboxed accumulator. A nil
// skip means the kind has no null representation.
func scalarBounds[T any](a array.Array, from, to, threshold int,
	get func(array.Array, int) T, less func(x, y T) bool, skip func(T) bool) (Bounds, bool) {

	r := forkJoin(from, to, threshold,
		func(from, to int) scalarPartial[T] {
			var p scalarPartial[T]
			for i := from; i <= to; i++ {
				v := get(a, i)
				if skip != nil && skip(v) {
					continue
				}
				if !p.ok {
					p = scalarPartial[T]{min: v, max: v, ok: true}
					continue
				}
				if less(v, p.min) {
					p.min = v
				}
				if less(p.max, v) {
					p.max = v
				}
			}
			return p
		},
		func(left, right scalarPartial[T]) scalarPartial[T] {
			if !left.ok {
				return right
			}
			if !right.ok {
				return left
			}
			if less(right.min, left.min) {
				left.min = right.min
			}
			if less(left.max, right.max) {
				left.max = right.max
			}
			return left
		})
	if !r.ok {
		return Bounds{}, false
	}
	return Bounds{Min: r.min, Max: r.max}, true
}

type argPartial struct {
	minIdx, maxIdx int
	ok             bool
}

// argBounds reduces kinds whose comparison runs on stored representations,
// carrying winning indexes through the merge and decoding values only for the
// final result.
func argBounds(a array.Array, from, to, threshold int, less func(i, j int) bool) (Bounds, bool) {
	merge := func(left, right argPartial) argPartial {
		if !left.ok {
			return right
		}
		if !right.ok {
			return left
		}
		if less(right.minIdx, left.minIdx) {
			left.minIdx = right.minIdx
		}
		if less(left.maxIdx, right.maxIdx) {
			left.maxIdx = right.maxIdx
		}
		return left
	}

	r := forkJoin(from, to, threshold,
		func(from, to int) argPartial {
			var p argPartial
			for i := from; i <= to; i++ {
				if a.IsNull(i) {
					continue
				}
				if !p.ok {
					p = argPartial{minIdx: i, maxIdx: i, ok: true}
					continue
				}
				if less(i, p.minIdx) {
					p.minIdx = i
				}
				if less(p.maxIdx, i) {
					p.maxIdx = i
				}
			}
			return p
		},
		merge)
	if !r.ok {
		return Bounds{}, false
	}
	return Bounds{Min: a.Value(r.minIdx), Max: a.Value(r.maxIdx)}, true
}
