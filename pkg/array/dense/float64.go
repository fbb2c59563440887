package dense

import (
	"io"
	"math"

	"github.com/tabular-io/columnstore/pkg/array"
)

// Float64 is the dense float64 array. NaN is the null representation.
type Float64 struct {
	column[float64]
}

// NewFloat64 creates a dense float64 array with every slot set to def.
func NewFloat64(length int, def float64) *Float64 {
	return &Float64{newColumn(length, def)}
}

func float64View(data *columnData[float64], parallel bool) *Float64 {
	return &Float64{column[float64]{data: data, parallel: parallel}}
}

func (a *Float64) Close() error { return nil }

func (a *Float64) Length() int { return a.length() }

func (a *Float64) Kind() array.Kind { return array.KindFloat64 }

func (a *Float64) DefaultValue() interface{} { return a.data.def }

func (a *Float64) LoadFactor() float64 { return 1 }

func (a *Float64) Parallel() array.Array { return float64View(a.data, true) }

func (a *Float64) Sequential() array.Array { return float64View(a.data, false) }

func (a *Float64) IsParallel() bool { return a.parallel }

func (a *Float64) Value(index int) interface{} {
	v := a.get(index)
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (a *Float64) SetValue(index int, value interface{}) { a.set(index, AsFloat64(value)) }

func (a *Float64) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindFloat64)) }

func (a *Float64) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindFloat64))
}

func (a *Float64) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindFloat64)) }

func (a *Float64) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindFloat64))
}

func (a *Float64) Int64(index int) int64 { panic(array.ErrWrongKind("Int64", array.KindFloat64)) }

func (a *Float64) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindFloat64))
}

func (a *Float64) Float64(index int) float64 { return a.get(index) }

func (a *Float64) SetFloat64(index int, value float64) { a.set(index, value) }

func (a *Float64) IsNull(index int) bool { return math.IsNaN(a.get(index)) }

func (a *Float64) IsEqualTo(index int, value interface{}) bool {
	v := a.get(index)
	if value == nil {
		return math.IsNaN(v)
	}
	return v == AsFloat64(value)
}

func (a *Float64) Copy() array.Array { return float64View(a.copyData(), a.parallel) }

func (a *Float64) CopyRange(start, end int) array.Array {
	return float64View(a.copyRange(start, end), a.parallel)
}

func (a *Float64) CopyIndexes(indexes []int) array.Array {
	return float64View(a.copyIndexes(indexes), a.parallel)
}

func (a *Float64) Swap(i, j int) { a.swap(i, j) }

func (a *Float64) Compare(i, j int) int { return array.CompareFloat64(a.get(i), a.get(j)) }

func (a *Float64) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Float64) Filter(predicate array.Predicate) array.Array {
	values := a.filter(func(i int) bool { return predicate(a, i) })
	return float64View(&columnData[float64]{values: values, def: a.data.def}, a.parallel)
}

func (a *Float64) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	switch from.Kind() {
	case array.KindFloat64, array.KindInt, array.KindInt64:
		a.updateScatter(fromIndexes, toIndexes, from.Float64)
	default:
		a.updateScatter(fromIndexes, toIndexes, func(i int) float64 { return AsFloat64(from.Value(i)) })
	}
}

func (a *Float64) UpdateRange(from array.Array, fromStart, toStart, count int) {
	switch from.Kind() {
	case array.KindFloat64, array.KindInt, array.KindInt64:
		a.updateRange(fromStart, toStart, count, from.Length(), from.Float64)
	default:
		a.updateRange(fromStart, toStart, count, from.Length(), func(i int) float64 {
			return AsFloat64(from.Value(i))
		})
	}
}

func (a *Float64) Expand(newLength int) { a.expand(newLength) }

func (a *Float64) Fill(value interface{}) { a.fill(AsFloat64(value)) }

func (a *Float64) FillRange(value interface{}, start, end int) {
	a.fillRange(AsFloat64(value), start, end)
}

func (a *Float64) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := AsFloat64(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareFloat64(a.data.values[i], target)
	})
}

// Distinct treats every NaN as the same value, unlike the == operator.
func (a *Float64) Distinct(limit int) array.Array {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[float64]struct{}, capacity)
	seenNaN := false
	var out []float64
	for _, v := range a.data.values {
		if math.IsNaN(v) {
			if seenNaN {
				continue
			}
			seenNaN = true
		} else {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return float64View(&columnData[float64]{values: out, def: a.data.def}, a.parallel)
}

// CumSum returns the running sum, absorbing NaN entries: a NaN slot yields
// the sum so far rather than poisoning every later slot, and slots before
// the first number stay NaN.
func (a *Float64) CumSum() array.Array {
	out := make([]float64, a.length())
	sum := math.NaN()
	for i, v := range a.data.values {
		switch {
		case math.IsNaN(v):
			// keep the running sum
		case math.IsNaN(sum):
			sum = v
		default:
			sum += v
		}
		out[i] = sum
	}
	return float64View(&columnData[float64]{values: out, def: a.data.def}, a.parallel)
}

func (a *Float64) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideFloat64, func(i int, b []byte) {
		a.data.values[i] = array.GetFloat64(b)
	})
}

func (a *Float64) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideFloat64, func(i int, b []byte) {
		array.PutFloat64(b, a.data.values[i])
	})
}
