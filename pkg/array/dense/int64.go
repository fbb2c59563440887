package dense

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
)

// Int64 is the dense int64 array.
type Int64 struct {
	column[int64]
}

// NewInt64 creates a dense int64 array with every slot set to def.
func NewInt64(length int, def int64) *Int64 {
	return &Int64{newColumn(length, def)}
}

func int64View(data *columnData[int64], parallel bool) *Int64 {
	return &Int64{column[int64]{data: data, parallel: parallel}}
}

func (a *Int64) Close() error { return nil }

func (a *Int64) Length() int { return a.length() }

func (a *Int64) Kind() array.Kind { return array.KindInt64 }

func (a *Int64) DefaultValue() interface{} { return a.data.def }

func (a *Int64) LoadFactor() float64 { return 1 }

func (a *Int64) Parallel() array.Array { return int64View(a.data, true) }

func (a *Int64) Sequential() array.Array { return int64View(a.data, false) }

func (a *Int64) IsParallel() bool { return a.parallel }

func (a *Int64) Value(index int) interface{} { return a.get(index) }

func (a *Int64) SetValue(index int, value interface{}) { a.set(index, AsInt64(value)) }

func (a *Int64) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindInt64)) }

func (a *Int64) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindInt64))
}

func (a *Int64) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindInt64)) }

func (a *Int64) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindInt64))
}

func (a *Int64) Int64(index int) int64 { return a.get(index) }

func (a *Int64) SetInt64(index int, value int64) { a.set(index, value) }

func (a *Int64) Float64(index int) float64 { return float64(a.get(index)) }

func (a *Int64) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindInt64))
}

func (a *Int64) IsNull(index int) bool {
	array.CheckIndex(index, a.length())
	return false
}

func (a *Int64) IsEqualTo(index int, value interface{}) bool {
	if value == nil {
		return false
	}
	return a.get(index) == AsInt64(value)
}

func (a *Int64) Copy() array.Array { return int64View(a.copyData(), a.parallel) }

func (a *Int64) CopyRange(start, end int) array.Array {
	return int64View(a.copyRange(start, end), a.parallel)
}

func (a *Int64) CopyIndexes(indexes []int) array.Array {
	return int64View(a.copyIndexes(indexes), a.parallel)
}

func (a *Int64) Swap(i, j int) { a.swap(i, j) }

func (a *Int64) Compare(i, j int) int { return array.CompareOrdered(a.get(i), a.get(j)) }

func (a *Int64) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Int64) Filter(predicate array.Predicate) array.Array {
	values := a.filter(func(i int) bool { return predicate(a, i) })
	return int64View(&columnData[int64]{values: values, def: a.data.def}, a.parallel)
}

func (a *Int64) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	switch from.Kind() {
	case array.KindInt64, array.KindInt:
		a.updateScatter(fromIndexes, toIndexes, from.Int64)
	default:
		a.updateScatter(fromIndexes, toIndexes, func(i int) int64 { return AsInt64(from.Value(i)) })
	}
}

func (a *Int64) UpdateRange(from array.Array, fromStart, toStart, count int) {
	switch from.Kind() {
	case array.KindInt64, array.KindInt:
		a.updateRange(fromStart, toStart, count, from.Length(), from.Int64)
	default:
		a.updateRange(fromStart, toStart, count, from.Length(), func(i int) int64 {
			return AsInt64(from.Value(i))
		})
	}
}

func (a *Int64) Expand(newLength int) { a.expand(newLength) }

func (a *Int64) Fill(value interface{}) { a.fill(AsInt64(value)) }

func (a *Int64) FillRange(value interface{}, start, end int) {
	a.fillRange(AsInt64(value), start, end)
}

func (a *Int64) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := AsInt64(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.data.values[i], target)
	})
}

func (a *Int64) Distinct(limit int) array.Array {
	return int64View(&columnData[int64]{values: a.distinct(limit), def: a.data.def}, a.parallel)
}

// CumSum returns the running sum as a new int64 array.
func (a *Int64) CumSum() array.Array {
	out := make([]int64, a.length())
	var sum int64
	for i, v := range a.data.values {
		sum += v
		out[i] = sum
	}
	return int64View(&columnData[int64]{values: out, def: a.data.def}, a.parallel)
}

func (a *Int64) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideInt64, func(i int, b []byte) {
		a.data.values[i] = array.GetInt64(b)
	})
}

func (a *Int64) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideInt64, func(i int, b []byte) {
		array.PutInt64(b, a.data.values[i])
	})
}
