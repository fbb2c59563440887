package sparse

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
)

// Int is the hash-backed int32 array.
type Int struct {
	hashColumn[int32]
}

// NewInt creates a sparse int32 array; slots read def until written.
func NewInt(length int, def int32) *Int {
	return &Int{newHashColumn(length, def, nil)}
}

func intView(data *hashData[int32], parallel bool) *Int {
	return &Int{hashColumn[int32]{data: data, parallel: parallel}}
}

func (a *Int) Close() error { return nil }

func (a *Int) Length() int { return a.length() }

func (a *Int) Kind() array.Kind { return array.KindInt }

func (a *Int) DefaultValue() interface{} { return a.data.def }

func (a *Int) LoadFactor() float64 { return a.loadFactor() }

func (a *Int) Parallel() array.Array { return intView(a.data, true) }

func (a *Int) Sequential() array.Array { return intView(a.data, false) }

func (a *Int) IsParallel() bool { return a.parallel }

func (a *Int) Value(index int) interface{} { return a.get(index) }

func (a *Int) SetValue(index int, value interface{}) { a.set(index, dense.AsInt32(value)) }

func (a *Int) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindInt)) }

func (a *Int) SetBool(index int, value bool) { panic(array.ErrWrongKind("SetBool", array.KindInt)) }

func (a *Int) Int(index int) int32 { return a.get(index) }

func (a *Int) SetInt(index int, value int32) { a.set(index, value) }

func (a *Int) Int64(index int) int64 { return int64(a.get(index)) }

func (a *Int) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindInt))
}

func (a *Int) Float64(index int) float64 { return float64(a.get(index)) }

func (a *Int) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindInt))
}

func (a *Int) IsNull(index int) bool {
	array.CheckIndex(index, a.length())
	return false
}

func (a *Int) IsEqualTo(index int, value interface{}) bool {
	if value == nil {
		return false
	}
	return a.get(index) == dense.AsInt32(value)
}

func (a *Int) Copy() array.Array { return intView(a.copyData(), a.parallel) }

func (a *Int) CopyRange(start, end int) array.Array {
	return intView(a.copyRange(start, end), a.parallel)
}

func (a *Int) CopyIndexes(indexes []int) array.Array {
	return intView(a.copyIndexes(indexes), a.parallel)
}

func (a *Int) Swap(i, j int) { a.swap(i, j) }

func (a *Int) Compare(i, j int) int { return array.CompareOrdered(a.get(i), a.get(j)) }

func (a *Int) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Int) Filter(predicate array.Predicate) array.Array {
	return intView(a.filter(func(i int) bool { return predicate(a, i) }), a.parallel)
}

func (a *Int) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if from.Kind() == array.KindInt {
		a.updateScatter(fromIndexes, toIndexes, from.Int)
		return
	}
	a.updateScatter(fromIndexes, toIndexes, func(i int) int32 { return dense.AsInt32(from.Value(i)) })
}

func (a *Int) UpdateRange(from array.Array, fromStart, toStart, count int) {
	if from.Kind() == array.KindInt {
		a.updateRange(fromStart, toStart, count, from.Length(), from.Int)
		return
	}
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) int32 {
		return dense.AsInt32(from.Value(i))
	})
}

func (a *Int) Expand(newLength int) { a.expand(newLength) }

func (a *Int) Fill(value interface{}) { a.fill(dense.AsInt32(value)) }

func (a *Int) FillRange(value interface{}, start, end int) {
	a.fillRange(dense.AsInt32(value), start, end)
}

func (a *Int) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := dense.AsInt32(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.get(i), target)
	})
}

func (a *Int) Distinct(limit int) array.Array {
	return intView(a.distinct(limit), a.parallel)
}

// CumSum returns the running sum. The result is usually dense in practice
// but stays hash-backed so views keep a uniform representation.
func (a *Int) CumSum() array.Array {
	out := &hashData[int32]{entries: make(map[int]int32), length: a.length(), def: a.data.def}
	var sum int32
	for i := 0; i < a.length(); i++ {
		sum += a.get(i)
		if sum != a.data.def {
			out.entries[i] = sum
		}
	}
	return intView(out, a.parallel)
}

func (a *Int) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideInt, func(i int, b []byte) {
		a.set(i, array.GetInt32(b))
	})
}

func (a *Int) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideInt, func(i int, b []byte) {
		array.PutInt32(b, a.get(i))
	})
}
