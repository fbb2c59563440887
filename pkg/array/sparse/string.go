package sparse

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
)

// String is the hash-backed string array. Strings have no null
// representation; an unwritten slot reads the default.
type String struct {
	hashColumn[string]
}

// NewString creates a sparse string array; slots read def until written.
func NewString(length int, def string) *String {
	return &String{newHashColumn(length, def, nil)}
}

func stringView(data *hashData[string], parallel bool) *String {
	return &String{hashColumn[string]{data: data, parallel: parallel}}
}

func (a *String) Close() error { return nil }

func (a *String) Length() int { return a.length() }

func (a *String) Kind() array.Kind { return array.KindString }

func (a *String) DefaultValue() interface{} { return a.data.def }

func (a *String) LoadFactor() float64 { return a.loadFactor() }

func (a *String) Parallel() array.Array { return stringView(a.data, true) }

func (a *String) Sequential() array.Array { return stringView(a.data, false) }

func (a *String) IsParallel() bool { return a.parallel }

func (a *String) Value(index int) interface{} { return a.get(index) }

func (a *String) SetValue(index int, value interface{}) { a.set(index, dense.AsString(value)) }

func (a *String) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindString)) }

func (a *String) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindString))
}

func (a *String) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindString)) }

func (a *String) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindString))
}

func (a *String) Int64(index int) int64 { panic(array.ErrWrongKind("Int64", array.KindString)) }

func (a *String) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindString))
}

func (a *String) Float64(index int) float64 {
	panic(array.ErrWrongKind("Float64", array.KindString))
}

func (a *String) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindString))
}

func (a *String) IsNull(index int) bool {
	array.CheckIndex(index, a.length())
	return false
}

func (a *String) IsEqualTo(index int, value interface{}) bool {
	if value == nil {
		return false
	}
	return a.get(index) == dense.AsString(value)
}

func (a *String) Copy() array.Array { return stringView(a.copyData(), a.parallel) }

func (a *String) CopyRange(start, end int) array.Array {
	return stringView(a.copyRange(start, end), a.parallel)
}

func (a *String) CopyIndexes(indexes []int) array.Array {
	return stringView(a.copyIndexes(indexes), a.parallel)
}

func (a *String) Swap(i, j int) { a.swap(i, j) }

func (a *String) Compare(i, j int) int { return array.CompareOrdered(a.get(i), a.get(j)) }

func (a *String) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *String) Filter(predicate array.Predicate) array.Array {
	return stringView(a.filter(func(i int) bool { return predicate(a, i) }), a.parallel)
}

func (a *String) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	a.updateScatter(fromIndexes, toIndexes, func(i int) string { return dense.AsString(from.Value(i)) })
}

func (a *String) UpdateRange(from array.Array, fromStart, toStart, count int) {
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) string {
		return dense.AsString(from.Value(i))
	})
}

func (a *String) Expand(newLength int) { a.expand(newLength) }

func (a *String) Fill(value interface{}) { a.fill(dense.AsString(value)) }

func (a *String) FillRange(value interface{}, start, end int) {
	a.fillRange(dense.AsString(value), start, end)
}

func (a *String) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := dense.AsString(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.get(i), target)
	})
}

func (a *String) Distinct(limit int) array.Array {
	return stringView(a.distinct(limit), a.parallel)
}

func (a *String) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindString)) }

func (a *String) Read(r io.Reader, count int) error {
	return array.ReadVar(r, count, a.length(), func(i int, b []byte) error {
		a.set(i, string(b))
		return nil
	})
}

func (a *String) Write(w io.Writer, indexes []int) error {
	return array.WriteVar(w, indexes, a.length(), func(i int) ([]byte, error) {
		return []byte(a.get(i)), nil
	})
}
