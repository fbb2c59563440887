package dense

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
)

// String is the dense string array. Strings have no null representation;
// the empty string is an ordinary value.
type String struct {
	column[string]
}

// NewString creates a dense string array with every slot set to def.
func NewString(length int, def string) *String {
	return &String{newColumn(length, def)}
}

func stringView(data *columnData[string], parallel bool) *String {
	return &String{column[string]{data: data, parallel: parallel}}
}

func (a *String) Close() error { return nil }

func (a *String) Length() int { return a.length() }

func (a *String) Kind() array.Kind { return array.KindString }

func (a *String) DefaultValue() interface{} { return a.data.def }

func (a *String) LoadFactor() float64 { return 1 }

func (a *String) Parallel() array.Array { return stringView(a.data, true) }

func (a *String) Sequential() array.Array { return stringView(a.data, false) }

func (a *String) IsParallel() bool { return a.parallel }

func (a *String) Value(index int) interface{} { return a.get(index) }

func (a *String) SetValue(index int, value interface{}) { a.set(index, AsString(value)) }

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
	return a.get(index) == AsString(value)
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
	values := a.filter(func(i int) bool { return predicate(a, i) })
	return stringView(&columnData[string]{values: values, def: a.data.def}, a.parallel)
}

func (a *String) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	a.updateScatter(fromIndexes, toIndexes, func(i int) string { return AsString(from.Value(i)) })
}

func (a *String) UpdateRange(from array.Array, fromStart, toStart, count int) {
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) string {
		return AsString(from.Value(i))
	})
}

func (a *String) Expand(newLength int) { a.expand(newLength) }

func (a *String) Fill(value interface{}) { a.fill(AsString(value)) }

func (a *String) FillRange(value interface{}, start, end int) {
	a.fillRange(AsString(value), start, end)
}

func (a *String) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := AsString(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.data.values[i], target)
	})
}

func (a *String) Distinct(limit int) array.Array {
	return stringView(&columnData[string]{values: a.distinct(limit), def: a.data.def}, a.parallel)
}

func (a *String) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindString)) }

func (a *String) Read(r io.Reader, count int) error {
	return array.ReadVar(r, count, a.length(), func(i int, b []byte) error {
		a.data.values[i] = string(b)
		return nil
	})
}

func (a *String) Write(w io.Writer, indexes []int) error {
	return array.WriteVar(w, indexes, a.length(), func(i int) ([]byte, error) {
		return []byte(a.data.values[i]), nil
	})
}
