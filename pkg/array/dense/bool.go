package dense

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
)

// Bool is the dense boolean array. Booleans have no null representation.
type Bool struct {
	column[bool]
}

// NewBool creates a dense boolean array with every slot set to def.
func NewBool(length int, def bool) *Bool {
	return &Bool{newColumn(length, def)}
}

func boolView(data *columnData[bool], parallel bool) *Bool {
	return &Bool{column[bool]{data: data, parallel: parallel}}
}

func (a *Bool) Close() error { return nil }

func (a *Bool) Length() int { return a.length() }

func (a *Bool) Kind() array.Kind { return array.KindBool }

func (a *Bool) DefaultValue() interface{} { return a.data.def }

func (a *Bool) LoadFactor() float64 { return 1 }

func (a *Bool) Parallel() array.Array { return boolView(a.data, true) }

func (a *Bool) Sequential() array.Array { return boolView(a.data, false) }

func (a *Bool) IsParallel() bool { return a.parallel }

func (a *Bool) Value(index int) interface{} { return a.get(index) }

func (a *Bool) SetValue(index int, value interface{}) { a.set(index, AsBool(value)) }

func (a *Bool) Bool(index int) bool { return a.get(index) }

func (a *Bool) SetBool(index int, value bool) { a.set(index, value) }

func (a *Bool) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindBool)) }

func (a *Bool) SetInt(index int, value int32) { panic(array.ErrWrongKind("SetInt", array.KindBool)) }

func (a *Bool) Int64(index int) int64 { panic(array.ErrWrongKind("Int64", array.KindBool)) }

func (a *Bool) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindBool))
}

func (a *Bool) Float64(index int) float64 { panic(array.ErrWrongKind("Float64", array.KindBool)) }

func (a *Bool) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindBool))
}

func (a *Bool) IsNull(index int) bool {
	array.CheckIndex(index, a.length())
	return false
}

func (a *Bool) IsEqualTo(index int, value interface{}) bool {
	if value == nil {
		return false
	}
	return a.get(index) == AsBool(value)
}

func (a *Bool) Copy() array.Array { return boolView(a.copyData(), a.parallel) }

func (a *Bool) CopyRange(start, end int) array.Array {
	return boolView(a.copyRange(start, end), a.parallel)
}

func (a *Bool) CopyIndexes(indexes []int) array.Array {
	return boolView(a.copyIndexes(indexes), a.parallel)
}

func (a *Bool) Swap(i, j int) { a.swap(i, j) }

func (a *Bool) Compare(i, j int) int { return array.CompareBool(a.get(i), a.get(j)) }

func (a *Bool) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Bool) Filter(predicate array.Predicate) array.Array {
	values := a.filter(func(i int) bool { return predicate(a, i) })
	return boolView(&columnData[bool]{values: values, def: a.data.def}, a.parallel)
}

func (a *Bool) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if from.Kind() == array.KindBool {
		a.updateScatter(fromIndexes, toIndexes, from.Bool)
		return
	}
	a.updateScatter(fromIndexes, toIndexes, func(i int) bool { return AsBool(from.Value(i)) })
}

func (a *Bool) UpdateRange(from array.Array, fromStart, toStart, count int) {
	if from.Kind() == array.KindBool {
		a.updateRange(fromStart, toStart, count, from.Length(), from.Bool)
		return
	}
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) bool {
		return AsBool(from.Value(i))
	})
}

func (a *Bool) Expand(newLength int) { a.expand(newLength) }

func (a *Bool) Fill(value interface{}) { a.fill(AsBool(value)) }

func (a *Bool) FillRange(value interface{}, start, end int) {
	a.fillRange(AsBool(value), start, end)
}

func (a *Bool) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := AsBool(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareBool(a.data.values[i], target)
	})
}

func (a *Bool) Distinct(limit int) array.Array {
	return boolView(&columnData[bool]{values: a.distinct(limit), def: a.data.def}, a.parallel)
}

func (a *Bool) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindBool)) }

func (a *Bool) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideBool, func(i int, b []byte) {
		a.data.values[i] = array.GetBool(b)
	})
}

func (a *Bool) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideBool, func(i int, b []byte) {
		array.PutBool(b, a.data.values[i])
	})
}
