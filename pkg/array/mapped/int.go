package mapped

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/config"
)

// Int is the file-backed int32 array.
type Int struct {
	fileColumn[int32]
}

// NewInt creates a mapped int32 array with every slot set to def.
func NewInt(cfg *config.StorageConfig, length int, def int32) (*Int, error) {
	data, err := newFileData(cfg, length, def, array.StrideInt, array.PutInt32, array.GetInt32)
	if err != nil {
		return nil, err
	}
	return &Int{fileColumn[int32]{data: data}}, nil
}

func intView(data *fileData[int32], parallel bool) *Int {
	return &Int{fileColumn[int32]{data: data, parallel: parallel}}
}

func (a *Int) Length() int { return a.length() }

func (a *Int) Kind() array.Kind { return array.KindInt }

func (a *Int) DefaultValue() interface{} { return a.data.def }

func (a *Int) LoadFactor() float64 { return 1 }

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
	a.data.fillRange(dense.AsInt32(value), start, end)
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

// CumSum returns the running sum as a new mapped array.
func (a *Int) CumSum() array.Array {
	out := a.data.sibling(a.length())
	var sum int32
	for i := 0; i < a.length(); i++ {
		sum += a.get(i)
		out.setAt(i, sum)
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
