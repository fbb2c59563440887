package mapped

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/config"
)

// Int64 is the file-backed int64 array.
type Int64 struct {
	fileColumn[int64]
}

// NewInt64 creates a mapped int64 array with every slot set to def.
func NewInt64(cfg *config.StorageConfig, length int, def int64) (*Int64, error) {
	data, err := newFileData(cfg, length, def, array.StrideInt64, array.PutInt64, array.GetInt64)
	if err != nil {
		return nil, err
	}
	return &Int64{fileColumn[int64]{data: data}}, nil
}

func int64View(data *fileData[int64], parallel bool) *Int64 {
	return &Int64{fileColumn[int64]{data: data, parallel: parallel}}
}

func (a *Int64) Length() int { return a.length() }

func (a *Int64) Kind() array.Kind { return array.KindInt64 }

func (a *Int64) DefaultValue() interface{} { return a.data.def }

func (a *Int64) LoadFactor() float64 { return 1 }

func (a *Int64) Parallel() array.Array { return int64View(a.data, true) }

func (a *Int64) Sequential() array.Array { return int64View(a.data, false) }

func (a *Int64) IsParallel() bool { return a.parallel }

func (a *Int64) Value(index int) interface{} { return a.get(index) }

func (a *Int64) SetValue(index int, value interface{}) { a.set(index, dense.AsInt64(value)) }

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
	return a.get(index) == dense.AsInt64(value)
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
	return int64View(a.filter(func(i int) bool { return predicate(a, i) }), a.parallel)
}

func (a *Int64) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	switch from.Kind() {
	case array.KindInt64, array.KindInt:
		a.updateScatter(fromIndexes, toIndexes, from.Int64)
	default:
		a.updateScatter(fromIndexes, toIndexes, func(i int) int64 { return dense.AsInt64(from.Value(i)) })
	}
}

func (a *Int64) UpdateRange(from array.Array, fromStart, toStart, count int) {
	switch from.Kind() {
	case array.KindInt64, array.KindInt:
		a.updateRange(fromStart, toStart, count, from.Length(), from.Int64)
	default:
		a.updateRange(fromStart, toStart, count, from.Length(), func(i int) int64 {
			return dense.AsInt64(from.Value(i))
		})
	}
}

func (a *Int64) Expand(newLength int) { a.expand(newLength) }

func (a *Int64) Fill(value interface{}) { a.fill(dense.AsInt64(value)) }

func (a *Int64) FillRange(value interface{}, start, end int) {
	a.data.fillRange(dense.AsInt64(value), start, end)
}

func (a *Int64) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	target := dense.AsInt64(value)
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.get(i), target)
	})
}

func (a *Int64) Distinct(limit int) array.Array {
	return int64View(a.distinct(limit), a.parallel)
}

func (a *Int64) CumSum() array.Array {
	out := a.data.sibling(a.length())
	var sum int64
	for i := 0; i < a.length(); i++ {
		sum += a.get(i)
		out.setAt(i, sum)
	}
	return int64View(out, a.parallel)
}

func (a *Int64) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideInt64, func(i int, b []byte) {
		a.set(i, array.GetInt64(b))
	})
}

func (a *Int64) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideInt64, func(i int, b []byte) {
		array.PutInt64(b, a.get(i))
	})
}
