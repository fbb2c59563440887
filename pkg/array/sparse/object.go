package sparse

import (
	"io"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// sameBoxed is the elision comparator for boxed elements. It never panics:
// values of non-comparable dynamic types are simply never treated as the
// default, so they stay materialized.
func sameBoxed(a, b interface{}) bool { return dense.EqualBoxed(a, b) }

// Object is the hash-backed boxed array for element types with no
// specialized backend. nil is the null representation.
type Object struct {
	hashColumn[interface{}]
	elemType reflect.Type
}

// NewObject creates a sparse object array. elemType may be nil to accept any
// element; def must conform when a type is given.
func NewObject(length int, def interface{}, elemType reflect.Type) *Object {
	checkElemType(elemType, def)
	return &Object{hashColumn: newHashColumn(length, def, sameBoxed), elemType: elemType}
}

func checkElemType(elemType reflect.Type, value interface{}) {
	if value == nil || elemType == nil {
		return
	}
	if !reflect.TypeOf(value).AssignableTo(elemType) {
		panic(errors.Newf(errors.ErrorTypeIncompatibleType,
			"element type %T not assignable to %s", value, elemType))
	}
}

func objectView(data *hashData[interface{}], elemType reflect.Type, parallel bool) *Object {
	return &Object{
		hashColumn: hashColumn[interface{}]{data: data, parallel: parallel},
		elemType:   elemType,
	}
}

func (a *Object) Close() error { return nil }

func (a *Object) Length() int { return a.length() }

func (a *Object) Kind() array.Kind { return array.KindObject }

func (a *Object) DefaultValue() interface{} { return a.data.def }

func (a *Object) LoadFactor() float64 { return a.loadFactor() }

func (a *Object) Parallel() array.Array { return objectView(a.data, a.elemType, true) }

func (a *Object) Sequential() array.Array { return objectView(a.data, a.elemType, false) }

func (a *Object) IsParallel() bool { return a.parallel }

func (a *Object) Value(index int) interface{} { return a.get(index) }

func (a *Object) SetValue(index int, value interface{}) {
	checkElemType(a.elemType, value)
	a.set(index, value)
}

func (a *Object) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindObject)) }

func (a *Object) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindObject))
}

func (a *Object) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindObject)) }

func (a *Object) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindObject))
}

func (a *Object) Int64(index int) int64 { panic(array.ErrWrongKind("Int64", array.KindObject)) }

func (a *Object) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindObject))
}

func (a *Object) Float64(index int) float64 {
	panic(array.ErrWrongKind("Float64", array.KindObject))
}

func (a *Object) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindObject))
}

func (a *Object) IsNull(index int) bool { return a.get(index) == nil }

func (a *Object) IsEqualTo(index int, value interface{}) bool {
	return sameBoxed(a.get(index), value)
}

func (a *Object) Copy() array.Array { return objectView(a.copyData(), a.elemType, a.parallel) }

func (a *Object) CopyRange(start, end int) array.Array {
	return objectView(a.copyRange(start, end), a.elemType, a.parallel)
}

func (a *Object) CopyIndexes(indexes []int) array.Array {
	return objectView(a.copyIndexes(indexes), a.elemType, a.parallel)
}

func (a *Object) Swap(i, j int) { a.swap(i, j) }

func (a *Object) Compare(i, j int) int { return dense.CompareBoxed(a.get(i), a.get(j)) }

func (a *Object) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Object) Filter(predicate array.Predicate) array.Array {
	return objectView(a.filter(func(i int) bool { return predicate(a, i) }), a.elemType, a.parallel)
}

func (a *Object) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	a.updateScatter(fromIndexes, toIndexes, func(i int) interface{} {
		v := from.Value(i)
		checkElemType(a.elemType, v)
		return v
	})
}

func (a *Object) UpdateRange(from array.Array, fromStart, toStart, count int) {
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) interface{} {
		v := from.Value(i)
		checkElemType(a.elemType, v)
		return v
	})
}

func (a *Object) Expand(newLength int) { a.expand(newLength) }

func (a *Object) Fill(value interface{}) {
	checkElemType(a.elemType, value)
	a.fill(value)
}

func (a *Object) FillRange(value interface{}, start, end int) {
	checkElemType(a.elemType, value)
	a.fillRange(value, start, end)
}

func (a *Object) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	return array.Search(start, end, func(i int) int {
		return dense.CompareBoxed(a.get(i), value)
	})
}

// Distinct treats elements of non-comparable dynamic types (slices, maps) as
// pairwise distinct, since == is undefined for them. Slots walk in index
// order so the result keeps first-occurrence order, default included.
func (a *Object) Distinct(limit int) array.Array {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[interface{}]struct{}, capacity)
	out := &hashData[interface{}]{entries: make(map[int]interface{}), def: a.data.def, same: a.data.same}
	for i := 0; i < a.length(); i++ {
		v := a.data.def
		if e, ok := a.data.entries[i]; ok {
			v = e
		}
		if v == nil || reflect.TypeOf(v).Comparable() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		if !a.data.isDefault(v) {
			out.entries[out.length] = v
		}
		out.length++
		if limit > 0 && out.length >= limit {
			break
		}
	}
	return objectView(out, a.elemType, a.parallel)
}

func (a *Object) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindObject)) }

// Read decodes JSON-framed elements; values round-trip with JSON fidelity
// only. The element-type lock is not enforced on restore, since JSON shapes
// rarely match the locked Go type exactly.
func (a *Object) Read(r io.Reader, count int) error {
	return array.ReadVar(r, count, a.length(), func(i int, b []byte) error {
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "decoding object element")
		}
		a.set(i, v)
		return nil
	})
}

func (a *Object) Write(w io.Writer, indexes []int) error {
	return array.WriteVar(w, indexes, a.length(), func(i int) ([]byte, error) {
		b, err := json.Marshal(a.get(i))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "encoding object element")
		}
		return b, nil
	})
}
