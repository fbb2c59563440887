package dense

import (
	"io"
	"reflect"
	"time"

	"github.com/goccy/go-json"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// objectData is the backing store shared by every view of one object array.
type objectData struct {
	values   []interface{}
	def      interface{}
	elemType reflect.Type // nil disables the element-type lock
}

// Object is the dense boxed array for element types with no specialized
// backend. When constructed with an element type, stores are checked against
// it; nil is always accepted and is the null representation.
type Object struct {
	data     *objectData
	parallel bool
}

// NewObject creates a dense object array. elemType may be nil to accept any
// element; def must conform when a type is given.
func NewObject(length int, def interface{}, elemType reflect.Type) *Object {
	if length < 0 {
		panic(errors.Newf(errors.ErrorTypeBounds, "negative array length %d", length))
	}
	data := &objectData{def: def, elemType: elemType}
	checkObjectType(data, def)
	data.values = make([]interface{}, length)
	if def != nil {
		for i := range data.values {
			data.values[i] = def
		}
	}
	return &Object{data: data}
}

func checkObjectType(data *objectData, value interface{}) {
	if value == nil || data.elemType == nil {
		return
	}
	if !reflect.TypeOf(value).AssignableTo(data.elemType) {
		panic(errors.Newf(errors.ErrorTypeIncompatibleType,
			"expected element of type %s, got %T", data.elemType, value))
	}
}

func objectView(data *objectData, parallel bool) *Object {
	return &Object{data: data, parallel: parallel}
}

func (a *Object) Close() error { return nil }

func (a *Object) Length() int { return len(a.data.values) }

func (a *Object) Kind() array.Kind { return array.KindObject }

func (a *Object) DefaultValue() interface{} { return a.data.def }

func (a *Object) LoadFactor() float64 { return 1 }

func (a *Object) Parallel() array.Array { return objectView(a.data, true) }

func (a *Object) Sequential() array.Array { return objectView(a.data, false) }

func (a *Object) IsParallel() bool { return a.parallel }

func (a *Object) Value(index int) interface{} {
	array.CheckIndex(index, len(a.data.values))
	return a.data.values[index]
}

func (a *Object) SetValue(index int, value interface{}) {
	array.CheckIndex(index, len(a.data.values))
	checkObjectType(a.data, value)
	a.data.values[index] = value
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

func (a *Object) IsNull(index int) bool {
	array.CheckIndex(index, len(a.data.values))
	return a.data.values[index] == nil
}

func (a *Object) IsEqualTo(index int, value interface{}) bool {
	array.CheckIndex(index, len(a.data.values))
	return EqualBoxed(a.data.values[index], value)
}

func (a *Object) Copy() array.Array {
	values := make([]interface{}, len(a.data.values))
	copy(values, a.data.values)
	return objectView(&objectData{values: values, def: a.data.def, elemType: a.data.elemType}, a.parallel)
}

func (a *Object) CopyRange(start, end int) array.Array {
	array.CheckRange(start, end, len(a.data.values))
	values := make([]interface{}, end-start)
	copy(values, a.data.values[start:end])
	return objectView(&objectData{values: values, def: a.data.def, elemType: a.data.elemType}, a.parallel)
}

func (a *Object) CopyIndexes(indexes []int) array.Array {
	values := make([]interface{}, len(indexes))
	for k, i := range indexes {
		array.CheckIndex(i, len(a.data.values))
		values[k] = a.data.values[i]
	}
	return objectView(&objectData{values: values, def: a.data.def, elemType: a.data.elemType}, a.parallel)
}

func (a *Object) Swap(i, j int) {
	array.CheckIndex(i, len(a.data.values))
	array.CheckIndex(j, len(a.data.values))
	a.data.values[i], a.data.values[j] = a.data.values[j], a.data.values[i]
}

func (a *Object) Compare(i, j int) int {
	return CompareBoxed(a.Value(i), a.Value(j))
}

func (a *Object) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Object) Filter(predicate array.Predicate) array.Array {
	var values []interface{}
	for i := range a.data.values {
		if predicate(a, i) {
			values = append(values, a.data.values[i])
		}
	}
	return objectView(&objectData{values: values, def: a.data.def, elemType: a.data.elemType}, a.parallel)
}

func (a *Object) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	for k := range fromIndexes {
		v := from.Value(fromIndexes[k])
		checkObjectType(a.data, v)
		a.data.values[toIndexes[k]] = v
	}
}

func (a *Object) UpdateRange(from array.Array, fromStart, toStart, count int) {
	array.CheckRange(fromStart, fromStart+count, from.Length())
	array.CheckRange(toStart, toStart+count, len(a.data.values))
	for k := 0; k < count; k++ {
		v := from.Value(fromStart + k)
		checkObjectType(a.data, v)
		a.data.values[toStart+k] = v
	}
}

func (a *Object) Expand(newLength int) {
	if newLength <= len(a.data.values) {
		return
	}
	grown := make([]interface{}, newLength)
	copy(grown, a.data.values)
	if a.data.def != nil {
		for i := len(a.data.values); i < newLength; i++ {
			grown[i] = a.data.def
		}
	}
	a.data.values = grown
}

func (a *Object) Fill(value interface{}) {
	checkObjectType(a.data, value)
	for i := range a.data.values {
		a.data.values[i] = value
	}
}

func (a *Object) FillRange(value interface{}, start, end int) {
	array.CheckRange(start, end, len(a.data.values))
	checkObjectType(a.data, value)
	for i := start; i < end; i++ {
		a.data.values[i] = value
	}
}

func (a *Object) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, len(a.data.values))
	return array.Search(start, end, func(i int) int {
		return CompareBoxed(a.data.values[i], value)
	})
}

// Distinct treats elements of non-comparable dynamic types (slices, maps) as
// pairwise distinct, since == is undefined for them.
func (a *Object) Distinct(limit int) array.Array {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[interface{}]struct{}, capacity)
	var values []interface{}
	for _, v := range a.data.values {
		if hashableBoxed(v) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		values = append(values, v)
		if limit > 0 && len(values) >= limit {
			break
		}
	}
	return objectView(&objectData{values: values, def: a.data.def, elemType: a.data.elemType}, a.parallel)
}

func (a *Object) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindObject)) }

// Read decodes JSON-framed elements. Values round-trip with JSON fidelity
// only; rich types restore as their JSON shapes.
func (a *Object) Read(r io.Reader, count int) error {
	return array.ReadVar(r, count, len(a.data.values), func(i int, b []byte) error {
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "decoding object element")
		}
		a.data.values[i] = v
		return nil
	})
}

func (a *Object) Write(w io.Writer, indexes []int) error {
	return array.WriteVar(w, indexes, len(a.data.values), func(i int) ([]byte, error) {
		b, err := json.Marshal(a.data.values[i])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "encoding object element")
		}
		return b, nil
	})
}

// EqualBoxed reports whether two boxed values are equal. It never panics:
// values of non-comparable dynamic types compare unequal to everything.
func EqualBoxed(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func hashableBoxed(v interface{}) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

// CompareBoxed orders two boxed values of the same dynamic type, nil first.
func CompareBoxed(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch av := a.(type) {
	case string:
		return array.CompareOrdered(av, b.(string))
	case int:
		return array.CompareOrdered(int64(av), int64(b.(int)))
	case int32:
		return array.CompareOrdered(av, b.(int32))
	case int64:
		return array.CompareOrdered(av, b.(int64))
	case float64:
		return array.CompareFloat64(av, b.(float64))
	case bool:
		return array.CompareBool(av, b.(bool))
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	panic(errors.Newf(errors.ErrorTypeUnsupported, "no ordering for element type %T", a))
}
