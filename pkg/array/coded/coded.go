// Package coded provides arrays that store rich element types as integer
// codes translated through a coding table. The backing array is any
// int32-kinded or int64-kinded array from the other families, so a coded
// column composes freely with dense, sparse or mapped storage.
//
// The boxed Value surface speaks the table's element type; the unboxed
// Int/Int64 fast path speaks raw codes, which is what reductions and sorts
// operate on. Code order is value order only for monotonic codings (years,
// dates, instants); interned codings (zones, enums) order by assignment.
package coded

import (
	"io"
	"slices"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/errors"
)

func sameTable(a, b coding.Descriptor) bool {
	return a.Kind == b.Kind && slices.Equal(a.Values, b.Values)
}

// Int is an array of table-coded values over int32 code storage.
type Int struct {
	codes   array.Array
	table   coding.IntTable
	defCode int32
}

// NewInt wraps an int32-kinded backing array with a coding table. The
// backing array's default value is taken as the default code.
func NewInt(codes array.Array, table coding.IntTable) (*Int, error) {
	if codes.Kind() != array.KindInt {
		return nil, errors.Newf(errors.ErrorTypeIncompatibleType,
			"coded int array needs int32 code storage, got %s", codes.Kind())
	}
	return &Int{codes: codes, table: table, defCode: dense.AsInt32(codes.DefaultValue())}, nil
}

func (a *Int) view(codes array.Array) *Int {
	return &Int{codes: codes, table: a.table, defCode: a.defCode}
}

// Table returns the coding table translating this array's codes.
func (a *Int) Table() coding.IntTable { return a.table }

// Codes returns the backing code array.
func (a *Int) Codes() array.Array { return a.codes }

func (a *Int) code(value interface{}) int32 {
	c, err := a.table.CodeAny(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (a *Int) Close() error { return a.codes.Close() }

func (a *Int) Length() int { return a.codes.Length() }

func (a *Int) Kind() array.Kind { return array.KindCodedInt }

func (a *Int) DefaultValue() interface{} { return a.table.ValueAny(a.defCode) }

func (a *Int) LoadFactor() float64 { return a.codes.LoadFactor() }

func (a *Int) Parallel() array.Array { return a.view(a.codes.Parallel()) }

func (a *Int) Sequential() array.Array { return a.view(a.codes.Sequential()) }

func (a *Int) IsParallel() bool { return a.codes.IsParallel() }

func (a *Int) Value(index int) interface{} { return a.table.ValueAny(a.codes.Int(index)) }

func (a *Int) SetValue(index int, value interface{}) { a.codes.SetInt(index, a.code(value)) }

func (a *Int) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindCodedInt)) }

func (a *Int) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindCodedInt))
}

// Int returns the raw code of a slot, not a numeric value.
func (a *Int) Int(index int) int32 { return a.codes.Int(index) }

// SetInt stores a raw code verbatim. Callers own its validity against the
// table.
func (a *Int) SetInt(index int, value int32) { a.codes.SetInt(index, value) }

func (a *Int) Int64(index int) int64 { panic(array.ErrWrongKind("Int64", array.KindCodedInt)) }

func (a *Int) SetInt64(index int, value int64) {
	panic(array.ErrWrongKind("SetInt64", array.KindCodedInt))
}

func (a *Int) Float64(index int) float64 {
	panic(array.ErrWrongKind("Float64", array.KindCodedInt))
}

func (a *Int) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindCodedInt))
}

func (a *Int) IsNull(index int) bool { return a.codes.Int(index) == a.table.NullCode() }

func (a *Int) IsEqualTo(index int, value interface{}) bool {
	c, err := a.table.CodeAny(value)
	if err != nil {
		return false
	}
	return a.codes.Int(index) == c
}

func (a *Int) Copy() array.Array { return a.view(a.codes.Copy()) }

func (a *Int) CopyRange(start, end int) array.Array { return a.view(a.codes.CopyRange(start, end)) }

func (a *Int) CopyIndexes(indexes []int) array.Array { return a.view(a.codes.CopyIndexes(indexes)) }

func (a *Int) Swap(i, j int) { a.codes.Swap(i, j) }

// Compare orders by raw code.
func (a *Int) Compare(i, j int) int { return a.codes.Compare(i, j) }

func (a *Int) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

// Filter evaluates the predicate against the coded view, so it sees decoded
// values, and keeps the underlying codes of the surviving slots.
func (a *Int) Filter(predicate array.Predicate) array.Array {
	var kept []int
	for i := 0; i < a.Length(); i++ {
		if predicate(a, i) {
			kept = append(kept, i)
		}
	}
	return a.view(a.codes.CopyIndexes(kept))
}

func (a *Int) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if src, ok := from.(*Int); ok && sameTable(src.table.Descriptor(), a.table.Descriptor()) {
		for k := range fromIndexes {
			a.codes.SetInt(toIndexes[k], src.codes.Int(fromIndexes[k]))
		}
		return
	}
	for k := range fromIndexes {
		a.codes.SetInt(toIndexes[k], a.code(from.Value(fromIndexes[k])))
	}
}

func (a *Int) UpdateRange(from array.Array, fromStart, toStart, count int) {
	array.CheckRange(fromStart, fromStart+count, from.Length())
	array.CheckRange(toStart, toStart+count, a.Length())
	if src, ok := from.(*Int); ok && sameTable(src.table.Descriptor(), a.table.Descriptor()) {
		for k := 0; k < count; k++ {
			a.codes.SetInt(toStart+k, src.codes.Int(fromStart+k))
		}
		return
	}
	for k := 0; k < count; k++ {
		a.codes.SetInt(toStart+k, a.code(from.Value(fromStart+k)))
	}
}

func (a *Int) Expand(newLength int) { a.codes.Expand(newLength) }

func (a *Int) Fill(value interface{}) { a.codes.Fill(a.code(value)) }

func (a *Int) FillRange(value interface{}, start, end int) {
	a.codes.FillRange(a.code(value), start, end)
}

// BinarySearch encodes the target once and searches the codes, so lookups
// never decode per probe. The range must be sorted in code order.
func (a *Int) BinarySearch(start, end int, value interface{}) int {
	return a.codes.BinarySearch(start, end, a.code(value))
}

func (a *Int) Distinct(limit int) array.Array { return a.view(a.codes.Distinct(limit)) }

func (a *Int) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindCodedInt)) }

// Read fills slots from a raw code stream.
func (a *Int) Read(r io.Reader, count int) error { return a.codes.Read(r, count) }

// Write streams raw codes.
func (a *Int) Write(w io.Writer, indexes []int) error { return a.codes.Write(w, indexes) }
