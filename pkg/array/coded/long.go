package coded

import (
	"io"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// Int64 is an array of table-coded values over int64 code storage, used by
// the temporal codings whose code space exceeds int32.
type Int64 struct {
	codes   array.Array
	table   coding.LongTable
	defCode int64
}

// NewInt64 wraps an int64-kinded backing array with a coding table. The
// backing array's default value is taken as the default code.
func NewInt64(codes array.Array, table coding.LongTable) (*Int64, error) {
	if codes.Kind() != array.KindInt64 {
		return nil, errors.Newf(errors.ErrorTypeIncompatibleType,
			"coded int64 array needs int64 code storage, got %s", codes.Kind())
	}
	return &Int64{codes: codes, table: table, defCode: dense.AsInt64(codes.DefaultValue())}, nil
}

func (a *Int64) view(codes array.Array) *Int64 {
	return &Int64{codes: codes, table: a.table, defCode: a.defCode}
}

// Table returns the coding table translating this array's codes.
func (a *Int64) Table() coding.LongTable { return a.table }

// Codes returns the backing code array.
func (a *Int64) Codes() array.Array { return a.codes }

func (a *Int64) code(value interface{}) int64 {
	c, err := a.table.CodeAny(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (a *Int64) Close() error { return a.codes.Close() }

func (a *Int64) Length() int { return a.codes.Length() }

func (a *Int64) Kind() array.Kind { return array.KindCodedInt64 }

func (a *Int64) DefaultValue() interface{} { return a.table.ValueAny(a.defCode) }

func (a *Int64) LoadFactor() float64 { return a.codes.LoadFactor() }

func (a *Int64) Parallel() array.Array { return a.view(a.codes.Parallel()) }

func (a *Int64) Sequential() array.Array { return a.view(a.codes.Sequential()) }

func (a *Int64) IsParallel() bool { return a.codes.IsParallel() }

func (a *Int64) Value(index int) interface{} { return a.table.ValueAny(a.codes.Int64(index)) }

func (a *Int64) SetValue(index int, value interface{}) { a.codes.SetInt64(index, a.code(value)) }

func (a *Int64) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindCodedInt64)) }

func (a *Int64) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindCodedInt64))
}

func (a *Int64) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindCodedInt64)) }

func (a *Int64) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindCodedInt64))
}

// Int64 returns the raw code of a slot, not a numeric value.
func (a *Int64) Int64(index int) int64 { return a.codes.Int64(index) }

// SetInt64 stores a raw code verbatim. Callers own its validity against the
// table.
func (a *Int64) SetInt64(index int, value int64) { a.codes.SetInt64(index, value) }

func (a *Int64) Float64(index int) float64 {
	panic(array.ErrWrongKind("Float64", array.KindCodedInt64))
}

func (a *Int64) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindCodedInt64))
}

func (a *Int64) IsNull(index int) bool { return a.codes.Int64(index) == a.table.NullCode() }

func (a *Int64) IsEqualTo(index int, value interface{}) bool {
	c, err := a.table.CodeAny(value)
	if err != nil {
		return false
	}
	return a.codes.Int64(index) == c
}

func (a *Int64) Copy() array.Array { return a.view(a.codes.Copy()) }

func (a *Int64) CopyRange(start, end int) array.Array { return a.view(a.codes.CopyRange(start, end)) }

func (a *Int64) CopyIndexes(indexes []int) array.Array { return a.view(a.codes.CopyIndexes(indexes)) }

func (a *Int64) Swap(i, j int) { a.codes.Swap(i, j) }

// Compare orders by raw code.
func (a *Int64) Compare(i, j int) int { return a.codes.Compare(i, j) }

func (a *Int64) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

// Filter evaluates the predicate against the coded view, so it sees decoded
// values, and keeps the underlying codes of the surviving slots.
func (a *Int64) Filter(predicate array.Predicate) array.Array {
	var kept []int
	for i := 0; i < a.Length(); i++ {
		if predicate(a, i) {
			kept = append(kept, i)
		}
	}
	return a.view(a.codes.CopyIndexes(kept))
}

func (a *Int64) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if src, ok := from.(*Int64); ok && sameTable(src.table.Descriptor(), a.table.Descriptor()) {
		for k := range fromIndexes {
			a.codes.SetInt64(toIndexes[k], src.codes.Int64(fromIndexes[k]))
		}
		return
	}
	for k := range fromIndexes {
		a.codes.SetInt64(toIndexes[k], a.code(from.Value(fromIndexes[k])))
	}
}

func (a *Int64) UpdateRange(from array.Array, fromStart, toStart, count int) {
	array.CheckRange(fromStart, fromStart+count, from.Length())
	array.CheckRange(toStart, toStart+count, a.Length())
	if src, ok := from.(*Int64); ok && sameTable(src.table.Descriptor(), a.table.Descriptor()) {
		for k := 0; k < count; k++ {
			a.codes.SetInt64(toStart+k, src.codes.Int64(fromStart+k))
		}
		return
	}
	for k := 0; k < count; k++ {
		a.codes.SetInt64(toStart+k, a.code(from.Value(fromStart+k)))
	}
}

func (a *Int64) Expand(newLength int) { a.codes.Expand(newLength) }

func (a *Int64) Fill(value interface{}) { a.codes.Fill(a.code(value)) }

func (a *Int64) FillRange(value interface{}, start, end int) {
	a.codes.FillRange(a.code(value), start, end)
}

// BinarySearch encodes the target once and searches the codes. The range
// must be sorted in code order.
func (a *Int64) BinarySearch(start, end int, value interface{}) int {
	return a.codes.BinarySearch(start, end, a.code(value))
}

func (a *Int64) Distinct(limit int) array.Array { return a.view(a.codes.Distinct(limit)) }

func (a *Int64) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindCodedInt64)) }

// Read fills slots from a raw code stream.
func (a *Int64) Read(r io.Reader, count int) error { return a.codes.Read(r, count) }

// Write streams raw codes.
func (a *Int64) Write(w io.Writer, indexes []int) error { return a.codes.Write(w, indexes) }
