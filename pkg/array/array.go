// Package array defines the uniform value-access contract shared by every
// storage backend in the columnstore engine.
//
// An Array is a fixed-length but growable, randomly addressable sequence of
// homogeneous values with a single default value filling untouched slots.
// Three interchangeable backend families implement the contract: dense
// in-process slices, memory-mapped file windows, and sparse hash-backed
// storage that records only non-default entries. Callers never branch on the
// backend; everything flows through this interface.
//
// Two access modes exist. Value/SetValue box through interface{} and work for
// every element type. The typed fast paths (Bool/Int/Int64/Float64 and their
// setters) bypass boxing and panic with a structured error when the array's
// underlying representation is not the corresponding primitive kind, except
// where widening is well-defined: an int32-backed array serves Int64 and
// Float64 by widening.
//
// Bounds violations and type mismatches on the indexed hot paths panic with a
// *errors.Error; constructors and streaming I/O return errors.
package array

import (
	"io"
)

// Kind identifies an array's physical representation. Reductions dispatch on
// it to pick a type-specialized inner loop.
type Kind int

const (
	// KindBool is primitive boolean storage.
	KindBool Kind = iota
	// KindInt is primitive int32 storage.
	KindInt
	// KindInt64 is primitive int64 storage.
	KindInt64
	// KindFloat64 is primitive float64 storage.
	KindFloat64
	// KindString is string storage.
	KindString
	// KindObject is generic boxed storage.
	KindObject
	// KindCodedInt is int32 storage translated through a coding table.
	KindCodedInt
	// KindCodedInt64 is int64 storage translated through a coding table.
	KindCodedInt64
	// KindZoned is paired epoch-millis plus zone-code storage.
	KindZoned
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindCodedInt:
		return "coded-int"
	case KindCodedInt64:
		return "coded-int64"
	case KindZoned:
		return "zoned"
	}
	return "unknown"
}

// Predicate selects elements by index. Implementations use the array's typed
// fast paths to inspect the element without boxing.
type Predicate func(a Array, index int) bool

// Array is the uniform value-access contract implemented by every backend.
type Array interface {
	io.Closer

	// Length returns the number of addressable slots.
	Length() int

	// Kind returns the physical representation.
	Kind() Kind

	// DefaultValue returns the boxed value filling untouched slots.
	DefaultValue() interface{}

	// LoadFactor returns the fraction of slots holding a non-default
	// value. Always 1 for dense and mapped backends.
	LoadFactor() float64

	// Parallel returns a view of the same backing storage flagged for
	// parallel consumption. Mutations through either view are visible
	// through the other.
	Parallel() Array

	// Sequential returns a view flagged for sequential consumption,
	// aliasing the same backing storage.
	Sequential() Array

	// IsParallel reports which way the view is flagged.
	IsParallel() bool

	// Value returns the boxed element at index; nil when the slot is
	// null.
	Value(index int) interface{}

	// SetValue stores a boxed element at index. nil stores the null
	// representation where the kind has one.
	SetValue(index int, value interface{})

	// Bool is the unboxed fast path for KindBool.
	Bool(index int) bool
	// SetBool stores through the KindBool fast path.
	SetBool(index int, value bool)
	// Int is the unboxed fast path for KindInt and coded-int kinds,
	// where it returns the stored code.
	Int(index int) int32
	// SetInt stores through the int32 fast path.
	SetInt(index int, value int32)
	// Int64 is the unboxed fast path for KindInt64 and coded-int64
	// kinds; int32-backed arrays serve it by widening.
	Int64(index int) int64
	// SetInt64 stores through the int64 fast path.
	SetInt64(index int, value int64)
	// Float64 is the unboxed fast path for KindFloat64; integer-backed
	// arrays serve it by widening.
	Float64(index int) float64
	// SetFloat64 stores through the float64 fast path.
	SetFloat64(index int, value float64)

	// IsNull reports whether the slot holds the kind's null
	// representation. Always false for bool and plain integer kinds.
	IsNull(index int) bool

	// IsEqualTo reports whether the slot equals the boxed value, using
	// code comparison for coded kinds.
	IsEqualTo(index int, value interface{}) bool

	// Copy returns an independent deep copy with a decoupled backing
	// store.
	Copy() Array

	// CopyRange returns a copy of the contiguous half-open range
	// [start, end).
	CopyRange(start, end int) Array

	// CopyIndexes gathers the given indexes, in order, into a new array
	// of that length.
	CopyIndexes(indexes []int) Array

	// Swap exchanges two slots.
	Swap(i, j int)

	// Compare orders two slots consistently with the natural ordering of
	// the element type; nulls sort before non-nulls.
	Compare(i, j int) int

	// Sort sorts [start, end) in place. multiplier is +1 for ascending
	// and -1 for descending.
	Sort(start, end int, multiplier int)

	// Filter returns a new array holding only the matching elements,
	// original relative order preserved.
	Filter(predicate Predicate) Array

	// Update scatter-copies elements from the source array:
	// to[toIndexes[k]] = from[fromIndexes[k]]. Index slices must have
	// equal length; everything is validated before any mutation.
	Update(from Array, fromIndexes, toIndexes []int)

	// UpdateRange copies a contiguous block of count elements from the
	// source starting at fromStart into this array at toStart.
	UpdateRange(from Array, fromStart, toStart, count int)

	// Expand grows the array to newLength, filling newly exposed slots
	// with the default value. A no-op when newLength <= Length().
	Expand(newLength int)

	// Fill sets every slot to the boxed value.
	Fill(value interface{})

	// FillRange sets [start, end) to the boxed value.
	FillRange(value interface{}, start, end int)

	// BinarySearch looks for the boxed value in [start, end), which must
	// be sorted ascending. Returns the index of a match, or the negative
	// insertion point -(low+1).
	BinarySearch(start, end int, value interface{}) int

	// Distinct returns the first-occurrence-ordered distinct values, up
	// to limit when limit > 0.
	Distinct(limit int) Array

	// CumSum returns the running sum as a new array. Floating point
	// treats NaN as absorbed: a NaN slot does not poison later sums.
	CumSum() Array

	// Read fills the first count slots from the stream's fixed-stride
	// raw representation.
	Read(r io.Reader, count int) error

	// Write streams the raw representation of the given indexes.
	Write(w io.Writer, indexes []int) error
}
