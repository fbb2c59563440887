// Package coding provides bidirectional mappings between rich domain values
// and compact integer codes, used by coded arrays to store enum, currency,
// zone and temporal columns as plain int32/int64 payloads.
//
// Every table reserves one code for "no value": NullCodeInt for int32-coded
// tables and NullCodeLong for int64-coded ones. For any non-null representable
// value x the round-trip invariant Value(Code(x)) == x holds.
//
// Tables are stateless apart from registry lookups built once per process and
// safe for concurrent readers. Codes assigned by interning registries (zones)
// are stable within a process run only; snapshots embed the registry table so
// restores never depend on cross-run code stability.
package coding

import (
	"math"

	"github.com/tabular-io/columnstore/pkg/errors"
)

const (
	// NullCodeInt is the reserved "no value" code for int32-coded tables.
	NullCodeInt int32 = math.MinInt32
	// NullCodeLong is the reserved "no value" code for int64-coded tables.
	NullCodeLong int64 = math.MinInt64
)

// Descriptor identifies a coding table in a persisted snapshot. Tables whose
// codes are assigned by interning (zones, enums) carry their value table so a
// restore reproduces the exact code assignment of the writing process.
type Descriptor struct {
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
}

// Descriptor kind names.
const (
	KindYear          = "year"
	KindCurrency      = "currency"
	KindZone          = "zone"
	KindEnum          = "enum"
	KindLocalDate     = "local-date"
	KindLocalTime     = "local-time"
	KindLocalDateTime = "local-date-time"
	KindInstant       = "instant"
)

// IntTable is the untyped face of an int32 coding table, used by coded
// arrays whose element type is only known at runtime.
type IntTable interface {
	// NullCode returns the reserved code for "no value".
	NullCode() int32
	// CodeAny encodes a boxed value; nil encodes to NullCode.
	CodeAny(value interface{}) (int32, error)
	// ValueAny decodes a code; NullCode decodes to nil.
	ValueAny(code int32) interface{}
	// Descriptor identifies the table for snapshot persistence.
	Descriptor() Descriptor
}

// LongTable is the untyped face of an int64 coding table.
type LongTable interface {
	NullCode() int64
	CodeAny(value interface{}) (int64, error)
	ValueAny(code int64) interface{}
	Descriptor() Descriptor
}

// Int is a typed int32 coding table over T.
type Int[T any] interface {
	IntTable
	// Code encodes a value. It fails only for values outside the table's
	// representable universe.
	Code(value T) (int32, error)
	// Value decodes a code. The second return is false for NullCode.
	Value(code int32) (T, bool)
}

// Long is a typed int64 coding table over T.
type Long[T any] interface {
	LongTable
	Code(value T) (int64, error)
	Value(code int64) (T, bool)
}

// IntFromDescriptor rebuilds an int32 coding table from a snapshot
// descriptor.
func IntFromDescriptor(d Descriptor) (IntTable, error) {
	switch d.Kind {
	case KindYear:
		return YearCoding{}, nil
	case KindCurrency:
		return CurrencyCoding{}, nil
	case KindZone:
		return RestoreZoneCoding(d.Values)
	case KindEnum:
		return NewEnumCoding(d.Values...)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported, "unknown int coding kind %q", d.Kind)
	}
}

// LongFromDescriptor rebuilds an int64 coding table from a snapshot
// descriptor.
func LongFromDescriptor(d Descriptor) (LongTable, error) {
	switch d.Kind {
	case KindLocalDate:
		return LocalDateCoding{}, nil
	case KindLocalTime:
		return LocalTimeCoding{}, nil
	case KindLocalDateTime:
		return LocalDateTimeCoding{}, nil
	case KindInstant:
		return InstantCoding{}, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported, "unknown long coding kind %q", d.Kind)
	}
}

// typedCode asserts a boxed value to T for the CodeAny implementations.
func typedCode[T any](value interface{}) (T, error) {
	v, ok := value.(T)
	if !ok {
		var zero T
		return zero, errors.IncompatibleType(zero, value)
	}
	return v, nil
}
