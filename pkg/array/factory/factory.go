// Package factory builds arrays from a logical element type and a storage
// mode, hiding which backend family and coding table serve each combination.
// Rich types (currency, year, zone, the temporal types, enums) come back as
// coded arrays over integer code storage in the requested mode.
package factory

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/coded"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/array/mapped"
	"github.com/tabular-io/columnstore/pkg/array/sparse"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/config"
	"github.com/tabular-io/columnstore/pkg/errors"
	"github.com/tabular-io/columnstore/pkg/logger"
)

// Type is the logical element type of a column.
type Type string

const (
	Bool          Type = "bool"
	Int           Type = "int"
	Int64         Type = "int64"
	Float64       Type = "float64"
	String        Type = "string"
	Object        Type = "object"
	Currency      Type = "currency"
	Year          Type = "year"
	Zone          Type = "zone"
	LocalDate     Type = "local-date"
	LocalTime     Type = "local-time"
	LocalDateTime Type = "local-date-time"
	Instant       Type = "instant"
	Zoned         Type = "zoned-date-time"
	Enum          Type = "enum"
)

// Mode selects the backing storage family.
type Mode string

const (
	// Dense materializes one heap slot per index.
	Dense Mode = "dense"
	// Mapped stores slots in a memory-mapped temporary file.
	Mapped Mode = "mapped"
	// Sparse materializes only non-default slots in a hash map.
	Sparse Mode = "sparse"
)

type options struct {
	mode       Mode
	cfg        *config.StorageConfig
	enumValues []string
	elemType   reflect.Type
}

// Option adjusts array construction.
type Option func(*options)

// WithMode selects the storage family; the default is Dense.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithConfig supplies the storage configuration used by mapped arrays.
func WithConfig(cfg *config.StorageConfig) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithEnumValues declares the closed value set of an Enum column.
func WithEnumValues(values ...string) Option {
	return func(o *options) { o.enumValues = values }
}

// WithElemType locks an Object column to one element type.
func WithElemType(t reflect.Type) Option {
	return func(o *options) { o.elemType = t }
}

// New builds an array of the given logical type with every slot set to def.
// A nil def means the type's natural default: false, zero, the empty string,
// or null for nullable types.
func New(t Type, length int, def interface{}, opts ...Option) (array.Array, error) {
	o := options{mode: Dense}
	for _, opt := range opts {
		opt(&o)
	}
	switch o.mode {
	case Dense, Mapped, Sparse:
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported, "unknown storage mode %q", o.mode)
	}

	a, err := build(t, length, def, o)
	if err != nil {
		return nil, err
	}
	logger.Debug("array created",
		zap.String("type", string(t)),
		zap.String("mode", string(o.mode)),
		zap.Int("length", length))
	return a, nil
}

func build(t Type, length int, def interface{}, o options) (array.Array, error) {
	switch t {
	case Bool:
		if def == nil {
			def = false
		}
		if o.mode == Mapped {
			return liftErr(mapped.NewBool(o.cfg, length, dense.AsBool(def)))
		}
		// a hash-backed boolean saves nothing over a slice of them
		return guard(func() array.Array { return dense.NewBool(length, dense.AsBool(def)) })
	case Int:
		if def == nil {
			def = int32(0)
		}
		return primitive(o,
			func() array.Array { return dense.NewInt(length, dense.AsInt32(def)) },
			func() array.Array { return sparse.NewInt(length, dense.AsInt32(def)) },
			func() (array.Array, error) { return liftErr(mapped.NewInt(o.cfg, length, dense.AsInt32(def))) })
	case Int64:
		if def == nil {
			def = int64(0)
		}
		return primitive(o,
			func() array.Array { return dense.NewInt64(length, dense.AsInt64(def)) },
			func() array.Array { return sparse.NewInt64(length, dense.AsInt64(def)) },
			func() (array.Array, error) { return liftErr(mapped.NewInt64(o.cfg, length, dense.AsInt64(def))) })
	case Float64:
		return primitive(o,
			func() array.Array { return dense.NewFloat64(length, dense.AsFloat64(def)) },
			func() array.Array { return sparse.NewFloat64(length, dense.AsFloat64(def)) },
			func() (array.Array, error) { return liftErr(mapped.NewFloat64(o.cfg, length, dense.AsFloat64(def))) })
	case String:
		if def == nil {
			def = ""
		}
		if o.mode == Mapped {
			return nil, errors.Newf(errors.ErrorTypeUnsupported,
				"mapped storage needs fixed-stride slots; %s does not have them", t)
		}
		return primitive(o,
			func() array.Array { return dense.NewString(length, dense.AsString(def)) },
			func() array.Array { return sparse.NewString(length, dense.AsString(def)) },
			nil)
	case Object:
		if o.mode == Mapped {
			return nil, errors.Newf(errors.ErrorTypeUnsupported,
				"mapped storage needs fixed-stride slots; %s does not have them", t)
		}
		return primitive(o,
			func() array.Array { return dense.NewObject(length, def, o.elemType) },
			func() array.Array { return sparse.NewObject(length, def, o.elemType) },
			nil)
	case Zoned:
		return primitive(o,
			func() array.Array { return dense.NewZoned(length, def) },
			func() array.Array { return sparse.NewZoned(length, def) },
			func() (array.Array, error) { return liftErr(mapped.NewZoned(o.cfg, length, def)) })
	case Currency:
		return codedInt(o, length, def, coding.CurrencyCoding{})
	case Year:
		return codedInt(o, length, def, coding.YearCoding{})
	case Zone:
		return codedInt(o, length, def, coding.NewZoneCoding())
	case Enum:
		table, err := coding.NewEnumCoding(o.enumValues...)
		if err != nil {
			return nil, err
		}
		return codedInt(o, length, def, table)
	case LocalDate:
		return codedLong(o, length, def, coding.LocalDateCoding{})
	case LocalTime:
		return codedLong(o, length, def, coding.LocalTimeCoding{})
	case LocalDateTime:
		return codedLong(o, length, def, coding.LocalDateTimeCoding{})
	case Instant:
		return codedLong(o, length, def, coding.InstantCoding{})
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported, "unknown array type %q", t)
	}
}

func primitive(o options,
	buildDense func() array.Array,
	buildSparse func() array.Array,
	buildMapped func() (array.Array, error)) (array.Array, error) {

	switch o.mode {
	case Sparse:
		return guard(buildSparse)
	case Mapped:
		return buildMapped()
	default:
		return guard(buildDense)
	}
}

func codedInt(o options, length int, def interface{}, table coding.IntTable) (array.Array, error) {
	defCode, err := table.CodeAny(def)
	if err != nil {
		return nil, err
	}
	codes, err := primitive(o,
		func() array.Array { return dense.NewInt(length, defCode) },
		func() array.Array { return sparse.NewInt(length, defCode) },
		func() (array.Array, error) { return liftErr(mapped.NewInt(o.cfg, length, defCode)) })
	if err != nil {
		return nil, err
	}
	return liftErr(coded.NewInt(codes, table))
}

func codedLong(o options, length int, def interface{}, table coding.LongTable) (array.Array, error) {
	defCode, err := table.CodeAny(def)
	if err != nil {
		return nil, err
	}
	codes, err := primitive(o,
		func() array.Array { return dense.NewInt64(length, defCode) },
		func() array.Array { return sparse.NewInt64(length, defCode) },
		func() (array.Array, error) { return liftErr(mapped.NewInt64(o.cfg, length, defCode)) })
	if err != nil {
		return nil, err
	}
	return liftErr(coded.NewInt64(codes, table))
}

// liftErr widens a concrete constructor result to the Array interface without
// wrapping a typed nil on failure.
func liftErr[T array.Array](a T, err error) (array.Array, error) {
	if err != nil {
		return nil, err
	}
	return a, nil
}

// guard converts the panic of a constructor fed a malformed default into the
// error return the factory contract promises.
func guard(build func() array.Array) (a array.Array, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	return build(), nil
}
