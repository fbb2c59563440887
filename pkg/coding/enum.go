package coding

import (
	"github.com/tabular-io/columnstore/pkg/errors"
)

// EnumCoding maps a closed, caller-declared set of string constants to their
// ordinal position. The set is fixed at construction; encoding a value
// outside it fails rather than growing the table.
type EnumCoding struct {
	values []string
	codes  map[string]int32
}

// NewEnumCoding builds an ordinal coding over the given constants, in order.
func NewEnumCoding(values ...string) (*EnumCoding, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrorTypeCoding, "enum coding needs at least one value")
	}
	codes := make(map[string]int32, len(values))
	for i, v := range values {
		if _, dup := codes[v]; dup {
			return nil, errors.Newf(errors.ErrorTypeCoding, "duplicate enum value %q", v)
		}
		codes[v] = int32(i)
	}
	return &EnumCoding{values: values, codes: codes}, nil
}

func (*EnumCoding) NullCode() int32 { return NullCodeInt }

func (c *EnumCoding) Code(value string) (int32, error) {
	code, ok := c.codes[value]
	if !ok {
		return NullCodeInt, errors.Newf(errors.ErrorTypeCoding, "value %q not in enum set", value)
	}
	return code, nil
}

func (c *EnumCoding) Value(code int32) (string, bool) {
	if code == NullCodeInt {
		return "", false
	}
	if code < 0 || int(code) >= len(c.values) {
		return "", false
	}
	return c.values[code], true
}

func (c *EnumCoding) CodeAny(value interface{}) (int32, error) {
	if value == nil {
		return NullCodeInt, nil
	}
	v, err := typedCode[string](value)
	if err != nil {
		return NullCodeInt, err
	}
	return c.Code(v)
}

func (c *EnumCoding) ValueAny(code int32) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (c *EnumCoding) Descriptor() Descriptor {
	return Descriptor{Kind: KindEnum, Values: c.values}
}
