package coding

import (
	"golang.org/x/text/currency"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// CurrencyCoding maps an ISO 4217 currency unit to an int32 code by packing
// the three-letter alphabetic code into the low 24 bits. Codes are therefore
// stable across processes and platform database versions, unlike interned
// registries.
type CurrencyCoding struct{}

func (CurrencyCoding) NullCode() int32 { return NullCodeInt }

func (CurrencyCoding) Code(unit currency.Unit) (int32, error) {
	iso := unit.String()
	if len(iso) != 3 {
		return NullCodeInt, errors.Newf(errors.ErrorTypeCoding, "invalid currency unit %q", iso)
	}
	return int32(iso[0])<<16 | int32(iso[1])<<8 | int32(iso[2]), nil
}

func (CurrencyCoding) Value(code int32) (currency.Unit, bool) {
	if code == NullCodeInt {
		return currency.Unit{}, false
	}
	iso := string([]byte{byte(code >> 16), byte(code >> 8), byte(code)})
	unit, err := currency.ParseISO(iso)
	if err != nil {
		// A code produced by Code always parses; anything else is a
		// corrupted payload and decodes as null.
		return currency.Unit{}, false
	}
	return unit, true
}

func (c CurrencyCoding) CodeAny(value interface{}) (int32, error) {
	if value == nil {
		return NullCodeInt, nil
	}
	v, err := typedCode[currency.Unit](value)
	if err != nil {
		return NullCodeInt, err
	}
	return c.Code(v)
}

func (c CurrencyCoding) ValueAny(code int32) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (CurrencyCoding) Descriptor() Descriptor { return Descriptor{Kind: KindCurrency} }
