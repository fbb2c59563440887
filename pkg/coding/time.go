package coding

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	secondsPerDay = 86_400
	nanosPerMilli = int64(time.Millisecond)
)

// YearCoding maps a calendar year to itself as an int32 code.
type YearCoding struct{}

func (YearCoding) NullCode() int32 { return NullCodeInt }

func (YearCoding) Code(year int) (int32, error) { return int32(year), nil }

func (YearCoding) Value(code int32) (int, bool) {
	if code == NullCodeInt {
		return 0, false
	}
	return int(code), true
}

func (c YearCoding) CodeAny(value interface{}) (int32, error) {
	if value == nil {
		return NullCodeInt, nil
	}
	v, err := typedCode[int](value)
	if err != nil {
		return NullCodeInt, err
	}
	return c.Code(v)
}

func (c YearCoding) ValueAny(code int32) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (YearCoding) Descriptor() Descriptor { return Descriptor{Kind: KindYear} }

// LocalDateCoding maps a civil date to the number of days since the Unix
// epoch.
type LocalDateCoding struct{}

func (LocalDateCoding) NullCode() int64 { return NullCodeLong }

func (LocalDateCoding) Code(d civil.Date) (int64, error) {
	// Midnight UTC is always an exact multiple of a day.
	return d.In(time.UTC).Unix() / secondsPerDay, nil
}

func (LocalDateCoding) Value(code int64) (civil.Date, bool) {
	if code == NullCodeLong {
		return civil.Date{}, false
	}
	return civil.DateOf(time.Unix(code*secondsPerDay, 0).UTC()), true
}

func (c LocalDateCoding) CodeAny(value interface{}) (int64, error) {
	if value == nil {
		return NullCodeLong, nil
	}
	v, err := typedCode[civil.Date](value)
	if err != nil {
		return NullCodeLong, err
	}
	return c.Code(v)
}

func (c LocalDateCoding) ValueAny(code int64) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (LocalDateCoding) Descriptor() Descriptor { return Descriptor{Kind: KindLocalDate} }

// LocalTimeCoding maps a civil time of day to nanoseconds since midnight.
type LocalTimeCoding struct{}

func (LocalTimeCoding) NullCode() int64 { return NullCodeLong }

func (LocalTimeCoding) Code(t civil.Time) (int64, error) {
	seconds := int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)
	return seconds*int64(time.Second) + int64(t.Nanosecond), nil
}

func (LocalTimeCoding) Value(code int64) (civil.Time, bool) {
	if code == NullCodeLong {
		return civil.Time{}, false
	}
	nanos := int(code % int64(time.Second))
	seconds := int(code / int64(time.Second))
	return civil.Time{
		Hour:       seconds / 3600,
		Minute:     (seconds / 60) % 60,
		Second:     seconds % 60,
		Nanosecond: nanos,
	}, true
}

func (c LocalTimeCoding) CodeAny(value interface{}) (int64, error) {
	if value == nil {
		return NullCodeLong, nil
	}
	v, err := typedCode[civil.Time](value)
	if err != nil {
		return NullCodeLong, err
	}
	return c.Code(v)
}

func (c LocalTimeCoding) ValueAny(code int64) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (LocalTimeCoding) Descriptor() Descriptor { return Descriptor{Kind: KindLocalTime} }

// LocalDateTimeCoding maps a civil date-time to milliseconds since the Unix
// epoch, interpreted in UTC. Sub-millisecond precision is not representable;
// values carrying finer nanoseconds are truncated to the millisecond.
type LocalDateTimeCoding struct{}

func (LocalDateTimeCoding) NullCode() int64 { return NullCodeLong }

func (LocalDateTimeCoding) Code(dt civil.DateTime) (int64, error) {
	return dt.In(time.UTC).UnixMilli(), nil
}

func (LocalDateTimeCoding) Value(code int64) (civil.DateTime, bool) {
	if code == NullCodeLong {
		return civil.DateTime{}, false
	}
	return civil.DateTimeOf(time.UnixMilli(code).UTC()), true
}

func (c LocalDateTimeCoding) CodeAny(value interface{}) (int64, error) {
	if value == nil {
		return NullCodeLong, nil
	}
	v, err := typedCode[civil.DateTime](value)
	if err != nil {
		return NullCodeLong, err
	}
	return c.Code(v)
}

func (c LocalDateTimeCoding) ValueAny(code int64) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (LocalDateTimeCoding) Descriptor() Descriptor { return Descriptor{Kind: KindLocalDateTime} }

// InstantCoding maps a time instant to milliseconds since the Unix epoch.
// Decoded instants are normalized to UTC; sub-millisecond precision is
// truncated.
type InstantCoding struct{}

func (InstantCoding) NullCode() int64 { return NullCodeLong }

func (InstantCoding) Code(t time.Time) (int64, error) { return t.UnixMilli(), nil }

func (InstantCoding) Value(code int64) (time.Time, bool) {
	if code == NullCodeLong {
		return time.Time{}, false
	}
	return time.UnixMilli(code).UTC(), true
}

func (c InstantCoding) CodeAny(value interface{}) (int64, error) {
	if value == nil {
		return NullCodeLong, nil
	}
	v, err := typedCode[time.Time](value)
	if err != nil {
		return NullCodeLong, err
	}
	return c.Code(v)
}

func (c InstantCoding) ValueAny(code int64) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (InstantCoding) Descriptor() Descriptor { return Descriptor{Kind: KindInstant} }
