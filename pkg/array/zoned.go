package array

import (
	"time"

	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// NullMillis is the int64 sentinel storing "no instant" in zoned
// date-time slots. It pairs with the registry's no-zone code.
const NullMillis = int64(-1 << 63)

// ZonedAccess is the unboxed fast path shared by the zoned date-time
// backends: raw access to the (epoch-millis, zone-code) pair of a slot.
// Cross-backend copies and reductions use it to avoid decoding a location
// per element.
type ZonedAccess interface {
	// ZonedAt returns the stored pair without decoding the zone.
	ZonedAt(index int) (millis int64, zone int16)
	// SetZonedAt stores a pair verbatim.
	SetZonedAt(index int, millis int64, zone int16)
}

// EncodeZoned converts a boxed zoned value into its stored pair. nil maps to
// the null pair; anything else must be a time.Time whose location interns
// into the registry.
func EncodeZoned(registry *coding.ZoneRegistry, value interface{}) (int64, int16) {
	if value == nil {
		return NullMillis, coding.NoZoneCode
	}
	t, ok := value.(time.Time)
	if !ok {
		panic(errors.IncompatibleType(time.Time{}, value))
	}
	zone, err := registry.InternLocation(t.Location())
	if err != nil {
		panic(err)
	}
	return t.UnixMilli(), zone
}

// DecodeZoned converts a stored pair back to a boxed time.Time, or nil for
// the null sentinel. An unknown zone code falls back to UTC rather than
// failing a read.
func DecodeZoned(registry *coding.ZoneRegistry, millis int64, zone int16) interface{} {
	if millis == NullMillis {
		return nil
	}
	loc, ok := registry.Location(zone)
	if !ok {
		loc = time.UTC
	}
	return time.UnixMilli(millis).In(loc)
}
