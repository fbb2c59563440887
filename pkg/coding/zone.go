package coding

import (
	"math"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// NoZoneCode is the reserved int16 code meaning "no zone", paired with the
// null instant sentinel in zoned date-time storage.
const NoZoneCode int16 = -1

// Codes pinned at registry construction.
const (
	utcZoneCode  int16 = 0
	zuluZoneCode int16 = 1
)

// ZoneRegistry assigns a stable int16 code to every time zone name seen
// during a process run. "UTC" and "Z" are pinned to codes 0 and 1; further
// codes are handed out in interning order. Lookups are lock-free on the hot
// path; interning a new name takes a mutex.
type ZoneRegistry struct {
	mu     sync.Mutex
	byName *xsync.MapOf[string, int16]
	byCode *xsync.MapOf[int16, *time.Location]
	next   int16
}

// NewZoneRegistry builds a registry with the UTC and Zulu codes pinned.
func NewZoneRegistry() *ZoneRegistry {
	r := &ZoneRegistry{
		byName: xsync.NewMapOf[string, int16](),
		byCode: xsync.NewMapOf[int16, *time.Location](),
	}
	r.byName.Store("UTC", utcZoneCode)
	r.byCode.Store(utcZoneCode, time.UTC)
	r.byName.Store("Z", zuluZoneCode)
	r.byCode.Store(zuluZoneCode, time.UTC)
	r.next = 2
	return r
}

// Zones is the process-wide registry shared by every zoned array.
var Zones = NewZoneRegistry()

// Intern returns the code for a zone name, assigning a new one on first
// sight. It fails if the name does not resolve against the platform zone
// database or the registry is full.
func (r *ZoneRegistry) Intern(name string) (int16, error) {
	if name == "" {
		return NoZoneCode, errors.New(errors.ErrorTypeCoding, "empty zone name")
	}
	if code, ok := r.byName.Load(name); ok {
		return code, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return NoZoneCode, errors.Wrap(err, errors.ErrorTypeCoding, "unknown zone "+name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if code, ok := r.byName.Load(name); ok {
		return code, nil
	}
	if r.next == math.MaxInt16 {
		return NoZoneCode, errors.New(errors.ErrorTypeCoding, "zone registry full")
	}
	code := r.next
	r.next++
	r.byCode.Store(code, loc)
	r.byName.Store(name, code)
	return code, nil
}

// InternLocation interns a location by its name.
func (r *ZoneRegistry) InternLocation(loc *time.Location) (int16, error) {
	if loc == nil {
		return NoZoneCode, errors.New(errors.ErrorTypeCoding, "nil location")
	}
	if loc == time.UTC {
		return utcZoneCode, nil
	}
	return r.Intern(loc.String())
}

// Location resolves a code back to its location. false for NoZoneCode or a
// code the registry never assigned.
func (r *ZoneRegistry) Location(code int16) (*time.Location, bool) {
	if code == NoZoneCode {
		return nil, false
	}
	return r.byCode.Load(code)
}

// Table returns the zone names in code order, for snapshot persistence.
func (r *ZoneRegistry) Table() []string {
	r.mu.Lock()
	n := int(r.next)
	r.mu.Unlock()

	names := make([]string, n)
	for code := 0; code < n; code++ {
		if loc, ok := r.byCode.Load(int16(code)); ok {
			names[code] = loc.String()
		}
	}
	names[utcZoneCode] = "UTC"
	names[zuluZoneCode] = "Z"
	return names
}

// ZoneCoding maps a *time.Location to the registry's int16 code, widened to
// int32 for int-coded storage.
type ZoneCoding struct {
	registry *ZoneRegistry
}

// NewZoneCoding returns a coding over the process-wide registry.
func NewZoneCoding() ZoneCoding { return ZoneCoding{registry: Zones} }

// RestoreZoneCoding rebuilds a coding whose code assignment matches the
// persisted table exactly.
func RestoreZoneCoding(table []string) (ZoneCoding, error) {
	r := NewZoneRegistry()
	for code, name := range table {
		if code < 2 {
			continue // pinned
		}
		assigned, err := r.Intern(name)
		if err != nil {
			return ZoneCoding{}, err
		}
		if int(assigned) != code {
			return ZoneCoding{}, errors.Newf(errors.ErrorTypeData,
				"zone table out of order: %q restored as %d, expected %d", name, assigned, code)
		}
	}
	return ZoneCoding{registry: r}, nil
}

// Registry exposes the backing registry, shared with zoned date-time arrays.
func (c ZoneCoding) Registry() *ZoneRegistry { return c.registry }

func (ZoneCoding) NullCode() int32 { return NullCodeInt }

func (c ZoneCoding) Code(loc *time.Location) (int32, error) {
	code, err := c.registry.InternLocation(loc)
	if err != nil {
		return NullCodeInt, err
	}
	return int32(code), nil
}

func (c ZoneCoding) Value(code int32) (*time.Location, bool) {
	if code == NullCodeInt {
		return nil, false
	}
	return c.registry.Location(int16(code))
}

func (c ZoneCoding) CodeAny(value interface{}) (int32, error) {
	if value == nil {
		return NullCodeInt, nil
	}
	v, err := typedCode[*time.Location](value)
	if err != nil {
		return NullCodeInt, err
	}
	return c.Code(v)
}

func (c ZoneCoding) ValueAny(code int32) interface{} {
	v, ok := c.Value(code)
	if !ok {
		return nil
	}
	return v
}

func (c ZoneCoding) Descriptor() Descriptor {
	return Descriptor{Kind: KindZone, Values: c.registry.Table()}
}
