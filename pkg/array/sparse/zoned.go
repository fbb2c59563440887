package sparse

import (
	"io"
	"time"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// zonedEntry packs the (instant, zone) pair stored per occupied slot.
type zonedEntry struct {
	millis int64
	zone   int16
}

// sameZoned treats every null as the same value regardless of the residual
// zone code, so storing any null over a null default elides the entry.
func sameZoned(a, b zonedEntry) bool {
	if a.millis == array.NullMillis && b.millis == array.NullMillis {
		return true
	}
	return a == b
}

// Zoned is the hash-backed zoned date-time array.
type Zoned struct {
	hashColumn[zonedEntry]
	registry *coding.ZoneRegistry
}

// NewZoned creates a sparse zoned date-time array. def is either nil or a
// time.Time whose location resolves against the zone registry.
func NewZoned(length int, def interface{}) *Zoned {
	registry := coding.Zones
	return &Zoned{
		hashColumn: newHashColumn(length, encodeZonedBoxed(registry, def), sameZoned),
		registry:   registry,
	}
}

func encodeZonedBoxed(registry *coding.ZoneRegistry, value interface{}) zonedEntry {
	millis, zone := array.EncodeZoned(registry, value)
	return zonedEntry{millis: millis, zone: zone}
}

func (a *Zoned) decode(e zonedEntry) interface{} {
	return array.DecodeZoned(a.registry, e.millis, e.zone)
}

func zonedView(data *hashData[zonedEntry], registry *coding.ZoneRegistry, parallel bool) *Zoned {
	return &Zoned{
		hashColumn: hashColumn[zonedEntry]{data: data, parallel: parallel},
		registry:   registry,
	}
}

func (a *Zoned) Close() error { return nil }

func (a *Zoned) Length() int { return a.length() }

func (a *Zoned) Kind() array.Kind { return array.KindZoned }

func (a *Zoned) DefaultValue() interface{} { return a.decode(a.data.def) }

func (a *Zoned) LoadFactor() float64 { return a.loadFactor() }

func (a *Zoned) Parallel() array.Array { return zonedView(a.data, a.registry, true) }

func (a *Zoned) Sequential() array.Array { return zonedView(a.data, a.registry, false) }

func (a *Zoned) IsParallel() bool { return a.parallel }

func (a *Zoned) Value(index int) interface{} { return a.decode(a.get(index)) }

func (a *Zoned) SetValue(index int, value interface{}) {
	a.set(index, encodeZonedBoxed(a.registry, value))
}

func (a *Zoned) Bool(index int) bool { panic(array.ErrWrongKind("Bool", array.KindZoned)) }

func (a *Zoned) SetBool(index int, value bool) {
	panic(array.ErrWrongKind("SetBool", array.KindZoned))
}

func (a *Zoned) Int(index int) int32 { panic(array.ErrWrongKind("Int", array.KindZoned)) }

func (a *Zoned) SetInt(index int, value int32) {
	panic(array.ErrWrongKind("SetInt", array.KindZoned))
}

// Int64 returns the instant component in epoch milliseconds; NullMillis for
// a null slot.
func (a *Zoned) Int64(index int) int64 { return a.get(index).millis }

// SetInt64 stores the instant component only. A previously null slot gets
// the UTC zone rather than being left without one.
func (a *Zoned) SetInt64(index int, value int64) {
	e := a.get(index)
	if e.millis == array.NullMillis {
		utc, _ := a.registry.Intern("UTC")
		e.zone = utc
	}
	e.millis = value
	a.set(index, e)
}

func (a *Zoned) Float64(index int) float64 { panic(array.ErrWrongKind("Float64", array.KindZoned)) }

func (a *Zoned) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindZoned))
}

func (a *Zoned) ZonedAt(index int) (int64, int16) {
	e := a.get(index)
	return e.millis, e.zone
}

func (a *Zoned) SetZonedAt(index int, millis int64, zone int16) {
	a.set(index, zonedEntry{millis: millis, zone: zone})
}

func (a *Zoned) IsNull(index int) bool { return a.get(index).millis == array.NullMillis }

func (a *Zoned) IsEqualTo(index int, value interface{}) bool {
	e := a.get(index)
	if value == nil {
		return e.millis == array.NullMillis
	}
	t, ok := value.(time.Time)
	if !ok {
		return false
	}
	if e.millis != t.UnixMilli() {
		return false
	}
	zone, err := a.registry.InternLocation(t.Location())
	if err != nil {
		return false
	}
	return e.zone == zone
}

func (a *Zoned) Copy() array.Array { return zonedView(a.copyData(), a.registry, a.parallel) }

func (a *Zoned) CopyRange(start, end int) array.Array {
	return zonedView(a.copyRange(start, end), a.registry, a.parallel)
}

func (a *Zoned) CopyIndexes(indexes []int) array.Array {
	return zonedView(a.copyIndexes(indexes), a.registry, a.parallel)
}

func (a *Zoned) Swap(i, j int) { a.swap(i, j) }

// Compare orders on the instant component only; nulls sort first via the
// sentinel.
func (a *Zoned) Compare(i, j int) int {
	return array.CompareOrdered(a.get(i).millis, a.get(j).millis)
}

func (a *Zoned) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Zoned) Filter(predicate array.Predicate) array.Array {
	return zonedView(a.filter(func(i int) bool { return predicate(a, i) }), a.registry, a.parallel)
}

func (a *Zoned) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if src, ok := from.(array.ZonedAccess); ok {
		a.updateScatter(fromIndexes, toIndexes, func(i int) zonedEntry {
			millis, zone := src.ZonedAt(i)
			return zonedEntry{millis: millis, zone: zone}
		})
		return
	}
	a.updateScatter(fromIndexes, toIndexes, func(i int) zonedEntry {
		return encodeZonedBoxed(a.registry, from.Value(i))
	})
}

func (a *Zoned) UpdateRange(from array.Array, fromStart, toStart, count int) {
	if src, ok := from.(array.ZonedAccess); ok {
		a.updateRange(fromStart, toStart, count, from.Length(), func(i int) zonedEntry {
			millis, zone := src.ZonedAt(i)
			return zonedEntry{millis: millis, zone: zone}
		})
		return
	}
	a.updateRange(fromStart, toStart, count, from.Length(), func(i int) zonedEntry {
		return encodeZonedBoxed(a.registry, from.Value(i))
	})
}

func (a *Zoned) Expand(newLength int) { a.expand(newLength) }

func (a *Zoned) Fill(value interface{}) { a.fill(encodeZonedBoxed(a.registry, value)) }

func (a *Zoned) FillRange(value interface{}, start, end int) {
	a.fillRange(encodeZonedBoxed(a.registry, value), start, end)
}

// BinarySearch looks up on the instant component only.
func (a *Zoned) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.length())
	t, ok := value.(time.Time)
	if !ok {
		panic(errors.IncompatibleType(time.Time{}, value))
	}
	target := t.UnixMilli()
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.get(i).millis, target)
	})
}

func (a *Zoned) Distinct(limit int) array.Array {
	return zonedView(a.distinct(limit), a.registry, a.parallel)
}

func (a *Zoned) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindZoned)) }

func (a *Zoned) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.length(), array.StrideZoned, func(i int, b []byte) {
		millis, zone := array.GetZoned(b)
		a.set(i, zonedEntry{millis: millis, zone: zone})
	})
}

func (a *Zoned) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.length(), array.StrideZoned, func(i int, b []byte) {
		e := a.get(i)
		array.PutZoned(b, e.millis, e.zone)
	})
}
