package dense

import (
	"io"
	"time"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// zonedData stores an (instant, zone) pair per slot as parallel slices: an
// epoch-millis int64 and an int16 code into the process-wide zone registry.
// A null slot is (NullMillis, NoZoneCode).
type zonedData struct {
	millis   []int64
	zones    []int16
	defMill  int64
	defZone  int16
	registry *coding.ZoneRegistry
}

// Zoned is the dense zoned date-time array.
type Zoned struct {
	data     *zonedData
	parallel bool
}

// NewZoned creates a dense zoned date-time array. def is either nil or a
// time.Time whose location resolves against the zone registry.
func NewZoned(length int, def interface{}) *Zoned {
	if length < 0 {
		panic(errors.Newf(errors.ErrorTypeBounds, "negative array length %d", length))
	}
	data := &zonedData{registry: coding.Zones}
	data.defMill, data.defZone = array.EncodeZoned(data.registry, def)
	data.millis = make([]int64, length)
	data.zones = make([]int16, length)
	for i := range data.millis {
		data.millis[i] = data.defMill
		data.zones[i] = data.defZone
	}
	return &Zoned{data: data}
}

func zonedView(data *zonedData, parallel bool) *Zoned {
	return &Zoned{data: data, parallel: parallel}
}

func (a *Zoned) Close() error { return nil }

func (a *Zoned) Length() int { return len(a.data.millis) }

func (a *Zoned) Kind() array.Kind { return array.KindZoned }

func (a *Zoned) DefaultValue() interface{} {
	return array.DecodeZoned(a.data.registry, a.data.defMill, a.data.defZone)
}

func (a *Zoned) LoadFactor() float64 { return 1 }

func (a *Zoned) Parallel() array.Array { return zonedView(a.data, true) }

func (a *Zoned) Sequential() array.Array { return zonedView(a.data, false) }

func (a *Zoned) IsParallel() bool { return a.parallel }

func (a *Zoned) Value(index int) interface{} {
	array.CheckIndex(index, a.Length())
	return array.DecodeZoned(a.data.registry, a.data.millis[index], a.data.zones[index])
}

func (a *Zoned) SetValue(index int, value interface{}) {
	array.CheckIndex(index, a.Length())
	a.data.millis[index], a.data.zones[index] = array.EncodeZoned(a.data.registry, value)
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
func (a *Zoned) Int64(index int) int64 {
	array.CheckIndex(index, a.Length())
	return a.data.millis[index]
}

// SetInt64 stores the instant component only. A previously null slot gets
// the UTC zone rather than being left without one.
func (a *Zoned) SetInt64(index int, value int64) {
	array.CheckIndex(index, a.Length())
	if a.data.millis[index] == array.NullMillis {
		utc, _ := a.data.registry.Intern("UTC")
		a.data.zones[index] = utc
	}
	a.data.millis[index] = value
}

func (a *Zoned) Float64(index int) float64 { panic(array.ErrWrongKind("Float64", array.KindZoned)) }

func (a *Zoned) SetFloat64(index int, value float64) {
	panic(array.ErrWrongKind("SetFloat64", array.KindZoned))
}

func (a *Zoned) ZonedAt(index int) (int64, int16) {
	array.CheckIndex(index, a.Length())
	return a.data.millis[index], a.data.zones[index]
}

func (a *Zoned) SetZonedAt(index int, millis int64, zone int16) {
	array.CheckIndex(index, a.Length())
	a.data.millis[index] = millis
	a.data.zones[index] = zone
}

func (a *Zoned) IsNull(index int) bool {
	array.CheckIndex(index, a.Length())
	return a.data.millis[index] == array.NullMillis
}

// IsEqualTo short-circuits on the instant before touching the zone
// registry: same instant in different zones is not equal.
func (a *Zoned) IsEqualTo(index int, value interface{}) bool {
	array.CheckIndex(index, a.Length())
	if value == nil {
		return a.data.millis[index] == array.NullMillis
	}
	t, ok := value.(time.Time)
	if !ok {
		return false
	}
	if a.data.millis[index] != t.UnixMilli() {
		return false
	}
	zone, err := a.data.registry.InternLocation(t.Location())
	if err != nil {
		return false
	}
	return a.data.zones[index] == zone
}

func (a *Zoned) copyData() *zonedData {
	millis := make([]int64, len(a.data.millis))
	zones := make([]int16, len(a.data.zones))
	copy(millis, a.data.millis)
	copy(zones, a.data.zones)
	return &zonedData{
		millis: millis, zones: zones,
		defMill: a.data.defMill, defZone: a.data.defZone,
		registry: a.data.registry,
	}
}

func (a *Zoned) Copy() array.Array { return zonedView(a.copyData(), a.parallel) }

func (a *Zoned) CopyRange(start, end int) array.Array {
	array.CheckRange(start, end, a.Length())
	millis := make([]int64, end-start)
	zones := make([]int16, end-start)
	copy(millis, a.data.millis[start:end])
	copy(zones, a.data.zones[start:end])
	return zonedView(&zonedData{
		millis: millis, zones: zones,
		defMill: a.data.defMill, defZone: a.data.defZone,
		registry: a.data.registry,
	}, a.parallel)
}

func (a *Zoned) CopyIndexes(indexes []int) array.Array {
	millis := make([]int64, len(indexes))
	zones := make([]int16, len(indexes))
	for k, i := range indexes {
		array.CheckIndex(i, a.Length())
		millis[k] = a.data.millis[i]
		zones[k] = a.data.zones[i]
	}
	return zonedView(&zonedData{
		millis: millis, zones: zones,
		defMill: a.data.defMill, defZone: a.data.defZone,
		registry: a.data.registry,
	}, a.parallel)
}

func (a *Zoned) Swap(i, j int) {
	array.CheckIndex(i, a.Length())
	array.CheckIndex(j, a.Length())
	a.data.millis[i], a.data.millis[j] = a.data.millis[j], a.data.millis[i]
	a.data.zones[i], a.data.zones[j] = a.data.zones[j], a.data.zones[i]
}

// Compare orders on the instant component only; the zone is not
// ordering-significant. Nulls sort first via the sentinel.
func (a *Zoned) Compare(i, j int) int {
	array.CheckIndex(i, a.Length())
	array.CheckIndex(j, a.Length())
	return array.CompareOrdered(a.data.millis[i], a.data.millis[j])
}

func (a *Zoned) Sort(start, end, multiplier int) { array.SortRange(a, start, end, multiplier) }

func (a *Zoned) Filter(predicate array.Predicate) array.Array {
	out := &zonedData{
		defMill: a.data.defMill, defZone: a.data.defZone,
		registry: a.data.registry,
	}
	for i := range a.data.millis {
		if predicate(a, i) {
			out.millis = append(out.millis, a.data.millis[i])
			out.zones = append(out.zones, a.data.zones[i])
		}
	}
	return zonedView(out, a.parallel)
}

func (a *Zoned) Update(from array.Array, fromIndexes, toIndexes []int) {
	array.CheckUpdate(from, a, fromIndexes, toIndexes)
	if src, ok := from.(array.ZonedAccess); ok {
		for k := range fromIndexes {
			millis, zone := src.ZonedAt(fromIndexes[k])
			a.data.millis[toIndexes[k]] = millis
			a.data.zones[toIndexes[k]] = zone
		}
		return
	}
	for k := range fromIndexes {
		a.SetValue(toIndexes[k], from.Value(fromIndexes[k]))
	}
}

func (a *Zoned) UpdateRange(from array.Array, fromStart, toStart, count int) {
	array.CheckRange(fromStart, fromStart+count, from.Length())
	array.CheckRange(toStart, toStart+count, a.Length())
	if src, ok := from.(array.ZonedAccess); ok {
		for k := 0; k < count; k++ {
			millis, zone := src.ZonedAt(fromStart + k)
			a.data.millis[toStart+k] = millis
			a.data.zones[toStart+k] = zone
		}
		return
	}
	for k := 0; k < count; k++ {
		a.SetValue(toStart+k, from.Value(fromStart+k))
	}
}

func (a *Zoned) Expand(newLength int) {
	if newLength <= a.Length() {
		return
	}
	millis := make([]int64, newLength)
	zones := make([]int16, newLength)
	copy(millis, a.data.millis)
	copy(zones, a.data.zones)
	for i := len(a.data.millis); i < newLength; i++ {
		millis[i] = a.data.defMill
		zones[i] = a.data.defZone
	}
	a.data.millis = millis
	a.data.zones = zones
}

func (a *Zoned) Fill(value interface{}) {
	a.FillRange(value, 0, a.Length())
}

func (a *Zoned) FillRange(value interface{}, start, end int) {
	array.CheckRange(start, end, a.Length())
	millis, zone := array.EncodeZoned(a.data.registry, value)
	for i := start; i < end; i++ {
		a.data.millis[i] = millis
		a.data.zones[i] = zone
	}
}

// BinarySearch looks up on the instant component only.
func (a *Zoned) BinarySearch(start, end int, value interface{}) int {
	array.CheckRange(start, end, a.Length())
	t, ok := value.(time.Time)
	if !ok {
		panic(errors.IncompatibleType(time.Time{}, value))
	}
	target := t.UnixMilli()
	return array.Search(start, end, func(i int) int {
		return array.CompareOrdered(a.data.millis[i], target)
	})
}

func (a *Zoned) Distinct(limit int) array.Array {
	type slot struct {
		millis int64
		zone   int16
	}
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[slot]struct{}, capacity)
	out := &zonedData{
		defMill: a.data.defMill, defZone: a.data.defZone,
		registry: a.data.registry,
	}
	for i := range a.data.millis {
		s := slot{a.data.millis[i], a.data.zones[i]}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out.millis = append(out.millis, s.millis)
		out.zones = append(out.zones, s.zone)
		if limit > 0 && len(out.millis) >= limit {
			break
		}
	}
	return zonedView(out, a.parallel)
}

func (a *Zoned) CumSum() array.Array { panic(array.ErrWrongKind("CumSum", array.KindZoned)) }

func (a *Zoned) Read(r io.Reader, count int) error {
	return array.ReadFixed(r, count, a.Length(), array.StrideZoned, func(i int, b []byte) {
		a.data.millis[i], a.data.zones[i] = array.GetZoned(b)
	})
}

func (a *Zoned) Write(w io.Writer, indexes []int) error {
	return array.WriteFixed(w, indexes, a.Length(), array.StrideZoned, func(i int, b []byte) {
		array.PutZoned(b, a.data.millis[i], a.data.zones[i])
	})
}
