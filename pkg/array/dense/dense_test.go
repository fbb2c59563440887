package dense

import (
	"bytes"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/errors"
)

func TestIntScenario(t *testing.T) {
	a := NewInt(5, 0)
	a.SetInt(2, 7)

	assert.Equal(t, int32(7), a.Int(2))
	assert.Equal(t, int32(0), a.Int(0))

	sums := a.CumSum()
	expected := []int32{0, 0, 7, 7, 7}
	for i, want := range expected {
		assert.Equal(t, want, sums.Int(i), "index %d", i)
	}
}

func TestDefaultFill(t *testing.T) {
	a := NewInt(4, 9)
	for i := 0; i < 4; i++ {
		assert.Equal(t, int32(9), a.Int(i))
		assert.False(t, a.IsNull(i))
	}

	f := NewFloat64(3, math.NaN())
	for i := 0; i < 3; i++ {
		assert.True(t, f.IsNull(i))
		assert.Nil(t, f.Value(i))
	}
}

func TestExpandPreservesPrefix(t *testing.T) {
	a := NewInt64(3, -1)
	a.SetInt64(1, 42)

	a.Expand(6)
	require.Equal(t, 6, a.Length())
	assert.Equal(t, int64(42), a.Int64(1))
	for i := 3; i < 6; i++ {
		assert.Equal(t, int64(-1), a.Int64(i))
	}

	// shrink requests are no-ops
	a.Expand(2)
	assert.Equal(t, 6, a.Length())
}

func TestCopyIndependence(t *testing.T) {
	a := NewFloat64(3, 0)
	a.SetFloat64(0, 1.5)

	b := a.Copy()
	b.SetFloat64(0, 99)
	assert.Equal(t, 1.5, a.Float64(0))

	a.SetFloat64(1, 7)
	assert.Equal(t, float64(0), b.Float64(1))
}

func TestViewsAliasBacking(t *testing.T) {
	a := NewInt(3, 0)
	p := a.Parallel()
	require.True(t, p.IsParallel())
	require.False(t, a.IsParallel())

	p.SetInt(1, 11)
	assert.Equal(t, int32(11), a.Int(1))

	s := p.Sequential()
	assert.False(t, s.IsParallel())
	s.SetInt(2, 22)
	assert.Equal(t, int32(22), a.Int(2))
}

func TestBoundsPanic(t *testing.T) {
	a := NewInt(3, 0)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.IsType(err, errors.ErrorTypeBounds))
	}()
	a.Int(3)
}

func TestTypedPathMismatchPanics(t *testing.T) {
	a := NewInt(2, 0)
	assert.Panics(t, func() { a.Bool(0) })
	assert.Panics(t, func() { a.SetFloat64(0, 1) })

	// widening reads are allowed
	a.SetInt(0, 5)
	assert.Equal(t, int64(5), a.Int64(0))
	assert.Equal(t, 5.0, a.Float64(0))
}

func TestSortAndBinarySearch(t *testing.T) {
	a := NewInt(5, 0)
	for i, v := range []int32{4, 1, 3, 5, 2} {
		a.SetInt(i, v)
	}

	a.Sort(0, 5, 1)
	for i, want := range []int32{1, 2, 3, 4, 5} {
		assert.Equal(t, want, a.Int(i))
	}

	assert.Equal(t, 2, a.BinarySearch(0, 5, int32(3)))
	// absent value reports the negative insertion point
	assert.Equal(t, -6, a.BinarySearch(0, 5, int32(9)))
	assert.Equal(t, -1, a.BinarySearch(0, 5, int32(0)))

	a.Sort(0, 5, -1)
	for i, want := range []int32{5, 4, 3, 2, 1} {
		assert.Equal(t, want, a.Int(i))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	a := NewInt(6, 0)
	for i := 0; i < 6; i++ {
		a.SetInt(i, int32(i))
	}

	even := a.Filter(func(src array.Array, i int) bool { return src.Int(i)%2 == 0 })
	require.Equal(t, 3, even.Length())
	for i, want := range []int32{0, 2, 4} {
		assert.Equal(t, want, even.Int(i))
	}
}

func TestUpdateScatter(t *testing.T) {
	src := NewInt(3, 0)
	for i := 0; i < 3; i++ {
		src.SetInt(i, int32(10+i))
	}
	dst := NewInt(5, 0)

	dst.Update(src, []int{0, 2}, []int{4, 1})
	assert.Equal(t, int32(10), dst.Int(4))
	assert.Equal(t, int32(12), dst.Int(1))
}

func TestUpdateValidatesBeforeMutating(t *testing.T) {
	src := NewInt(3, 0)
	src.SetInt(0, 77)
	dst := NewInt(3, 0)

	assert.Panics(t, func() { dst.Update(src, []int{0, 1}, []int{0}) })
	assert.Panics(t, func() { dst.Update(src, []int{0, 9}, []int{0, 1}) })
	// the failed batch must not have touched any slot
	assert.Equal(t, int32(0), dst.Int(0))
}

func TestUpdateRange(t *testing.T) {
	src := NewString(4, "")
	for i, s := range []string{"a", "b", "c", "d"} {
		src.SetValue(i, s)
	}
	dst := NewString(4, "")

	dst.UpdateRange(src, 1, 0, 3)
	assert.Equal(t, "b", dst.Value(0))
	assert.Equal(t, "d", dst.Value(2))
}

func TestDistinctFirstOccurrenceOrder(t *testing.T) {
	a := NewInt(6, 0)
	for i, v := range []int32{3, 1, 3, 2, 1, 3} {
		a.SetInt(i, v)
	}

	d := a.Distinct(0)
	require.Equal(t, 3, d.Length())
	assert.Equal(t, int32(3), d.Int(0))
	assert.Equal(t, int32(1), d.Int(1))
	assert.Equal(t, int32(2), d.Int(2))

	limited := a.Distinct(2)
	require.Equal(t, 2, limited.Length())
}

func TestFloat64CumSumAbsorbsNaN(t *testing.T) {
	a := NewFloat64(4, math.NaN())
	a.SetFloat64(1, 5)
	a.SetFloat64(3, 2)

	sums := a.CumSum()
	assert.True(t, math.IsNaN(sums.Float64(0)))
	assert.Equal(t, 5.0, sums.Float64(1))
	assert.Equal(t, 5.0, sums.Float64(2))
	assert.Equal(t, 7.0, sums.Float64(3))
}

func TestFloat64SortNullsFirst(t *testing.T) {
	a := NewFloat64(4, 0)
	a.SetFloat64(0, 2)
	a.SetFloat64(1, math.NaN())
	a.SetFloat64(2, 1)
	a.SetFloat64(3, math.NaN())

	a.Sort(0, 4, 1)
	assert.True(t, math.IsNaN(a.Float64(0)))
	assert.True(t, math.IsNaN(a.Float64(1)))
	assert.Equal(t, 1.0, a.Float64(2))
	assert.Equal(t, 2.0, a.Float64(3))
}

func TestReadWriteRoundTrip(t *testing.T) {
	a := NewBool(4, false)
	a.SetBool(1, true)
	a.SetBool(3, true)

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf, []int{0, 1, 2, 3}))

	b := NewBool(4, false)
	require.NoError(t, b.Read(&buf, 4))
	for i := 0; i < 4; i++ {
		assert.Equal(t, a.Bool(i), b.Bool(i), "index %d", i)
	}
}

func TestStringReadWriteRoundTrip(t *testing.T) {
	a := NewString(3, "")
	a.SetValue(0, "hello")
	a.SetValue(1, "")
	a.SetValue(2, "wörld")

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf, []int{0, 1, 2}))

	b := NewString(3, "")
	require.NoError(t, b.Read(&buf, 3))
	for i := 0; i < 3; i++ {
		assert.Equal(t, a.Value(i), b.Value(i))
	}
}

func TestObjectTypeLock(t *testing.T) {
	a := NewObject(2, nil, reflect.TypeOf(""))
	a.SetValue(0, "ok")
	assert.Panics(t, func() { a.SetValue(1, 42) })
	assert.True(t, a.IsNull(1))
}

func TestObjectCompareAndSort(t *testing.T) {
	a := NewObject(3, nil, nil)
	a.SetValue(0, "b")
	a.SetValue(2, "a")

	a.Sort(0, 3, 1)
	assert.Nil(t, a.Value(0)) // nulls sort first
	assert.Equal(t, "a", a.Value(1))
	assert.Equal(t, "b", a.Value(2))
}

func TestZonedEquality(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	a := NewZoned(2, nil)
	instant := time.Date(2023, time.June, 1, 10, 0, 0, 0, time.UTC)
	a.SetValue(0, instant)

	// same instant, different zone: not equal
	assert.True(t, a.IsEqualTo(0, instant))
	assert.False(t, a.IsEqualTo(0, instant.In(berlin)))
	assert.True(t, a.IsNull(1))
	assert.True(t, a.IsEqualTo(1, nil))
}

func TestZonedSetInt64DefaultsZone(t *testing.T) {
	a := NewZoned(1, nil)
	require.True(t, a.IsNull(0))

	a.SetInt64(0, 1_000_000)
	require.False(t, a.IsNull(0))
	got, ok := a.Value(0).(time.Time)
	require.True(t, ok)
	assert.Equal(t, "UTC", got.Location().String())
	assert.Equal(t, int64(1_000_000), got.UnixMilli())
}

func TestZonedSortAndSearchOnInstant(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	a := NewZoned(3, nil)
	t0 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	a.SetValue(0, t0.Add(2*time.Hour).In(tokyo))
	a.SetValue(1, t0)
	a.SetValue(2, t0.Add(time.Hour))

	a.Sort(0, 3, 1)
	assert.Equal(t, t0.UnixMilli(), a.Int64(0))
	assert.Equal(t, t0.Add(2*time.Hour).UnixMilli(), a.Int64(2))

	idx := a.BinarySearch(0, 3, t0.Add(time.Hour))
	assert.Equal(t, 1, idx)
}

func TestZonedReadWriteRoundTrip(t *testing.T) {
	a := NewZoned(3, nil)
	a.SetValue(0, time.Date(2022, time.May, 5, 12, 0, 0, 0, time.UTC))
	a.SetInt64(2, 777)

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf, []int{0, 1, 2}))

	b := NewZoned(3, nil)
	require.NoError(t, b.Read(&buf, 3))
	for i := 0; i < 3; i++ {
		am, az := a.ZonedAt(i)
		bm, bz := b.ZonedAt(i)
		assert.Equal(t, am, bm)
		assert.Equal(t, az, bz)
	}
}

func TestObjectNonComparableElements(t *testing.T) {
	a := NewObject(3, nil, nil)
	a.SetValue(0, []int{1, 2})
	a.SetValue(1, []int{1, 2})

	assert.NotPanics(t, func() {
		assert.False(t, a.IsEqualTo(0, []int{1, 2}))
		assert.False(t, a.IsEqualTo(0, a.Value(1)))
	})
	assert.True(t, a.IsEqualTo(2, nil))

	var distinct array.Array
	assert.NotPanics(t, func() { distinct = a.Distinct(0) })
	// slices never collapse; the two nil-free slots plus the nil default
	assert.Equal(t, 3, distinct.Length())
}

func TestSequentialArraysShareStream(t *testing.T) {
	s := NewString(3, "")
	s.SetValue(0, "alpha")
	s.SetValue(2, "gamma")
	n := NewInt(2, 0)
	n.SetInt(0, 41)
	n.SetInt(1, 42)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf, []int{0, 1, 2}))
	require.NoError(t, n.Write(&buf, []int{0, 1}))

	s2 := NewString(3, "")
	n2 := NewInt(2, 0)
	require.NoError(t, s2.Read(&buf, 3))
	require.NoError(t, n2.Read(&buf, 2))

	assert.Equal(t, "alpha", s2.Value(0))
	assert.Equal(t, "gamma", s2.Value(2))
	assert.Equal(t, int32(41), n2.Int(0))
	assert.Equal(t, int32(42), n2.Int(1))
	assert.Zero(t, buf.Len())
}
