package sparse

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
)

func TestDefaultReadsWithoutStorage(t *testing.T) {
	a := NewInt(1000, 7)
	assert.Equal(t, int32(7), a.Int(999))
	assert.Equal(t, float64(0), a.LoadFactor())

	a.SetInt(10, 42)
	assert.Equal(t, int32(42), a.Int(10))
	assert.InDelta(t, 0.001, a.LoadFactor(), 1e-9)
}

func TestStoreDefaultRemovesEntry(t *testing.T) {
	a := NewInt64(3, -1)
	a.SetInt64(0, 5)
	a.SetInt64(1, 6)
	assert.InDelta(t, 2.0/3.0, a.LoadFactor(), 1e-9)

	// writing the default back reclaims the slot
	a.SetInt64(0, -1)
	assert.InDelta(t, 1.0/3.0, a.LoadFactor(), 1e-9)
	assert.Equal(t, int64(-1), a.Int64(0))
}

func TestNaNDefaultElision(t *testing.T) {
	a := NewFloat64(3, math.NaN())
	a.SetFloat64(0, 1.5)
	a.SetFloat64(1, 2.5)
	require.InDelta(t, 2.0/3.0, a.LoadFactor(), 1e-9)

	// NaN never equals itself with ==; elision must still recognize it
	a.SetFloat64(0, math.NaN())
	assert.InDelta(t, 1.0/3.0, a.LoadFactor(), 1e-9)
	assert.True(t, a.IsNull(0))
	assert.Nil(t, a.Value(0))
}

func TestExpandIsFree(t *testing.T) {
	a := NewInt(4, 9)
	a.SetInt(2, 1)

	a.Expand(1_000_000)
	require.Equal(t, 1_000_000, a.Length())
	assert.Equal(t, int32(1), a.Int(2))
	assert.Equal(t, int32(9), a.Int(999_999))
	assert.InDelta(t, 1e-6, a.LoadFactor(), 1e-12)

	a.Expand(10)
	assert.Equal(t, 1_000_000, a.Length())
}

func TestViewsAliasBacking(t *testing.T) {
	a := NewString(3, "")
	p := a.Parallel()
	require.True(t, p.IsParallel())
	require.False(t, a.IsParallel())

	p.SetValue(1, "x")
	assert.Equal(t, "x", a.Value(1))
}

func TestFillDefaultClears(t *testing.T) {
	a := NewInt(5, 0)
	for i := 0; i < 5; i++ {
		a.SetInt(i, int32(i+1))
	}
	require.Equal(t, float64(1), a.LoadFactor())

	a.Fill(0)
	assert.Equal(t, float64(0), a.LoadFactor())
	assert.Equal(t, int32(0), a.Int(3))
}

func TestCopyRangeRehomes(t *testing.T) {
	a := NewInt64(10, 0)
	a.SetInt64(4, 40)
	a.SetInt64(7, 70)

	b := a.CopyRange(3, 8)
	require.Equal(t, 5, b.Length())
	assert.Equal(t, int64(40), b.Int64(1))
	assert.Equal(t, int64(70), b.Int64(4))
	assert.Equal(t, int64(0), b.Int64(0))

	// copies do not alias
	b.SetInt64(1, 99)
	assert.Equal(t, int64(40), a.Int64(4))
}

func TestFilterPreservesOrderAndSparsity(t *testing.T) {
	a := NewInt(6, 0)
	a.SetInt(1, 10)
	a.SetInt(3, 30)
	a.SetInt(5, 50)

	kept := a.Filter(func(src array.Array, i int) bool { return src.Int(i) != 30 })
	require.Equal(t, 5, kept.Length())
	assert.Equal(t, int32(0), kept.Int(0))
	assert.Equal(t, int32(10), kept.Int(1))
	assert.Equal(t, int32(0), kept.Int(2))
	assert.Equal(t, int32(0), kept.Int(3))
	assert.Equal(t, int32(50), kept.Int(4))
}

func TestDistinctIncludesDefault(t *testing.T) {
	a := NewInt(5, 0)
	a.SetInt(1, 2)
	a.SetInt(3, 2)

	d := a.Distinct(0)
	require.Equal(t, 2, d.Length())
	assert.Equal(t, int32(0), d.Int(0))
	assert.Equal(t, int32(2), d.Int(1))
}

func TestFloat64DistinctCollapsesNaN(t *testing.T) {
	a := NewFloat64(4, 0)
	a.SetFloat64(1, math.NaN())
	a.SetFloat64(2, math.NaN())
	a.SetFloat64(3, 5)

	d := a.Distinct(0)
	require.Equal(t, 3, d.Length())
	assert.Equal(t, float64(0), d.Float64(0))
	assert.True(t, math.IsNaN(d.Float64(1)))
	assert.Equal(t, float64(5), d.Float64(2))
}

func TestSortAndBinarySearch(t *testing.T) {
	a := NewInt(5, 0)
	a.SetInt(0, 3)
	a.SetInt(1, 1)
	a.SetInt(3, 2)

	a.Sort(0, a.Length(), 1)
	want := []int32{0, 0, 1, 2, 3}
	for i, v := range want {
		assert.Equal(t, v, a.Int(i), "index %d", i)
	}

	assert.Equal(t, 3, a.BinarySearch(0, a.Length(), int32(2)))
	assert.Equal(t, -(4 + 1), a.BinarySearch(0, a.Length(), int32(5)))
}

func TestUpdateValidatesBeforeMutating(t *testing.T) {
	dst := NewInt(4, 0)
	src := dense.NewInt(2, 0)
	src.SetInt(0, 8)

	assert.Panics(t, func() {
		dst.Update(src, []int{0, 1}, []int{0, 9})
	})
	assert.Equal(t, int32(0), dst.Int(0))

	dst.Update(src, []int{0}, []int{2})
	assert.Equal(t, int32(8), dst.Int(2))
}

func TestCumSumAbsorbsNaN(t *testing.T) {
	a := NewFloat64(5, math.NaN())
	a.SetFloat64(1, 2)
	a.SetFloat64(3, 3)

	sums := a.CumSum()
	assert.True(t, math.IsNaN(sums.Float64(0)))
	assert.Equal(t, float64(2), sums.Float64(1))
	assert.Equal(t, float64(2), sums.Float64(2))
	assert.Equal(t, float64(5), sums.Float64(3))
	assert.Equal(t, float64(5), sums.Float64(4))
}

func TestReadWriteRoundTrip(t *testing.T) {
	a := NewInt64(6, 0)
	a.SetInt64(2, 200)
	a.SetInt64(5, 500)

	var buf bytes.Buffer
	indexes := []int{0, 1, 2, 3, 4, 5}
	require.NoError(t, a.Write(&buf, indexes))

	b := NewInt64(6, 0)
	require.NoError(t, b.Read(&buf, 6))
	for i := 0; i < 6; i++ {
		assert.Equal(t, a.Int64(i), b.Int64(i), "index %d", i)
	}
	// defaults in the stream stay unmaterialized
	assert.InDelta(t, 2.0/6.0, b.LoadFactor(), 1e-9)
}

func TestObjectElisionNeverPanics(t *testing.T) {
	a := NewObject(3, nil, nil)
	a.SetValue(0, []int{1, 2}) // non-comparable element
	a.SetValue(1, "x")

	assert.Equal(t, []int{1, 2}, a.Value(0))
	a.SetValue(0, nil)
	assert.True(t, a.IsNull(0))
	assert.InDelta(t, 1.0/3.0, a.LoadFactor(), 1e-9)
}

func TestZonedDefaultAndNullElision(t *testing.T) {
	a := NewZoned(4, nil)
	require.True(t, a.IsNull(0))
	require.Equal(t, float64(0), a.LoadFactor())

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	stamp := time.Date(2024, 3, 10, 1, 30, 0, 0, ny)
	a.SetValue(1, stamp)
	assert.True(t, a.IsEqualTo(1, stamp))
	assert.InDelta(t, 1.0/4.0, a.LoadFactor(), 1e-9)

	// any null representation elides against a null default
	a.SetZonedAt(1, array.NullMillis, 3)
	assert.Equal(t, float64(0), a.LoadFactor())
	assert.True(t, a.IsNull(1))
}

func TestZonedSetInt64DefaultsZone(t *testing.T) {
	a := NewZoned(2, nil)
	a.SetInt64(0, 1_700_000_000_000)

	v, ok := a.Value(0).(time.Time)
	require.True(t, ok)
	assert.Equal(t, "UTC", v.Location().String())
	assert.Equal(t, int64(1_700_000_000_000), a.Int64(0))
}

func TestZonedReadWriteRoundTrip(t *testing.T) {
	a := NewZoned(3, nil)
	a.SetValue(1, time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf, []int{0, 1, 2}))

	b := NewZoned(3, nil)
	require.NoError(t, b.Read(&buf, 3))
	assert.True(t, b.IsNull(0))
	m, z := b.ZonedAt(1)
	wm, wz := a.ZonedAt(1)
	assert.Equal(t, wm, m)
	assert.Equal(t, wz, z)
}

func TestObjectDistinctNonComparable(t *testing.T) {
	a := NewObject(4, nil, nil)
	a.SetValue(0, []int{1, 2})
	a.SetValue(1, "x")
	a.SetValue(2, []int{1, 2})

	var d array.Array
	assert.NotPanics(t, func() { d = a.Distinct(0) })
	// both slices survive; "x" and the nil default dedupe normally
	assert.Equal(t, 4, d.Length())
	assert.Equal(t, []int{1, 2}, d.Value(0))
	assert.Equal(t, "x", d.Value(1))
	assert.Equal(t, []int{1, 2}, d.Value(2))
	assert.True(t, d.IsNull(3))
	assert.False(t, a.IsEqualTo(0, []int{1, 2}))
}
