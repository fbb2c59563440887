package reduce

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/coded"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/array/sparse"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/config"
)

func randomInts(t *testing.T, rng *rand.Rand, n int) array.Array {
	t.Helper()
	a := dense.NewInt(n, 0)
	for i := 0; i < n; i++ {
		a.SetValue(i, int32(rng.Intn(2001)-1000))
	}
	return a
}

func sequentialIntBounds(a array.Array, from, to int) (int32, int32) {
	lo, hi := a.Int(from), a.Int(from)
	for i := from + 1; i <= to; i++ {
		v := a.Int(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func TestBoundsMatchesSequentialForAnyThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(5_000)
		a := randomInts(t, rng, n)
		wantMin, wantMax := sequentialIntBounds(a, 0, n-1)

		threshold := 1 + rng.Intn(n)
		got, ok := BoundsOf(a, 0, n-1, WithThreshold(threshold))
		require.True(t, ok)
		assert.Equal(t, wantMin, got.Min, "threshold %d n %d", threshold, n)
		assert.Equal(t, wantMax, got.Max, "threshold %d n %d", threshold, n)
	}
}

func TestCountAdditivity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 4_096
	a := randomInts(t, rng, n)
	positive := func(a array.Array, i int) bool { return a.Int(i) > 0 }

	whole := Count(a, 0, n-1, positive, WithThreshold(64))
	for trial := 0; trial < 10; trial++ {
		mid := rng.Intn(n - 1)
		left := Count(a, 0, mid, positive, WithThreshold(1+rng.Intn(n)))
		right := Count(a, mid+1, n-1, positive, WithThreshold(1+rng.Intn(n)))
		assert.Equal(t, whole, left+right, "mid %d", mid)
	}
}

func TestEmptyRange(t *testing.T) {
	a := dense.NewInt(4, 0)
	defer a.Close()

	_, ok := BoundsOf(a, 3, 2)
	assert.False(t, ok)
	assert.Zero(t, Count(a, 3, 2, NotNull()))
}

func TestBoundsSkipsNaN(t *testing.T) {
	a := dense.NewFloat64(6, math.NaN())
	defer a.Close()
	a.SetValue(1, 2.5)
	a.SetValue(4, -3.5)

	got, ok := BoundsOf(a, 0, 5, WithThreshold(2))
	require.True(t, ok)
	assert.Equal(t, -3.5, got.Min)
	assert.Equal(t, 2.5, got.Max)
}

func TestBoundsAllNullIsAbsent(t *testing.T) {
	a := dense.NewFloat64(128, math.NaN())
	defer a.Close()

	_, ok := BoundsOf(a, 0, 127, WithThreshold(8))
	assert.False(t, ok)
}

func TestBoundsBool(t *testing.T) {
	a := dense.NewBool(10, false)
	defer a.Close()

	got, ok := BoundsOf(a, 0, 9)
	require.True(t, ok)
	assert.Equal(t, false, got.Min)
	assert.Equal(t, false, got.Max)

	a.SetValue(7, true)
	got, ok = BoundsOf(a, 0, 9, WithThreshold(3))
	require.True(t, ok)
	assert.Equal(t, false, got.Min)
	assert.Equal(t, true, got.Max)
}

func TestBoundsCodedDecodesWinnersOnly(t *testing.T) {
	table := coding.LocalDateCoding{}
	backing := dense.NewInt64(5, table.NullCode())
	a, err := coded.NewInt64(backing, table)
	require.NoError(t, err)
	defer a.Close()

	days := []interface{}{
		mustDate(2024, 6, 1),
		mustDate(2021, 1, 15),
		nil,
		mustDate(2030, 12, 31),
		mustDate(2022, 8, 9),
	}
	for i, d := range days {
		a.SetValue(i, d)
	}

	got, ok := BoundsOf(a, 0, 4, WithThreshold(2))
	require.True(t, ok)
	assert.Equal(t, days[1], got.Min)
	assert.Equal(t, days[3], got.Max)
}

func TestBoundsZonedOrdersOnInstant(t *testing.T) {
	a := dense.NewZoned(3, nil)
	defer a.Close()

	east, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 1, 12, 0, 0, 0, east)
	a.SetValue(0, late)
	a.SetValue(2, early)

	got, ok := BoundsOf(a, 0, 2)
	require.True(t, ok)
	min, ok := got.Min.(time.Time)
	require.True(t, ok)
	assert.True(t, early.Equal(min))
	max, ok := got.Max.(time.Time)
	require.True(t, ok)
	assert.True(t, late.Equal(max))
}

func TestBoundsGenericString(t *testing.T) {
	a := sparse.NewString(5, "")
	defer a.Close()
	a.SetValue(1, "pear")
	a.SetValue(3, "apple")

	got, ok := BoundsOf(a, 0, 4, WithThreshold(1))
	require.True(t, ok)
	assert.Equal(t, "", got.Min)
	assert.Equal(t, "pear", got.Max)
}

func TestCountWithPredicateHelpers(t *testing.T) {
	a := sparse.NewFloat64(8, math.NaN())
	defer a.Close()
	a.SetValue(2, 1.5)
	a.SetValue(5, 1.5)
	a.SetValue(6, 9.0)

	assert.Equal(t, 3, Count(a, 0, 7, NotNull(), WithThreshold(2)))
	assert.Equal(t, 2, Count(a, 0, 7, EqualTo(1.5), WithThreshold(3)))
}

func TestThresholdFromConfig(t *testing.T) {
	cfg := &config.StorageConfig{SplitThreshold: 16}
	rng := rand.New(rand.NewSource(3))
	a := randomInts(t, rng, 1_000)
	defer a.Close()

	wantMin, wantMax := sequentialIntBounds(a, 0, 999)
	got, ok := BoundsOf(a, 0, 999, WithConfig(cfg))
	require.True(t, ok)
	assert.Equal(t, wantMin, got.Min)
	assert.Equal(t, wantMax, got.Max)
}

func TestOutOfRangePanics(t *testing.T) {
	a := dense.NewInt(4, 0)
	defer a.Close()

	assert.Panics(t, func() { BoundsOf(a, 0, 4) })
	assert.Panics(t, func() { Count(a, -1, 2, NotNull()) })
}

func mustDate(y int, m time.Month, d int) interface{} {
	return civil.Date{Year: y, Month: m, Day: d}
}
