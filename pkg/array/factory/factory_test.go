package factory

import (
	"math"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/config"
)

func testConfig(t *testing.T) *config.StorageConfig {
	t.Helper()
	return &config.StorageConfig{
		BaseDir:      t.TempDir(),
		GrowthFactor: config.DefaultGrowthFactor,
	}
}

func TestPrimitiveDefaults(t *testing.T) {
	tests := []struct {
		typ  Type
		kind array.Kind
		def  interface{}
	}{
		{Bool, array.KindBool, false},
		{Int, array.KindInt, int32(0)},
		{Int64, array.KindInt64, int64(0)},
		{Float64, array.KindFloat64, math.NaN()},
		{String, array.KindString, ""},
	}
	for _, tc := range tests {
		t.Run(string(tc.typ), func(t *testing.T) {
			a, err := New(tc.typ, 4, nil)
			require.NoError(t, err)
			defer a.Close()

			assert.Equal(t, tc.kind, a.Kind())
			assert.Equal(t, 4, a.Length())
			if f, ok := tc.def.(float64); ok && math.IsNaN(f) {
				assert.True(t, a.IsNull(0))
			} else {
				assert.Equal(t, tc.def, a.Value(0))
			}
		})
	}
}

func TestEveryModeForInt(t *testing.T) {
	for _, mode := range []Mode{Dense, Sparse, Mapped} {
		t.Run(string(mode), func(t *testing.T) {
			a, err := New(Int, 8, int32(7), WithMode(mode), WithConfig(testConfig(t)))
			require.NoError(t, err)
			defer a.Close()

			assert.Equal(t, int32(7), a.Int(3))
			a.SetValue(3, int32(-1))
			assert.Equal(t, int32(-1), a.Int(3))
		})
	}
}

func TestSparseBoolUsesDenseSlots(t *testing.T) {
	a, err := New(Bool, 16, nil, WithMode(Sparse))
	require.NoError(t, err)
	defer a.Close()

	a.SetValue(5, true)
	assert.True(t, a.Bool(5))
	// dense storage reports full occupancy regardless of writes
	assert.Equal(t, 1.0, a.LoadFactor())
}

func TestMappedRejectsVariableWidth(t *testing.T) {
	for _, typ := range []Type{String, Object} {
		_, err := New(typ, 4, nil, WithMode(Mapped), WithConfig(testConfig(t)))
		assert.Error(t, err, string(typ))
	}
}

func TestUnknownTypeAndMode(t *testing.T) {
	_, err := New(Type("decimal128"), 4, nil)
	assert.Error(t, err)

	_, err = New(Int, 4, nil, WithMode(Mode("columnar")))
	assert.Error(t, err)
}

func TestNegativeLengthReturnsError(t *testing.T) {
	_, err := New(Int, -1, nil)
	require.Error(t, err)

	_, err = New(Float64, -1, nil, WithMode(Sparse))
	require.Error(t, err)
}

func TestCurrencyColumn(t *testing.T) {
	a, err := New(Currency, 3, currency.USD)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, array.KindCodedInt, a.Kind())
	assert.Equal(t, currency.USD, a.Value(1))

	a.SetValue(1, currency.EUR)
	assert.Equal(t, currency.EUR, a.Value(1))
	a.SetValue(1, nil)
	assert.True(t, a.IsNull(1))
}

func TestEnumNeedsValues(t *testing.T) {
	_, err := New(Enum, 4, nil)
	assert.Error(t, err)

	a, err := New(Enum, 4, "pending", WithEnumValues("pending", "active", "done"))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "pending", a.Value(2))
	a.SetValue(2, "done")
	assert.Equal(t, "done", a.Value(2))

	assert.Panics(t, func() { a.SetValue(2, "unheard-of") })
}

func TestEnumRejectsForeignDefault(t *testing.T) {
	_, err := New(Enum, 4, "missing", WithEnumValues("a", "b"))
	assert.Error(t, err)
}

func TestTemporalColumnsAcrossModes(t *testing.T) {
	day := civil.Date{Year: 2024, Month: time.March, Day: 9}
	for _, mode := range []Mode{Dense, Sparse, Mapped} {
		t.Run(string(mode), func(t *testing.T) {
			a, err := New(LocalDate, 4, nil, WithMode(mode), WithConfig(testConfig(t)))
			require.NoError(t, err)
			defer a.Close()

			assert.True(t, a.IsNull(0))
			a.SetValue(0, day)
			assert.Equal(t, day, a.Value(0))
		})
	}
}

func TestZonedDateTimeColumn(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ts := time.Date(2024, 7, 4, 12, 0, 0, 0, loc)

	a, err := New(Zoned, 2, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, array.KindZoned, a.Kind())
	a.SetValue(0, ts)
	got, ok := a.Value(0).(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(got))
	assert.Equal(t, loc.String(), got.Location().String())
}

func TestObjectColumnLocksElemType(t *testing.T) {
	type point struct{ X, Y int }

	a, err := New(Object, 3, point{1, 2}, WithElemType(reflect.TypeOf(point{})))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, point{1, 2}, a.Value(0))
	assert.Panics(t, func() { a.SetValue(0, "not a point") })
}

func TestInstantSparseKeepsLoadFactorLow(t *testing.T) {
	a, err := New(Instant, 1_000, nil, WithMode(Sparse))
	require.NoError(t, err)
	defer a.Close()

	a.SetValue(42, time.UnixMilli(1_700_000_000_000).UTC())
	assert.InDelta(t, 0.001, a.LoadFactor(), 1e-9)
}
