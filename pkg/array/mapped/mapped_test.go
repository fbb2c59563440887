package mapped

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/config"
)

func testConfig(t *testing.T) *config.StorageConfig {
	t.Helper()
	return &config.StorageConfig{
		BaseDir:      t.TempDir(),
		GrowthFactor: config.DefaultGrowthFactor,
	}
}

func TestBoolStoresAndReads(t *testing.T) {
	a, err := NewBool(testConfig(t), 5, false)
	require.NoError(t, err)
	defer a.Close()

	a.SetBool(2, true)
	assert.True(t, a.Bool(2))
	assert.False(t, a.Bool(0))
	assert.Equal(t, array.KindBool, a.Kind())
}

func TestDefaultFillSurvivesMapping(t *testing.T) {
	a, err := NewInt(testConfig(t), 100, -7)
	require.NoError(t, err)
	defer a.Close()

	for _, i := range []int{0, 50, 99} {
		assert.Equal(t, int32(-7), a.Int(i))
	}
}

func TestCloseRemovesBackingFile(t *testing.T) {
	a, err := NewInt64(testConfig(t), 10, 0)
	require.NoError(t, err)
	path := a.Path()

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	require.NoError(t, a.Close())
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// idempotent
	assert.NoError(t, a.Close())
}

func TestPersistKeepsBackingFile(t *testing.T) {
	a, err := NewInt(testConfig(t), 4, 0)
	require.NoError(t, err)
	a.SetInt(1, 77)
	path := a.Path()

	require.NoError(t, a.Persist())
	require.NoError(t, a.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int32(77), array.GetInt32(raw[1*array.StrideInt:]))
}

func TestExpandRemapsAndFillsDefaults(t *testing.T) {
	a, err := NewInt(testConfig(t), 8, 3)
	require.NoError(t, err)
	defer a.Close()
	a.SetInt(5, 50)

	// past the initial capacity floor, forcing a remap
	a.Expand(1000)
	require.Equal(t, 1000, a.Length())
	assert.Equal(t, int32(50), a.Int(5))
	assert.Equal(t, int32(3), a.Int(8))
	assert.Equal(t, int32(3), a.Int(999))

	a.Expand(10)
	assert.Equal(t, 1000, a.Length())
}

func TestViewsShareMapping(t *testing.T) {
	a, err := NewFloat64(testConfig(t), 3, 0)
	require.NoError(t, err)
	defer a.Close()

	p := a.Parallel()
	require.True(t, p.IsParallel())
	p.SetFloat64(1, 2.5)
	assert.Equal(t, 2.5, a.Float64(1))
}

func TestCopyUsesSeparateFile(t *testing.T) {
	a, err := NewInt(testConfig(t), 3, 0)
	require.NoError(t, err)
	defer a.Close()
	a.SetInt(0, 9)

	b := a.Copy().(*Int)
	defer b.Close()
	require.NotEqual(t, a.Path(), b.Path())

	b.SetInt(0, 1)
	assert.Equal(t, int32(9), a.Int(0))
}

func TestStreamRoundTripAcrossBackends(t *testing.T) {
	m, err := NewBool(testConfig(t), 4, false)
	require.NoError(t, err)
	defer m.Close()
	m.SetBool(1, true)
	m.SetBool(3, true)

	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf, []int{0, 1, 2, 3}))

	d := dense.NewBool(4, false)
	require.NoError(t, d.Read(&buf, 4))
	for i := 0; i < 4; i++ {
		assert.Equal(t, m.Bool(i), d.Bool(i), "index %d", i)
	}
}

func TestSortAndBinarySearch(t *testing.T) {
	a, err := NewInt64(testConfig(t), 5, 0)
	require.NoError(t, err)
	defer a.Close()
	for i, v := range []int64{4, 1, 3, 0, 2} {
		a.SetInt64(i, v)
	}

	a.Sort(0, 5, 1)
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(i), a.Int64(i))
	}
	assert.Equal(t, 3, a.BinarySearch(0, 5, int64(3)))
}

func TestZonedRoundTrip(t *testing.T) {
	a, err := NewZoned(testConfig(t), 3, nil)
	require.NoError(t, err)
	defer a.Close()

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a.SetValue(1, stamp)
	require.True(t, a.IsNull(0))
	require.True(t, a.IsEqualTo(1, stamp))

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf, []int{0, 1, 2}))

	b, err := NewZoned(testConfig(t), 3, nil)
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Read(&buf, 3))

	assert.True(t, b.IsNull(0))
	gotMillis, gotZone := b.ZonedAt(1)
	wantMillis, wantZone := a.ZonedAt(1)
	assert.Equal(t, wantMillis, gotMillis)
	assert.Equal(t, wantZone, gotZone)
}

func TestUseAfterClosePanics(t *testing.T) {
	a, err := NewInt(testConfig(t), 2, 0)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.Panics(t, func() { a.Int(0) })
}
