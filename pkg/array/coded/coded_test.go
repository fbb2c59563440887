package coded

import (
	"bytes"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/array/sparse"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/compress"
)

func newCurrencyArray(t *testing.T, length int) *Int {
	t.Helper()
	a, err := NewInt(dense.NewInt(length, coding.NullCodeInt), coding.CurrencyCoding{})
	require.NoError(t, err)
	return a
}

func TestCurrencyRoundTrip(t *testing.T) {
	a := newCurrencyArray(t, 3)
	require.True(t, a.IsNull(0))
	require.Equal(t, array.KindCodedInt, a.Kind())

	a.SetValue(1, currency.EUR)
	got, ok := a.Value(1).(currency.Unit)
	require.True(t, ok)
	assert.Equal(t, currency.EUR, got)
	assert.True(t, a.IsEqualTo(1, currency.EUR))
	assert.False(t, a.IsEqualTo(1, currency.USD))
}

func TestWrongElementTypePanics(t *testing.T) {
	a := newCurrencyArray(t, 2)
	assert.Panics(t, func() { a.SetValue(0, "EUR") })
}

func TestBackingKindChecked(t *testing.T) {
	_, err := NewInt(dense.NewInt64(2, 0), coding.CurrencyCoding{})
	assert.Error(t, err)

	_, err = NewInt64(dense.NewInt(2, 0), coding.LocalDateCoding{})
	assert.Error(t, err)
}

func TestEnumOverSparseCodes(t *testing.T) {
	table, err := coding.NewEnumCoding("red", "green", "blue")
	require.NoError(t, err)

	a, err := NewInt(sparse.NewInt(100, coding.NullCodeInt), table)
	require.NoError(t, err)
	require.Equal(t, float64(0), a.LoadFactor())

	a.SetValue(7, "green")
	assert.Equal(t, "green", a.Value(7))
	assert.InDelta(t, 0.01, a.LoadFactor(), 1e-9)

	assert.Panics(t, func() { a.SetValue(8, "purple") })
}

func TestLocalDateSortAndSearch(t *testing.T) {
	table := coding.LocalDateCoding{}
	a, err := NewInt64(dense.NewInt64(4, coding.NullCodeLong), table)
	require.NoError(t, err)

	dates := []civil.Date{
		{Year: 2024, Month: 3, Day: 15},
		{Year: 2023, Month: 1, Day: 1},
		{Year: 2024, Month: 12, Day: 31},
	}
	for i, d := range dates {
		a.SetValue(i, d)
	}

	// date codes are monotonic, so code order is date order; the null at
	// index 3 sorts first via the sentinel
	a.Sort(0, a.Length(), 1)
	require.True(t, a.IsNull(0))
	assert.Equal(t, dates[1], a.Value(1))
	assert.Equal(t, dates[0], a.Value(2))
	assert.Equal(t, dates[2], a.Value(3))

	assert.Equal(t, 2, a.BinarySearch(0, a.Length(), dates[0]))
	missing := civil.Date{Year: 2020, Month: 6, Day: 6}
	assert.True(t, a.BinarySearch(0, a.Length(), missing) < 0)
}

func TestUpdateCopiesCodesForSameTable(t *testing.T) {
	table, err := coding.NewEnumCoding("a", "b")
	require.NoError(t, err)
	src, err := NewInt(dense.NewInt(2, coding.NullCodeInt), table)
	require.NoError(t, err)
	src.SetValue(0, "b")

	dst, err := NewInt(dense.NewInt(3, coding.NullCodeInt), table)
	require.NoError(t, err)
	dst.Update(src, []int{0}, []int{2})
	assert.Equal(t, "b", dst.Value(2))
}

func TestSnapshotRestoreEnum(t *testing.T) {
	table, err := coding.NewEnumCoding("low", "mid", "high")
	require.NoError(t, err)
	a, err := NewInt(dense.NewInt(5, coding.NullCodeInt), table)
	require.NoError(t, err)
	a.SetValue(0, "high")
	a.SetValue(3, "low")

	var buf bytes.Buffer
	require.NoError(t, a.Snapshot(&buf, compress.LZ4, compress.Default))

	b, err := RestoreInt(&buf)
	require.NoError(t, err)
	require.Equal(t, 5, b.Length())
	assert.Equal(t, "high", b.Value(0))
	assert.True(t, b.IsNull(1))
	assert.Equal(t, "low", b.Value(3))
}

func TestSnapshotRestoreLocalDate(t *testing.T) {
	a, err := NewInt64(dense.NewInt64(3, coding.NullCodeLong), coding.LocalDateCoding{})
	require.NoError(t, err)
	d := civil.Date{Year: 2025, Month: 7, Day: 4}
	a.SetValue(1, d)

	var buf bytes.Buffer
	require.NoError(t, a.Snapshot(&buf, compress.Zstd, compress.Default))

	b, err := RestoreInt64(&buf)
	require.NoError(t, err)
	assert.True(t, b.IsNull(0))
	assert.Equal(t, d, b.Value(1))
}

func TestSnapshotWidthMismatch(t *testing.T) {
	a := newCurrencyArray(t, 2)
	var buf bytes.Buffer
	require.NoError(t, a.Snapshot(&buf, compress.None, compress.Default))

	_, err := RestoreInt64(&buf)
	assert.Error(t, err)
}

func TestRawCodeFastPath(t *testing.T) {
	table := coding.YearCoding{}
	a, err := NewInt(dense.NewInt(2, coding.NullCodeInt), table)
	require.NoError(t, err)

	a.SetValue(0, 1999)
	assert.Equal(t, int32(1999), a.Int(0))
	assert.Equal(t, coding.NullCodeInt, a.Int(1))

	a.SetInt(1, 2024)
	assert.Equal(t, 2024, a.Value(1))
}
