package array_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/array/sparse"
	"github.com/tabular-io/columnstore/pkg/compress"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := dense.NewFloat64(6, math.NaN())
	defer src.Close()
	src.SetValue(1, 2.5)
	src.SetValue(4, -7.25)

	var buf bytes.Buffer
	require.NoError(t, array.WriteSnapshot(&buf, src, compress.Zstd, compress.Default))

	dst := dense.NewFloat64(0, math.NaN())
	defer dst.Close()
	require.NoError(t, array.ReadSnapshot(&buf, dst))

	require.Equal(t, src.Length(), dst.Length())
	for i := 0; i < src.Length(); i++ {
		if src.IsNull(i) {
			assert.True(t, dst.IsNull(i), "index %d", i)
			continue
		}
		assert.Equal(t, src.Value(i), dst.Value(i), "index %d", i)
	}
}

func TestSnapshotAcrossBackends(t *testing.T) {
	src := sparse.NewInt(1_000, 0)
	defer src.Close()
	src.SetValue(3, 42)
	src.SetValue(999, -1)

	var buf bytes.Buffer
	require.NoError(t, array.WriteSnapshot(&buf, src, compress.LZ4, compress.Fastest))

	dst := dense.NewInt(1_000, 0)
	defer dst.Close()
	require.NoError(t, array.ReadSnapshot(&buf, dst))

	assert.Equal(t, int32(42), dst.Int(3))
	assert.Equal(t, int32(-1), dst.Int(999))
	assert.Equal(t, int32(0), dst.Int(500))
}

func TestSnapshotKindMismatch(t *testing.T) {
	src := dense.NewInt(4, 0)
	defer src.Close()

	var buf bytes.Buffer
	require.NoError(t, array.WriteSnapshot(&buf, src, compress.None, compress.Default))

	dst := dense.NewInt64(4, 0)
	defer dst.Close()
	assert.Error(t, array.ReadSnapshot(&buf, dst))
}

func TestSnapshotVariableWidthStrings(t *testing.T) {
	src := dense.NewString(3, "")
	defer src.Close()
	src.SetValue(0, "alpha")
	src.SetValue(2, "gamma")

	var buf bytes.Buffer
	require.NoError(t, array.WriteSnapshot(&buf, src, compress.S2, compress.Default))

	dst := dense.NewString(3, "")
	defer dst.Close()
	require.NoError(t, array.ReadSnapshot(&buf, dst))

	assert.Equal(t, "alpha", dst.Value(0))
	assert.Equal(t, "", dst.Value(1))
	assert.Equal(t, "gamma", dst.Value(2))
}
