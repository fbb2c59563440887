//go:build linux || darwin

package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegion(t *testing.T, size int64) *Region {
	t.Helper()
	file, err := os.Create(filepath.Join(t.TempDir(), "region.bin"))
	require.NoError(t, err)
	region, err := Map(file, size)
	require.NoError(t, err)
	t.Cleanup(func() { _ = region.Close() })
	return region
}

func TestMapAndWrite(t *testing.T) {
	region := newTestRegion(t, 4096)
	data := region.Bytes()
	require.Len(t, data, 4096)

	data[0] = 0xAB
	data[4095] = 0xCD
	require.NoError(t, region.Sync())

	onDisk, err := os.ReadFile(region.Name())
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), onDisk[0])
	assert.Equal(t, byte(0xCD), onDisk[4095])
}

func TestRemapPreservesContent(t *testing.T) {
	region := newTestRegion(t, 1024)
	for i := range region.Bytes() {
		region.Bytes()[i] = byte(i % 251)
	}

	require.NoError(t, region.Remap(8192))
	require.Len(t, region.Bytes(), 8192)

	for i := 0; i < 1024; i++ {
		require.Equal(t, byte(i%251), region.Bytes()[i], "byte %d", i)
	}
	// newly exposed tail is zero-filled
	for i := 1024; i < 8192; i++ {
		require.Zero(t, region.Bytes()[i], "byte %d", i)
	}
}

func TestRemapShrinkIsNoop(t *testing.T) {
	region := newTestRegion(t, 4096)
	require.NoError(t, region.Remap(1024))
	assert.Equal(t, int64(4096), region.Size())
}

func TestCloseIdempotent(t *testing.T) {
	region := newTestRegion(t, 1024)
	require.NoError(t, region.Close())
	require.NoError(t, region.Close())
	assert.Error(t, region.Remap(2048))
}

func TestMapRejectsNonPositiveSize(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "empty.bin"))
	require.NoError(t, err)
	defer file.Close()

	_, err = Map(file, 0)
	assert.Error(t, err)
}
