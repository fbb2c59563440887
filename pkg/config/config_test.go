package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultGrowthFactor, cfg.GrowthFactor)
	assert.Equal(t, DefaultSplitThreshold, cfg.SplitThreshold)
	assert.Contains(t, cfg.BaseDir, DefaultDirName)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COLUMNSTORE_BASE_DIR", "/tmp/colstore-test")
	t.Setenv("COLUMNSTORE_SPLIT_THRESHOLD", "500")

	cfg := Default()
	assert.Equal(t, "/tmp/colstore-test", cfg.BaseDir)
	assert.Equal(t, 500, cfg.SplitThreshold)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.GrowthFactor = 1.0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SplitThreshold = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Snapshot.Compression = "brotli"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Snapshot.Compression = "zstd"
	assert.NoError(t, cfg.Validate())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columnstore.yaml")

	cfg := Default()
	cfg.BaseDir = dir
	cfg.Snapshot.Compression = "s2"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.BaseDir)
	assert.Equal(t, "s2", loaded.Snapshot.Compression)
}

func TestLoadEnvSubstitution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columnstore.yaml")
	t.Setenv("COLSTORE_TEST_DIR", dir)

	content := "base_dir: ${COLSTORE_TEST_DIR}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.BaseDir)
}

func TestEnsureBaseDir(t *testing.T) {
	cfg := Default()
	cfg.BaseDir = filepath.Join(t.TempDir(), "nested", "store")

	dir, err := cfg.EnsureBaseDir()
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
