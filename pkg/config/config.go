// Package config provides the configuration for the columnstore engine.
//
// Settings are resolved in order of precedence: explicit struct values,
// COLUMNSTORE_* environment variables, then built-in defaults. The only
// setting most deployments touch is the base directory that memory-mapped
// arrays place their backing files under.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tabular-io/columnstore/pkg/errors"
)

const (
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. COLUMNSTORE_BASE_DIR, COLUMNSTORE_SPLIT_THRESHOLD.
	EnvPrefix = "COLUMNSTORE"

	// DefaultDirName is the dot-directory created under the user's home
	// directory when no base directory is configured.
	DefaultDirName = ".columnstore"

	// DefaultSplitThreshold is the range length below which parallel
	// reductions run sequentially.
	DefaultSplitThreshold = 100_000

	// DefaultGrowthFactor governs how much extra capacity a mapped array
	// reserves when it has to remap for growth.
	DefaultGrowthFactor = 1.5
)

// StorageConfig holds the engine-wide settings.
type StorageConfig struct {
	// BaseDir is the directory memory-mapped arrays create their backing
	// files under when the caller does not supply a path.
	BaseDir string `yaml:"base_dir" mapstructure:"base_dir"`

	// GrowthFactor is applied to a mapped array's capacity on expand to
	// amortize remapping cost. Must be > 1.
	GrowthFactor float64 `yaml:"growth_factor" mapstructure:"growth_factor"`

	// SplitThreshold is the default fork-join split threshold for
	// parallel reductions. Must be >= 1.
	SplitThreshold int `yaml:"split_threshold" mapstructure:"split_threshold"`

	// Snapshot controls array snapshot encoding.
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`

	// SyncInterval, when non-zero, is a hint for how often callers should
	// msync long-lived mapped arrays. Zero leaves flushing to the OS.
	SyncInterval time.Duration `yaml:"sync_interval" mapstructure:"sync_interval"`
}

// SnapshotConfig controls how array snapshots are encoded on disk.
type SnapshotConfig struct {
	// Compression names the codec applied to snapshot payloads:
	// "none", "gzip", "lz4", "s2" or "zstd".
	Compression string `yaml:"compression" mapstructure:"compression"`

	// Level is the compression level (1 fastest .. 9 best).
	Level int `yaml:"level" mapstructure:"level"`
}

// Default returns a StorageConfig populated with defaults and any
// COLUMNSTORE_* environment overrides applied.
func Default() *StorageConfig {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_dir", defaultBaseDir())
	v.SetDefault("growth_factor", DefaultGrowthFactor)
	v.SetDefault("split_threshold", DefaultSplitThreshold)
	v.SetDefault("snapshot.compression", "none")
	v.SetDefault("snapshot.level", 5)
	v.SetDefault("sync_interval", time.Duration(0))

	cfg := &StorageConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		// Unmarshal over defaults cannot fail for this struct shape;
		// fall back to the bare defaults if it somehow does.
		return &StorageConfig{
			BaseDir:        defaultBaseDir(),
			GrowthFactor:   DefaultGrowthFactor,
			SplitThreshold: DefaultSplitThreshold,
			Snapshot:       SnapshotConfig{Compression: "none", Level: 5},
		}
	}
	return cfg
}

// Validate checks the configuration for internal consistency.
func (c *StorageConfig) Validate() error {
	if c.BaseDir == "" {
		return errors.New(errors.ErrorTypeConfig, "base_dir must not be empty")
	}
	if c.GrowthFactor <= 1 {
		return errors.Newf(errors.ErrorTypeConfig, "growth_factor must be > 1, got %v", c.GrowthFactor)
	}
	if c.SplitThreshold < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "split_threshold must be >= 1, got %d", c.SplitThreshold)
	}
	switch c.Snapshot.Compression {
	case "", "none", "gzip", "lz4", "s2", "zstd":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown snapshot compression %q", c.Snapshot.Compression)
	}
	if c.Snapshot.Level < 0 || c.Snapshot.Level > 9 {
		return errors.Newf(errors.ErrorTypeConfig, "snapshot level must be in [0,9], got %d", c.Snapshot.Level)
	}
	return nil
}

// EnsureBaseDir creates the base directory if it does not exist and
// returns its absolute path.
func (c *StorageConfig) EnsureBaseDir() (string, error) {
	dir, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeConfig, "resolving base_dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeResource, "creating base_dir")
	}
	return dir, nil
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultDirName)
	}
	return filepath.Join(home, DefaultDirName)
}
