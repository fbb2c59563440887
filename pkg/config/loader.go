package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// Load reads a StorageConfig from a YAML file, substituting ${VAR}
// references with environment variable values before parsing.
func Load(filePath string) (*StorageConfig, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is caller-controlled
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "reading config file")
	}

	content := substituteEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "parsing config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a StorageConfig to a YAML file.
func Save(filePath string, cfg *StorageConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "marshaling config")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeResource, "writing config file")
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		value := os.Getenv(varName)
		content = content[:start] + value + content[end+1:]
	}
	return content
}
