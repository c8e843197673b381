package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/rashi/internal/domain"
)

// LoadConfig reads and validates a rashi.yaml file.
func LoadConfig(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return ParseConfig(path, b)
}

// ParseConfig decodes raw YAML; path is only used in errors.
func ParseConfig(path string, b []byte) (domain.Config, error) {
	var dto YAMLWorkspace
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return MapConfig(path, dto)
}
