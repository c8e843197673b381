package workspacefinder

import (
	"path/filepath"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/config"
)

// ConfigFileName marks a workspace root.
const ConfigFileName = "rashi.yaml"

// LoadConfig loads rashi.yaml (or rashi.yml) from the workspace root and
// applies defaults. Relative ephemeris and charts paths are resolved against
// root.
func LoadConfig(root string) (domain.Config, error) {
	path := NewFinder().ConfigPath(root)
	if path == "" {
		path = filepath.Join(root, ConfigFileName)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	if p := cfg.Ephemeris.Path; p != "" && !filepath.IsAbs(p) {
		cfg.Ephemeris.Path = filepath.Join(root, p)
	}
	if p := cfg.Paths.ChartsDir; p != "" && !filepath.IsAbs(p) {
		cfg.Paths.ChartsDir = filepath.Join(root, p)
	}
	return cfg, nil
}
