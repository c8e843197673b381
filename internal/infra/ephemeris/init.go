package ephemeris

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aalvaropc/rashi/internal/domain"
)

var (
	initOnce   sync.Once
	initPath   string
	initTables *Tables
	initErr    error
)

// Init loads the process-wide ephemeris tables from path exactly once.
// Later calls return the same tables; asking for a different path after the
// first call is a configuration error.
func Init(path string) (*Tables, error) {
	path = cleanPath(path)
	initOnce.Do(func() {
		initPath = path
		initTables, initErr = LoadTables(path)
	})
	if path != initPath {
		return nil, &domain.OpError{
			Op:   "ephemeris.init",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("ephemeris already initialised from %q", displayPath(initPath)),
		}
	}
	return initTables, initErr
}

func cleanPath(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	return filepath.Clean(p)
}

func displayPath(p string) string {
	if p == "" {
		return "embedded"
	}
	return p
}
