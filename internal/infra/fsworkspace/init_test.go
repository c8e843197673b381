package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/ephemeris"
	"github.com/aalvaropc/rashi/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "rashi.yaml"))
	assertFileExists(t, filepath.Join(tmp, "ephe", ephemeris.PlanetsFile))
	assertFileExists(t, filepath.Join(tmp, "charts"))
	assertFileExists(t, filepath.Join(tmp, ".rashi", "logs"))
}

func TestInitializer_Init_ProducesLoadableWorkspace(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Ephemeris.Path != filepath.Join(tmp, "ephe") {
		t.Fatalf("unexpected ephemeris path %q", cfg.Ephemeris.Path)
	}

	if _, err := ephemeris.LoadTables(cfg.Ephemeris.Path); err != nil {
		t.Fatalf("copied ephemeris data does not load: %v", err)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	rashiYAML := filepath.Join(tmp, "rashi.yaml")
	if err := os.WriteFile(rashiYAML, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing rashi.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(rashiYAML)
	if err != nil {
		t.Fatalf("read rashi.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected rashi.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(rashiYAML)
	if err != nil {
		t.Fatalf("read rashi.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "rashi:") {
		t.Fatalf("expected rashi.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
