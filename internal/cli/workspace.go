package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/config"
	"github.com/aalvaropc/rashi/internal/infra/ephemeris"
	"github.com/aalvaropc/rashi/internal/infra/export"
	"github.com/aalvaropc/rashi/internal/infra/horizons"
	"github.com/aalvaropc/rashi/internal/infra/metrics"
	"github.com/aalvaropc/rashi/internal/infra/workspacefinder"
	"github.com/aalvaropc/rashi/internal/ports"
	"github.com/aalvaropc/rashi/internal/usecase"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
)

// errNoWorkspace is returned by resolveWorkspaceRoot when no rashi.yaml was
// found and no --workspace was given.
var errNoWorkspace = errors.New("no rashi workspace")

type workspaceCtx struct {
	// root is empty when running on defaults outside any workspace.
	root string
	cfg  domain.Config
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if errors.Is(err, errNoWorkspace) {
		return &workspaceCtx{cfg: domain.DefaultConfig()}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{root: root, cfg: cfg}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if domain.IsKind(err, domain.KindNotFound) {
		return "", errNoWorkspace
	}
	if err != nil {
		return "", err
	}
	return root, nil
}

// location resolves the input time zone, preferring an explicit flag.
func (ws *workspaceCtx) location(tzFlag string) (*time.Location, error) {
	tz := strings.TrimSpace(tzFlag)
	if tz == "" {
		tz = ws.cfg.Input.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "cli.timezone",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: unknown time zone %q", domain.ErrInvalidConfig, tz),
		}
	}
	return loc, nil
}

// newOracle builds the configured oracle; kind overrides the config when
// non-empty.
func (ws *workspaceCtx) newOracle(kind string, log *slog.Logger) (ports.EphemerisOracle, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	k := ws.cfg.Ephemeris.Oracle
	if strings.TrimSpace(kind) != "" {
		parsed, err := config.ParseOracleKind(kind)
		if err != nil {
			return nil, err
		}
		k = parsed
	}

	hz := func() *horizons.Client {
		return horizons.New(horizons.Config{
			URL:           ws.cfg.Horizons.URL,
			RatePerSecond: ws.cfg.Horizons.RatePerSecond,
			Timeout:       ws.cfg.Horizons.Timeout,
		}, horizons.WithLogger(log))
	}

	local := func() (*ephemeris.Analytic, error) {
		a, err := ephemeris.NewAnalytic(ws.cfg.Ephemeris.Path)
		if err != nil {
			return nil, err
		}
		log.Debug("ephemeris.loaded", "source", a.Tables().Source, "theory", a.Tables().Theory)
		return a, nil
	}

	switch k {
	case domain.OracleHorizons:
		return hz(), nil
	case domain.OracleAuto:
		analytic, err := local()
		if err != nil {
			return nil, err
		}
		return ephemeris.NewFallback(hz(), analytic, log), nil
	default:
		return local()
	}
}

// newSky wires an oracle into the snapshot service. m may be nil.
func (ws *workspaceCtx) newSky(oracle ports.EphemerisOracle, mode domain.SiderealMode, log *slog.Logger, m *metrics.Oracle) *usecase.Sky {
	opts := []usecase.SkyOption{
		usecase.WithSkyLogger(log),
		usecase.WithSkyConcurrency(ws.cfg.Ephemeris.Concurrency),
		usecase.WithDefaultMode(mode),
	}
	if m != nil {
		opts = append(opts, usecase.WithSkyObservers(m, m))
	}
	return usecase.NewSky(oracle, opts...)
}

func (ws *workspaceCtx) layoutOptions() []layout.Option {
	return []layout.Option{layout.WithStackOrder(ws.cfg.Chart.StackOrder)}
}

// store returns the chart store, rooted at the workspace or the working
// directory when there is none.
func (ws *workspaceCtx) store() *export.Store {
	root := ws.root
	if root == "" {
		root = "."
	}
	return export.NewStore(root, ws.cfg, export.WithIndex(true))
}
