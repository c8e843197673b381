package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

// Sky owns one oracle and builds snapshots for any sidereal mode over it.
// Adapters are cheap and created per call so the mode can vary per request.
type Sky struct {
	oracle      ports.EphemerisOracle
	log         *slog.Logger
	calls       ports.OracleObserver
	snapshots   ports.SnapshotObserver
	concurrency int
	defaultMode domain.SiderealMode
}

type SkyOption func(*Sky)

func WithSkyLogger(l *slog.Logger) SkyOption {
	return func(s *Sky) {
		if l != nil {
			s.log = l
		}
	}
}

func WithSkyObservers(calls ports.OracleObserver, snapshots ports.SnapshotObserver) SkyOption {
	return func(s *Sky) {
		s.calls = calls
		s.snapshots = snapshots
	}
}

func WithSkyConcurrency(n int) SkyOption {
	return func(s *Sky) { s.concurrency = n }
}

func WithDefaultMode(m domain.SiderealMode) SkyOption {
	return func(s *Sky) { s.defaultMode = m }
}

func NewSky(oracle ports.EphemerisOracle, opts ...SkyOption) *Sky {
	s := &Sky{
		oracle:      oracle,
		log:         slog.New(slog.DiscardHandler),
		concurrency: 1,
		defaultMode: domain.Lahiri,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sky) OracleName() string { return s.oracle.Name() }

func (s *Sky) DefaultMode() domain.SiderealMode { return s.defaultMode }

// Snapshot computes the sky at t in the given mode.
func (s *Sky) Snapshot(ctx context.Context, t time.Time, mode domain.SiderealMode) (domain.Snapshot, error) {
	adapterOpts := []AdapterOption{WithAdapterLogger(s.log)}
	if s.calls != nil {
		adapterOpts = append(adapterOpts, WithOracleObserver(s.calls))
	}
	adapter := NewEphemerisAdapter(s.oracle, AdapterConfig{Mode: mode}, adapterOpts...)

	buildOpts := []BuildOption{WithConcurrency(s.concurrency)}
	if s.snapshots != nil {
		buildOpts = append(buildOpts, WithSnapshotObserver(s.snapshots))
	}

	start := time.Now()
	snap, err := NewBuildSnapshot(adapter, buildOpts...).Execute(ctx, t)
	if err != nil {
		return snap, err
	}

	s.log.Info("sky.snapshot",
		"at", snap.At(),
		"mode", mode.String(),
		"oracle", s.oracle.Name(),
		"bodies", snap.Len(),
		"duration", time.Since(start),
	)
	if missing := snap.Missing(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, b := range missing {
			names = append(names, b.String())
		}
		s.log.Warn("sky.partial", "missing", names)
	}
	return snap, nil
}
