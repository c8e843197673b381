package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

// BuildSnapshot queries every observed body and assembles a Snapshot.
type BuildSnapshot struct {
	fetcher     ports.PositionFetcher
	concurrency int
	observer    ports.SnapshotObserver
}

type BuildOption func(*BuildSnapshot)

// WithConcurrency bounds the number of in-flight oracle calls. Values below
// one are treated as one (sequential).
func WithConcurrency(n int) BuildOption {
	return func(uc *BuildSnapshot) {
		if n < 1 {
			n = 1
		}
		uc.concurrency = n
	}
}

func WithSnapshotObserver(o ports.SnapshotObserver) BuildOption {
	return func(uc *BuildSnapshot) { uc.observer = o }
}

func NewBuildSnapshot(f ports.PositionFetcher, opts ...BuildOption) *BuildSnapshot {
	uc := &BuildSnapshot{fetcher: f, concurrency: 1}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute returns the snapshot for t. Per-body failures only shrink the
// snapshot; the returned error is non-nil only when ctx is done.
func (uc *BuildSnapshot) Execute(ctx context.Context, t time.Time) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	bodies := domain.ObservedBodies
	results := make([]domain.PositionResult, len(bodies))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, b := range bodies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = uc.fetcher.FetchPosition(ctx, t, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s := domain.NewSnapshot(t.UTC().Truncate(time.Minute), uc.fetcher.Mode(), results)
	if uc.observer != nil {
		uc.observer.ObserveSnapshot(s)
	}
	return s, nil
}
