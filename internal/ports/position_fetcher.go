package ports

import (
	"context"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
)

// PositionFetcher resolves one body at one instant. Failures are reported
// inside the result, never as a panic or a separate error.
type PositionFetcher interface {
	FetchPosition(ctx context.Context, t time.Time, b domain.Body) domain.PositionResult
	Mode() domain.SiderealMode
}

// SnapshotObserver is notified once per built snapshot.
type SnapshotObserver interface {
	ObserveSnapshot(s domain.Snapshot)
}
