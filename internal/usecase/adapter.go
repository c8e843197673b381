package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

// AdapterConfig is fixed for the lifetime of an EphemerisAdapter.
type AdapterConfig struct {
	Mode domain.SiderealMode
}

// EphemerisAdapter turns civil instants into per-body oracle queries.
type EphemerisAdapter struct {
	oracle   ports.EphemerisOracle
	mode     domain.SiderealMode
	log      *slog.Logger
	observer ports.OracleObserver
}

var _ ports.PositionFetcher = (*EphemerisAdapter)(nil)

type AdapterOption func(*EphemerisAdapter)

func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *EphemerisAdapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithOracleObserver reports every oracle call, successful or not.
func WithOracleObserver(o ports.OracleObserver) AdapterOption {
	return func(a *EphemerisAdapter) { a.observer = o }
}

func NewEphemerisAdapter(oracle ports.EphemerisOracle, cfg AdapterConfig, opts ...AdapterOption) *EphemerisAdapter {
	a := &EphemerisAdapter{
		oracle: oracle,
		mode:   cfg.Mode,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *EphemerisAdapter) Mode() domain.SiderealMode { return a.mode }

// OracleName is the name of the underlying oracle.
func (a *EphemerisAdapter) OracleName() string { return a.oracle.Name() }

// JulianDay converts t, truncated to the minute in UTC, into oracle time.
func (a *EphemerisAdapter) JulianDay(t time.Time) float64 {
	u := t.UTC().Truncate(time.Minute)
	hour := float64(u.Hour()) + float64(u.Minute())/60
	return a.oracle.JulianDay(u.Year(), int(u.Month()), u.Day(), hour)
}

// FetchPosition asks the oracle for b at t. Errors end up in the result.
func (a *EphemerisAdapter) FetchPosition(ctx context.Context, t time.Time, b domain.Body) (res domain.PositionResult) {
	res.Body = b

	code, ok := b.OracleCode()
	if !ok {
		res.Err = fmt.Errorf("%s: %w", b.Name(), domain.ErrNoOracleCode)
		return res
	}

	jd := a.JulianDay(t)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Position = domain.Position{}
			res.Err = &domain.OpError{
				Op:   "ephemeris.fetch",
				Kind: domain.KindOracle,
				Body: b.String(),
				Err:  fmt.Errorf("oracle panic: %v", r),
			}
		}
		if a.observer != nil {
			a.observer.ObserveCall(a.oracle.Name(), b, time.Since(start), res.Err)
		}
		if res.Err != nil {
			a.log.Warn("ephemeris.fetch_failed",
				"body", b.String(),
				"oracle", a.oracle.Name(),
				"jd", jd,
				"error", res.Err,
			)
		}
	}()

	pos, err := a.oracle.Calc(ctx, jd, code, a.mode)
	if err != nil {
		res.Err = err
		return res
	}
	if !isFinite(pos.Longitude) || !isFinite(pos.Speed) {
		res.Err = &domain.OpError{
			Op:   "ephemeris.fetch",
			Kind: domain.KindOracle,
			Body: b.String(),
			Err:  fmt.Errorf("non-finite position lon=%v speed=%v", pos.Longitude, pos.Speed),
		}
		return res
	}
	res.Position = domain.NewPosition(pos.Longitude, pos.Speed)
	return res
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
