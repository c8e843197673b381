package ports

import (
	"context"

	"github.com/aalvaropc/rashi/internal/domain"
)

// EphemerisOracle computes raw body positions. Implementations own the
// astronomy; callers only convert time and interpret the result.
type EphemerisOracle interface {
	// Name returns the oracle name for display/logging.
	Name() string

	// JulianDay converts a Gregorian civil date with fractional UT hour into
	// the oracle's continuous time scale.
	JulianDay(year, month, day int, hour float64) float64

	// Calc returns the sidereal ecliptic longitude and longitudinal speed of
	// the body identified by code at jdUT.
	Calc(ctx context.Context, jdUT float64, code domain.OracleCode, mode domain.SiderealMode) (domain.Position, error)
}
