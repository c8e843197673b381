// Package ephemeris implements the built-in analytic ephemeris oracle.
//
// The Moon and Rahu come from the Meeus lunar theory. Planets come from
// VSOP87B series when the ephemeris directory carries them, otherwise from
// Keplerian elements, which are good to a few arc-minutes for 1800-2050.
package ephemeris

import (
	"context"
	"fmt"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
	"github.com/soniakeys/meeus/v3/moonposition"
)

// speedStep is the half-width, in days, of the central difference used for speed.
const speedStep = 0.5

// Analytic is an EphemerisOracle backed by the loaded Tables.
type Analytic struct {
	tables *Tables
}

var _ ports.EphemerisOracle = (*Analytic)(nil)

// NewAnalytic initialises the process-wide tables from path (once) and
// returns an oracle over them.
func NewAnalytic(path string) (*Analytic, error) {
	t, err := Init(path)
	if err != nil {
		return nil, err
	}
	return &Analytic{tables: t}, nil
}

// NewAnalyticFromTables builds an oracle over explicitly loaded tables.
func NewAnalyticFromTables(t *Tables) *Analytic {
	return &Analytic{tables: t}
}

func (a *Analytic) Name() string { return "analytic" }

// Tables returns the data set the oracle computes from.
func (a *Analytic) Tables() *Tables { return a.tables }

func (a *Analytic) JulianDay(year, month, day int, hour float64) float64 {
	return JulianDay(year, month, day, hour)
}

func (a *Analytic) Calc(ctx context.Context, jdUT float64, code domain.OracleCode, mode domain.SiderealMode) (domain.Position, error) {
	if err := ctx.Err(); err != nil {
		return domain.Position{}, err
	}

	lon, err := a.sidereal(jdUT, code, mode)
	if err != nil {
		return domain.Position{}, err
	}
	before, _ := a.sidereal(jdUT-speedStep, code, mode)
	after, _ := a.sidereal(jdUT+speedStep, code, mode)
	speed := domain.WrapDelta(after-before) / (2 * speedStep)

	return domain.NewPosition(lon, speed), nil
}

func (a *Analytic) sidereal(jdUT float64, code domain.OracleCode, mode domain.SiderealMode) (float64, error) {
	jde := julianEphemerisDay(jdUT)
	trop, err := a.tropical(code, jde)
	if err != nil {
		return 0, err
	}
	return domain.Normalize360(trop - Ayanamsa(mode, (jde-j2000)/daysPerCentury)), nil
}

// tropical returns the geocentric ecliptic longitude of date in degrees.
func (a *Analytic) tropical(code domain.OracleCode, jde float64) (float64, error) {
	switch code {
	case domain.CodeMoon:
		lon, _, _ := moonposition.Position(jde)
		return lon.Deg(), nil
	case domain.CodeMeanNode:
		return moonposition.Node(jde).Deg(), nil
	}

	if v := a.tables.vsop; v != nil {
		if code == domain.CodeSun {
			return v.earthPosition(jde).neg().longitude(), nil
		}
		if lon, ok := v.geocentric(code, jde); ok {
			return lon, nil
		}
		return 0, unsupported(code)
	}

	t := (jde - j2000) / daysPerCentury
	earth := heliocentric(a.tables.EMB, t)
	if code == domain.CodeSun {
		return earth.neg().longitude() + precession(t), nil
	}
	orbit, ok := a.tables.Orbits[code]
	if !ok {
		return 0, unsupported(code)
	}
	return heliocentric(orbit, t).sub(earth).longitude() + precession(t), nil
}

func unsupported(code domain.OracleCode) error {
	return &domain.OpError{
		Op:   "ephemeris.calc",
		Kind: domain.KindOracle,
		Err:  fmt.Errorf("%w: code %d", domain.ErrUnsupportedBody, code),
	}
}
