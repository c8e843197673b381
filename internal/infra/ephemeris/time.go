package ephemeris

import (
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
)

const (
	j2000           = 2451545.0
	daysPerCentury  = 36525.0
	daysPerYear     = 365.25
	secondsPerDay   = 86400.0
	arcsecPerDegree = 3600.0
)

// JulianDay converts a Gregorian calendar date with fractional UT hour to a
// Julian Day number.
func JulianDay(year, month, day int, hour float64) float64 {
	return julian.CalendarGregorianToJD(year, month, float64(day)+hour/24)
}

// observedDeltaT is TT-UT1 in seconds at the start of each year, from
// firstObservedYear on (IERS Bulletin A).
var observedDeltaT = []float64{
	62.97, 63.47, 63.83, 64.09, 64.30, 64.47, 64.57, 64.69, 64.85, 65.15, // 1998-2007
	65.46, 65.78, 66.07, 66.32, 66.60, 66.91, 67.28, 67.64, 68.10, 68.59, // 2008-2017
	68.97, 69.22, 69.36, 69.36, 69.29, 69.20, 69.18, 69.14, // 2018-2025
}

const (
	firstObservedYear = 1998
	lastObservedYear  = firstObservedYear + 27
	// forecast offsets converge on the long-term parabola by this year.
	forecastMergeYear = 2100
)

// deltaT estimates TT-UT in seconds.
func deltaT(jdUT float64) float64 {
	y := decimalYear(jdUT)
	switch {
	case y < 948:
		return deltat.PolyBefore948(y).Sec()
	case y < 1620:
		return deltat.Poly948to1600(y).Sec()
	case y < firstObservedYear:
		return deltat.Interp10A(jdUT).Sec()
	case y < lastObservedYear:
		i := int(y) - firstObservedYear
		f := y - float64(int(y))
		return observedDeltaT[i] + f*(observedDeltaT[i+1]-observedDeltaT[i])
	case y < forecastMergeYear:
		// The published polynomial overshoots the measured values, so the
		// gap at the end of the table is faded out linearly.
		last := observedDeltaT[len(observedDeltaT)-1]
		gap := last - deltat.PolyAfter2000(lastObservedYear).Sec()
		fade := (forecastMergeYear - y) / (forecastMergeYear - lastObservedYear)
		return deltat.PolyAfter2000(y).Sec() + gap*fade
	default:
		return deltat.PolyAfter2000(y).Sec()
	}
}

func decimalYear(jd float64) float64 {
	return 2000 + (jd-j2000)/daysPerYear
}

// julianEphemerisDay converts a UT Julian day to TT.
func julianEphemerisDay(jdUT float64) float64 {
	return jdUT + deltaT(jdUT)/secondsPerDay
}

// centuriesTT returns Julian centuries of TT since J2000 for a UT Julian day.
func centuriesTT(jdUT float64) float64 {
	return (julianEphemerisDay(jdUT) - j2000) / daysPerCentury
}

// precession is the general precession in longitude since J2000, in degrees.
func precession(t float64) float64 {
	return (5029.0966*t + 1.11113*t*t) / arcsecPerDegree
}
