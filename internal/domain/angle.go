package domain

import (
	"fmt"
	"math"
)

// Normalize360 maps any angle in degrees into [0, 360).
func Normalize360(x float64) float64 {
	a := math.Mod(x, 360.0)
	if a < 0 {
		a += 360.0
	}
	// -tiny + 360 rounds to exactly 360 in float64.
	if a >= 360.0 {
		a = 0
	}
	return a
}

// WrapDelta maps an angular difference into (-180, 180].
func WrapDelta(d float64) float64 {
	d = Normalize360(d)
	if d > 180 {
		d -= 360
	}
	return d
}

// HouseIndex returns the house containing longitude lon.
// Exact multiples of 30° belong to the house that starts there.
func HouseIndex(lon float64) House {
	return House(int(math.Floor(Normalize360(lon) / HouseSpan)))
}

// DegreesInHouse is the offset of lon from the start of its house, in [0, 30).
func DegreesInHouse(lon float64) float64 {
	return Normalize360(lon) - HouseIndex(lon).StartDegree()
}

// DegMin splits a non-negative degree value into whole degrees and rounded minutes.
// A minute value that rounds up to 60 carries into the next degree.
func DegMin(x float64) (deg int, min int) {
	deg = int(math.Floor(x))
	min = int(math.Round((x - float64(deg)) * 60))
	if min == 60 {
		deg++
		min = 0
	}
	return deg, min
}

// FormatDegMin renders x as "D° MM'".
func FormatDegMin(x float64) string {
	d, m := DegMin(x)
	return fmt.Sprintf("%d° %02d'", d, m)
}

// InHouseDegMin is DegMin for an offset inside a house. A carry that would
// reach the next house's start is held at 29° 59'.
func InHouseDegMin(x float64) (deg int, min int) {
	deg, min = DegMin(x)
	if deg >= int(HouseSpan) {
		return int(HouseSpan) - 1, 59
	}
	return deg, min
}

// FormatInHouse renders an in-house offset as "D° MM'".
func FormatInHouse(x float64) string {
	d, m := InHouseDegMin(x)
	return fmt.Sprintf("%d° %02d'", d, m)
}
