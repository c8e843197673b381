package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"
)

type vec3 struct {
	X, Y, Z float64
}

func (v vec3) sub(u vec3) vec3 { return vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z} }

func (v vec3) neg() vec3 { return vec3{X: -v.X, Y: -v.Y, Z: -v.Z} }

// longitude is the ecliptic longitude of v in degrees, [0, 360).
func (v vec3) longitude() float64 {
	lon := unit.Angle(math.Atan2(v.Y, v.X)).Deg()
	if lon < 0 {
		lon += 360
	}
	return lon
}

// spherical converts ecliptic longitude, latitude and radius to a vector.
func spherical(l, b unit.Angle, r float64) vec3 {
	sl, cl := l.Sincos()
	sb, cb := b.Sincos()
	return vec3{X: r * cb * cl, Y: r * cb * sl, Z: r * sb}
}

// heliocentric returns the J2000 ecliptic position (au) of an orbit at t
// Julian centuries TT from J2000.
func heliocentric(o Orbit, t float64) vec3 {
	a := o.A.at(t)
	e := o.E.at(t)
	inc := unit.AngleFromDeg(o.I.at(t))
	peri := unit.AngleFromDeg(o.Peri.at(t))
	node := unit.AngleFromDeg(o.Node.at(t))
	m := unit.AngleFromDeg(math.Mod(o.L.at(t)-o.Peri.at(t), 360))

	E := kepler.Kepler3(e, m)
	sE, cE := E.Sincos()
	xp := a * (cE - e)
	yp := a * math.Sqrt(1-e*e) * sE

	sw, cw := (peri - node).Sincos()
	sn, cn := node.Sincos()
	si, ci := inc.Sincos()

	return vec3{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}
