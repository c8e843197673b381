package ephemeris

import "github.com/aalvaropc/rashi/internal/domain"

type ayanamsaDef struct {
	epochJD float64
	value   float64 // degrees at epoch
}

// Reference values follow the Swiss Ephemeris definitions of each mode.
var ayanamsas = map[domain.SiderealMode]ayanamsaDef{
	domain.Lahiri:       {epochJD: 2435553.5, value: 23.245524743},
	domain.Raman:        {epochJD: 2415020.0, value: 21.014440},
	domain.Krishnamurti: {epochJD: 2415020.0, value: 22.363889},
}

// Ayanamsa returns the sidereal offset in degrees for mode at the given
// Julian centuries TT since J2000.
func Ayanamsa(mode domain.SiderealMode, t float64) float64 {
	def, ok := ayanamsas[mode]
	if !ok {
		def = ayanamsas[domain.Lahiri]
	}
	t0 := (def.epochJD - j2000) / daysPerCentury
	return def.value + precession(t) - precession(t0)
}

// AyanamsaUT is Ayanamsa for a UT Julian day.
func AyanamsaUT(mode domain.SiderealMode, jdUT float64) float64 {
	return Ayanamsa(mode, centuriesTT(jdUT))
}
