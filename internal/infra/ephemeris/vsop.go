package ephemeris

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/soniakeys/meeus/v3/planetposition"
)

// VSOP87Marker is the file whose presence in the ephemeris directory
// switches planets from Keplerian elements to VSOP87 series.
const VSOP87Marker = "VSOP87B.ear"

var vsopBodies = map[domain.OracleCode]int{
	domain.CodeMercury: planetposition.Mercury,
	domain.CodeVenus:   planetposition.Venus,
	domain.CodeMars:    planetposition.Mars,
	domain.CodeJupiter: planetposition.Jupiter,
	domain.CodeSaturn:  planetposition.Saturn,
}

// vsopSet holds the VSOP87B series of Earth and the five planets.
type vsopSet struct {
	earth   *planetposition.V87Planet
	planets map[domain.OracleCode]*planetposition.V87Planet
}

// loadVSOP loads the series from dir. It returns nil, nil when dir carries
// no VSOP87 files.
func loadVSOP(dir string) (*vsopSet, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(filepath.Join(dir, VSOP87Marker)); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	earth, err := planetposition.LoadPlanetPath(planetposition.Earth, dir)
	if err != nil {
		return nil, invalidData(dir, VSOP87Marker, err)
	}
	set := &vsopSet{earth: earth, planets: make(map[domain.OracleCode]*planetposition.V87Planet, len(vsopBodies))}
	for code, ibody := range vsopBodies {
		p, err := planetposition.LoadPlanetPath(ibody, dir)
		if err != nil {
			return nil, invalidData(dir, "VSOP87B", err)
		}
		set.planets[code] = p
	}
	return set, nil
}

// earthPosition is the heliocentric position of Earth, equinox of date.
func (s *vsopSet) earthPosition(jde float64) vec3 {
	return spherical(s.earth.Position(jde))
}

// geocentric returns the geometric geocentric longitude of date, in degrees.
func (s *vsopSet) geocentric(code domain.OracleCode, jde float64) (float64, bool) {
	p, ok := s.planets[code]
	if !ok {
		return 0, false
	}
	return spherical(p.Position(jde)).sub(s.earthPosition(jde)).longitude(), true
}
