package ephemeris

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/rashi/internal/domain"
	"gopkg.in/yaml.v3"
)

// PlanetsFile is the orbital elements file expected inside the ephemeris directory.
const PlanetsFile = "planets.yaml"

//go:embed data/*.yaml
var dataFS embed.FS

// DataFS exposes the embedded data files (used by `rashi init`).
func DataFS() fs.FS {
	sub, _ := fs.Sub(dataFS, "data")
	return sub
}

// Element is an orbital element: value at epoch and rate per Julian century.
type Element []float64

func (e Element) at(t float64) float64 { return e[0] + e[1]*t }

func (e Element) valid() bool {
	return len(e) == 2 && finite(e[0]) && finite(e[1])
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Orbit holds the Keplerian elements of one heliocentric orbit.
type Orbit struct {
	A    Element `yaml:"a"`
	E    Element `yaml:"e"`
	I    Element `yaml:"i"`
	L    Element `yaml:"l"`
	Peri Element `yaml:"peri"`
	Node Element `yaml:"node"`
}

func (o Orbit) complete() bool {
	return o.A.valid() && o.E.valid() && o.I.valid() && o.L.valid() && o.Peri.valid() && o.Node.valid()
}

type planetsFile struct {
	Format string           `yaml:"format"`
	Epoch  float64          `yaml:"epoch"`
	Bodies map[string]Orbit `yaml:"bodies"`
}

// Tables is the parsed ephemeris data set.
type Tables struct {
	Source string
	Epoch  float64
	Orbits map[domain.OracleCode]Orbit
	EMB    Orbit
	// Theory names the planetary model: "kepler" or "vsop87".
	Theory string
	vsop   *vsopSet
}

var orbitKeys = map[string]domain.OracleCode{
	"mercury": domain.CodeMercury,
	"venus":   domain.CodeVenus,
	"mars":    domain.CodeMars,
	"jupiter": domain.CodeJupiter,
	"saturn":  domain.CodeSaturn,
}

// LoadTables reads the element file from dir, plus VSOP87B series when dir
// carries them. An empty dir loads the embedded copies.
func LoadTables(dir string) (*Tables, error) {
	var fsys fs.FS
	source := "embedded"
	embedded := strings.TrimSpace(dir) == ""
	if embedded {
		fsys = DataFS()
	} else {
		source = filepath.Clean(dir)
		fsys = os.DirFS(source)
	}

	var pf planetsFile
	if err := readYAML(fsys, source, PlanetsFile, &pf); err != nil {
		return nil, err
	}

	t := &Tables{
		Source: source,
		Epoch:  pf.Epoch,
		Orbits: make(map[domain.OracleCode]Orbit, len(orbitKeys)),
		Theory: "kepler",
	}
	if !finite(t.Epoch) {
		return nil, invalidData(source, PlanetsFile, errors.New("epoch: not a finite number"))
	}
	if t.Epoch == 0 {
		t.Epoch = j2000
	}

	emb, ok := pf.Bodies["emb"]
	if !ok {
		return nil, invalidData(source, PlanetsFile, errors.New("missing bodies.emb"))
	}
	if !emb.complete() {
		return nil, invalidData(source, PlanetsFile, errors.New("bodies.emb: each element needs finite [value, rate]"))
	}
	t.EMB = emb

	for key, code := range orbitKeys {
		o, ok := pf.Bodies[key]
		if !ok {
			return nil, invalidData(source, PlanetsFile, fmt.Errorf("missing bodies.%s", key))
		}
		if !o.complete() {
			return nil, invalidData(source, PlanetsFile, fmt.Errorf("bodies.%s: each element needs finite [value, rate]", key))
		}
		if o.A[0] <= 0 || o.E[0] < 0 || o.E[0] >= 1 {
			return nil, invalidData(source, PlanetsFile, fmt.Errorf("bodies.%s: implausible orbit a=%v e=%v", key, o.A[0], o.E[0]))
		}
		t.Orbits[code] = o
	}

	if !embedded {
		set, err := loadVSOP(source)
		if err != nil {
			return nil, err
		}
		if set != nil {
			t.vsop = set
			t.Theory = "vsop87"
		}
	}
	return t, nil
}

func readYAML(fsys fs.FS, source, name string, out any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return &domain.OpError{
			Op:   "ephemeris.load",
			Kind: domain.KindNotFound,
			Path: filepath.Join(source, name),
			Err:  err,
		}
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return invalidData(source, name, err)
	}
	return nil
}

func invalidData(source, name string, err error) error {
	return &domain.OpError{
		Op:   "ephemeris.load",
		Kind: domain.KindInvalidConfig,
		Path: filepath.Join(source, name),
		Err:  err,
	}
}
