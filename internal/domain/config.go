package domain

import "time"

// Config represents the rashi configuration loaded from rashi.yaml.
type Config struct {
	Ephemeris EphemerisConfig
	Horizons  HorizonsConfig
	Input     InputConfig
	Chart     ChartConfig
	Paths     PathsConfig
}

// OracleKind selects the ephemeris oracle backend.
type OracleKind string

const (
	OracleAnalytic OracleKind = "analytic"
	OracleHorizons OracleKind = "horizons"
	OracleAuto     OracleKind = "auto"
)

type EphemerisConfig struct {
	// Path is the directory holding planets.yaml and optional VSOP87B files.
	// Empty means the embedded data set.
	Path         string
	Oracle       OracleKind
	SiderealMode SiderealMode
	Concurrency  int
}

type HorizonsConfig struct {
	URL           string
	RatePerSecond float64
	Timeout       time.Duration
}

type InputConfig struct {
	Timezone string
}

// StackOrder controls how bodies sharing a house are stacked.
type StackOrder string

const (
	StackDiscovery StackOrder = "discovery"
	StackLongitude StackOrder = "longitude"
)

// Bounds for a rendered chart edge, in pixels.
const (
	MinChartSize = 200
	MaxChartSize = 4000
)

type ChartConfig struct {
	Size       int
	StackOrder StackOrder
}

type PathsConfig struct {
	ChartsDir string
}

// DefaultConfig provides sane defaults if rashi.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Ephemeris: EphemerisConfig{
			Oracle:       OracleAnalytic,
			SiderealMode: Lahiri,
			Concurrency:  1,
		},
		Horizons: HorizonsConfig{
			URL:           "https://ssd.jpl.nasa.gov/api/horizons.api",
			RatePerSecond: 2,
			Timeout:       20 * time.Second,
		},
		Input: InputConfig{
			Timezone: "Asia/Kolkata",
		},
		Chart: ChartConfig{
			Size:       800,
			StackOrder: StackDiscovery,
		},
		Paths: PathsConfig{
			ChartsDir: "charts",
		},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string
}
