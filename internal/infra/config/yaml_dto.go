package config

// YAMLWorkspace is the on-disk shape of rashi.yaml.
type YAMLWorkspace struct {
	Rashi YAMLRashi `yaml:"rashi"`
}

type YAMLRashi struct {
	Ephemeris YAMLEphemeris `yaml:"ephemeris"`
	Horizons  YAMLHorizons  `yaml:"horizons"`
	Input     YAMLInput     `yaml:"input"`
	Chart     YAMLChart     `yaml:"chart"`
	Paths     YAMLPaths     `yaml:"paths"`
}

type YAMLEphemeris struct {
	Path         *string `yaml:"path"`
	Oracle       string  `yaml:"oracle"`
	SiderealMode string  `yaml:"sidereal_mode"`
	Concurrency  *int    `yaml:"concurrency"`
}

type YAMLHorizons struct {
	URL           string   `yaml:"url"`
	RatePerSecond *float64 `yaml:"rate_per_second"`
	Timeout       string   `yaml:"timeout"`
}

type YAMLInput struct {
	Timezone string `yaml:"timezone"`
}

type YAMLChart struct {
	Size       *int   `yaml:"size"`
	StackOrder string `yaml:"stack_order"`
}

type YAMLPaths struct {
	ChartsDir string `yaml:"charts_dir"`
}
