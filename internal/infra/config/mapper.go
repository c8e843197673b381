package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
)

const maxConcurrency = 16

// MapConfig applies the parsed file on top of domain.DefaultConfig and
// validates every field that was set.
func MapConfig(path string, y YAMLWorkspace) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	r := y.Rashi

	if r.Ephemeris.Path != nil {
		cfg.Ephemeris.Path = strings.TrimSpace(*r.Ephemeris.Path)
	}
	if s := strings.TrimSpace(r.Ephemeris.Oracle); s != "" {
		kind, err := ParseOracleKind(s)
		if err != nil {
			return cfg, invalidField(path, "ephemeris.oracle", err.Error())
		}
		cfg.Ephemeris.Oracle = kind
	}
	if s := strings.TrimSpace(r.Ephemeris.SiderealMode); s != "" {
		mode, err := domain.ParseSiderealMode(s)
		if err != nil {
			return cfg, invalidField(path, "ephemeris.sidereal_mode", fmt.Sprintf("unknown mode %q", s))
		}
		cfg.Ephemeris.SiderealMode = mode
	}
	if r.Ephemeris.Concurrency != nil {
		n := *r.Ephemeris.Concurrency
		if n < 1 || n > maxConcurrency {
			return cfg, invalidField(path, "ephemeris.concurrency", fmt.Sprintf("must be between 1 and %d", maxConcurrency))
		}
		cfg.Ephemeris.Concurrency = n
	}

	if s := strings.TrimSpace(r.Horizons.URL); s != "" {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, invalidField(path, "horizons.url", "must be an absolute URL")
		}
		cfg.Horizons.URL = s
	}
	if r.Horizons.RatePerSecond != nil {
		if *r.Horizons.RatePerSecond <= 0 {
			return cfg, invalidField(path, "horizons.rate_per_second", "must be positive")
		}
		cfg.Horizons.RatePerSecond = *r.Horizons.RatePerSecond
	}
	if s := strings.TrimSpace(r.Horizons.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return cfg, invalidField(path, "horizons.timeout", fmt.Sprintf("invalid duration %q", s))
		}
		cfg.Horizons.Timeout = d
	}

	if s := strings.TrimSpace(r.Input.Timezone); s != "" {
		if _, err := time.LoadLocation(s); err != nil {
			return cfg, invalidField(path, "input.timezone", err.Error())
		}
		cfg.Input.Timezone = s
	}

	if r.Chart.Size != nil {
		if n := *r.Chart.Size; n < domain.MinChartSize || n > domain.MaxChartSize {
			return cfg, invalidField(path, "chart.size", fmt.Sprintf("must be between %d and %d", domain.MinChartSize, domain.MaxChartSize))
		}
		cfg.Chart.Size = *r.Chart.Size
	}
	if s := strings.TrimSpace(r.Chart.StackOrder); s != "" {
		order, err := ParseStackOrder(s)
		if err != nil {
			return cfg, invalidField(path, "chart.stack_order", err.Error())
		}
		cfg.Chart.StackOrder = order
	}

	if s := strings.TrimSpace(r.Paths.ChartsDir); s != "" {
		cfg.Paths.ChartsDir = s
	}

	return cfg, nil
}

func ParseOracleKind(s string) (domain.OracleKind, error) {
	switch k := domain.OracleKind(strings.ToLower(strings.TrimSpace(s))); k {
	case domain.OracleAnalytic, domain.OracleHorizons, domain.OracleAuto:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported oracle %q (expected analytic|horizons|auto)", s)
	}
}

func ParseStackOrder(s string) (domain.StackOrder, error) {
	switch o := domain.StackOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case domain.StackDiscovery, domain.StackLongitude:
		return o, nil
	default:
		return "", fmt.Errorf("unsupported stack order %q (expected discovery|longitude)", s)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
