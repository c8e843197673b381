// Package horizons implements an ephemeris oracle over the JPL Horizons
// web API.
package horizons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/ephemeris"
	"github.com/aalvaropc/rashi/internal/infra/httpclient"
	"github.com/aalvaropc/rashi/internal/ports"
)

// speedStep matches the analytic oracle so both report comparable speeds.
const speedStep = 0.5

// commands maps oracle codes to Horizons target ids.
var commands = map[domain.OracleCode]string{
	domain.CodeSun:     "10",
	domain.CodeMoon:    "301",
	domain.CodeMercury: "199",
	domain.CodeVenus:   "299",
	domain.CodeMars:    "499",
	domain.CodeJupiter: "599",
	domain.CodeSaturn:  "699",
}

type Config struct {
	URL           string
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration

	// Breaker settings. Zero values get defaults.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = domain.DefaultConfig().Horizons.URL
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 2
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 3
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	return c
}

// Client is an EphemerisOracle that queries Horizons for observer ecliptic
// longitudes and applies the shared sidereal correction.
type Client struct {
	cfg     Config
	exec    *httpclient.Executor
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]float64]
	log     *slog.Logger
}

var _ ports.EphemerisOracle = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithExecutor replaces the HTTP executor, mostly for tests.
func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()

	c := &Client{
		cfg:     cfg,
		exec:    httpclient.NewExecutor(httpclient.WithTimeout(cfg.Timeout)),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:    "horizons",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("oracle.breaker", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *Client) Name() string { return "horizons" }

func (c *Client) JulianDay(year, month, day int, hour float64) float64 {
	return ephemeris.JulianDay(year, month, day, hour)
}

func (c *Client) Calc(ctx context.Context, jdUT float64, code domain.OracleCode, mode domain.SiderealMode) (domain.Position, error) {
	target, ok := commands[code]
	if !ok {
		return domain.Position{}, &domain.OpError{
			Op:   "horizons.calc",
			Kind: domain.KindOracle,
			Err:  fmt.Errorf("%w: code %d", domain.ErrUnsupportedBody, code),
		}
	}

	times := []float64{jdUT - speedStep, jdUT, jdUT + speedStep}
	lons, err := c.breaker.Execute(func() ([]float64, error) {
		return c.fetch(ctx, target, times)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
		}
		return domain.Position{}, &domain.OpError{
			Op:   "horizons.calc",
			Kind: domain.KindOracle,
			Err:  err,
		}
	}

	sid := make([]float64, len(lons))
	for i, lon := range lons {
		sid[i] = domain.Normalize360(lon - ephemeris.AyanamsaUT(mode, times[i]))
	}
	speed := domain.WrapDelta(sid[2]-sid[0]) / (2 * speedStep)
	return domain.NewPosition(sid[1], speed), nil
}

func (c *Client) fetch(ctx context.Context, target string, times []float64) ([]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := httpclient.BuildGet(ctx, c.cfg.URL, query(target, times))
	if err != nil {
		return nil, err
	}

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	c.log.Debug("horizons.response", "target", target, "status", resp.Status, "duration", resp.Duration)

	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("horizons: unexpected status %d", resp.Status)
	}
	if resp.Truncated {
		return nil, errors.New("horizons: response too large")
	}

	result, err := resultText(resp.BodyBytes)
	if err != nil {
		return nil, err
	}
	lons, err := parseLongitudes(result)
	if err != nil {
		return nil, err
	}
	if len(lons) != len(times) {
		return nil, fmt.Errorf("horizons: expected %d rows, got %d", len(times), len(lons))
	}
	return lons, nil
}

func query(target string, times []float64) url.Values {
	tlist := ""
	for i, jd := range times {
		if i > 0 {
			tlist += " "
		}
		tlist += "'" + strconv.FormatFloat(jd, 'f', 6, 64) + "'"
	}

	v := url.Values{}
	v.Set("format", "json")
	v.Set("COMMAND", "'"+target+"'")
	v.Set("OBJ_DATA", "NO")
	v.Set("MAKE_EPHEM", "YES")
	v.Set("EPHEM_TYPE", "OBSERVER")
	v.Set("CENTER", "'500@399'")
	v.Set("QUANTITIES", "'31'")
	v.Set("TLIST", tlist)
	v.Set("TLIST_TYPE", "JD")
	v.Set("TIME_TYPE", "UT")
	v.Set("CAL_FORMAT", "JD")
	v.Set("ANG_FORMAT", "DEG")
	v.Set("CSV_FORMAT", "YES")
	return v
}
