package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/ephemeris"
	"github.com/aalvaropc/rashi/internal/infra/metrics"
	"github.com/aalvaropc/rashi/internal/infra/render"
	"github.com/aalvaropc/rashi/internal/usecase"
)

type slowOracle struct{}

func (slowOracle) Name() string { return "slow" }

func (slowOracle) JulianDay(y, m, d int, h float64) float64 { return ephemeris.JulianDay(y, m, d, h) }

func (slowOracle) Calc(ctx context.Context, _ float64, _ domain.OracleCode, _ domain.SiderealMode) (domain.Position, error) {
	<-ctx.Done()
	return domain.Position{}, errors.New("gave up")
}

func newTestRouter(t *testing.T) (http.Handler, *metrics.Oracle) {
	t.Helper()
	oracle, err := ephemeris.NewAnalytic("")
	require.NoError(t, err)

	m := metrics.NewOracle()
	sky := usecase.NewSky(oracle, usecase.WithSkyObservers(m, m), usecase.WithSkyConcurrency(4))

	ist := time.FixedZone("IST", 5*3600+30*60)

	return NewRouter(Config{Location: ist, ChartSize: 400}, Deps{
		Sky: sky,
		Chart: func(size int) *usecase.ExportChart {
			return usecase.NewExportChart(render.SVGRenderer{Options: render.SVGOptions{Size: size}}, nil)
		},
		Metrics: m.Handler(),
	}), m
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSkyEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(h, "/api/sky?date=2024-01-01&time=05:30&mode=lahiri")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Oracle   string `json:"oracle"`
		Snapshot struct {
			At     time.Time `json:"at"`
			Mode   string    `json:"sidereal_mode"`
			Bodies []struct {
				Body     string          `json:"body"`
				Position domain.Position `json:"position"`
			} `json:"bodies"`
		} `json:"snapshot"`
		Rows []domain.DisplayRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "analytic", resp.Oracle)
	assert.Equal(t, "lahiri", resp.Snapshot.Mode)
	assert.True(t, resp.Snapshot.At.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Len(t, resp.Snapshot.Bodies, domain.BodyCount)
	assert.Equal(t, "sun", resp.Snapshot.Bodies[0].Body)
	assert.Equal(t, "ketu", resp.Snapshot.Bodies[8].Body)
	assert.Len(t, resp.Rows, domain.BodyCount)
	assert.Equal(t, "☉ Sun", resp.Rows[0].Planet)
}

func TestSkyEndpoint_BadInput(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, target := range []string{
		"/api/sky?date=2023-02-30&time=10:00",
		"/api/sky?date=2024-01-01&time=10:00&mode=fagan",
		"/api/sky?tz=Nowhere/Land",
	} {
		rec := get(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"error"`, target)
	}
}

func TestChartEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(h, "/chart.svg?date=2024-01-01&time=05:30&size=300")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"), body[:40])
	assert.Contains(t, body, `width="300"`)
	assert.Contains(t, body, "Vrishchika")

	rec = get(h, "/chart.svg?size=5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status": "ok"`)

	_ = get(h, "/api/sky?date=2024-01-01&time=05:30")
	rec = get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rashi_oracle_calls_total{body="sun",oracle="analytic",result="ok"}`)
	assert.Contains(t, rec.Body.String(), "rashi_snapshot_bodies_count 1")
}

func TestSkyEndpoint_Timeout(t *testing.T) {
	sky := usecase.NewSky(slowOracle{}, usecase.WithSkyConcurrency(8))
	h := NewRouter(Config{RequestTimeout: 20 * time.Millisecond}, Deps{Sky: sky})

	rec := get(h, "/api/sky?date=2024-01-01&time=05:30")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code, rec.Body.String())
}

func TestChartEndpoint_NotConfigured(t *testing.T) {
	sky := usecase.NewSky(slowOracle{})
	h := NewRouter(Config{}, Deps{Sky: sky})

	rec := get(h, "/chart.svg")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/metrics").Code)
}

func TestRateLimitAndCORS(t *testing.T) {
	oracle, err := ephemeris.NewAnalytic("")
	require.NoError(t, err)
	h := NewRouter(Config{
		RatePerMinute: 2,
		CORSOrigins:   []string{"https://example.org"},
	}, Deps{Sky: usecase.NewSky(oracle)})

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/sky?date=2024-01-01&time=00:00", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("Origin", "https://example.org")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := call()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "https://example.org", first.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, call().Code)
	assert.Equal(t, http.StatusTooManyRequests, call().Code)

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, get(h, "/healthz").Code)
}
