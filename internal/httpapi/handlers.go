package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/usecase"
	"github.com/aalvaropc/rashi/internal/usecase/table"
)

// SkyResponse is the body of GET /api/sky.
type SkyResponse struct {
	Oracle   string              `json:"oracle"`
	Snapshot domain.Snapshot     `json:"snapshot"`
	Rows     []domain.DisplayRow `json:"rows"`
	Missing  []domain.Body       `json:"missing,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "oracle": s.deps.Sky.OracleName()})
}

func (s *server) sky(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SkyResponse{
		Oracle:   s.deps.Sky.OracleName(),
		Snapshot: snap,
		Rows:     table.FormatRows(snap),
		Missing:  snap.Missing(),
	})
}

func (s *server) chart(w http.ResponseWriter, r *http.Request) {
	if s.deps.Chart == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "chart rendering not configured"})
		return
	}

	size := s.cfg.ChartSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < domain.MinChartSize || n > domain.MaxChartSize {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("size must be an integer between %d and %d", domain.MinChartSize, domain.MaxChartSize)})
			return
		}
		size = n
	}

	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	svg, err := s.deps.Chart(size).Render(snap)
	if err != nil {
		s.deps.Logger.Error("http.chart_render_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "render failed"})
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// snapshot parses the query and builds the snapshot, writing an error
// response itself when it returns false.
func (s *server) snapshot(w http.ResponseWriter, r *http.Request) (domain.Snapshot, bool) {
	q := r.URL.Query()

	loc := s.cfg.Location
	if tz := strings.TrimSpace(q.Get("tz")); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown time zone " + strconv.Quote(tz)})
			return domain.Snapshot{}, false
		}
		loc = l
	}

	at, err := usecase.ParseInstant(q.Get("date"), q.Get("time"), loc, s.deps.Now)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return domain.Snapshot{}, false
	}

	mode := s.deps.Sky.DefaultMode()
	if m := q.Get("mode"); m != "" {
		mode, err = domain.ParseSiderealMode(m)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return domain.Snapshot{}, false
		}
	}

	snap, err := s.deps.Sky.Snapshot(r.Context(), at, mode)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return domain.Snapshot{}, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
