package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
)

type jdCall struct {
	year, month, day int
	hour             float64
}

// fakeOracle returns fixed positions per code and records its calls.
type fakeOracle struct {
	mu        sync.Mutex
	positions map[domain.OracleCode]domain.Position
	failures  map[domain.OracleCode]error
	panics    map[domain.OracleCode]bool
	delay     time.Duration

	jdCalls   []jdCall
	modes     []domain.SiderealMode
	inflight  int
	maxFlight int
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		positions: map[domain.OracleCode]domain.Position{
			domain.CodeSun:      {Longitude: 255.85, Speed: 1.0192},
			domain.CodeMoon:     {Longitude: 150.2, Speed: 12.7},
			domain.CodeMars:     {Longitude: 241.3, Speed: 0.72},
			domain.CodeMercury:  {Longitude: 232.0, Speed: -0.35},
			domain.CodeJupiter:  {Longitude: 11.4, Speed: 0.002},
			domain.CodeVenus:    {Longitude: 217.6, Speed: 1.21},
			domain.CodeSaturn:   {Longitude: 309.9, Speed: 0.08},
			domain.CodeMeanNode: {Longitude: 10.5, Speed: -0.053},
		},
		failures: map[domain.OracleCode]error{},
		panics:   map[domain.OracleCode]bool{},
	}
}

func (f *fakeOracle) Name() string { return "fake" }

func (f *fakeOracle) JulianDay(year, month, day int, hour float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jdCalls = append(f.jdCalls, jdCall{year, month, day, hour})
	return 2460310.5 + hour/24
}

func (f *fakeOracle) Calc(ctx context.Context, _ float64, code domain.OracleCode, mode domain.SiderealMode) (domain.Position, error) {
	f.mu.Lock()
	f.modes = append(f.modes, mode)
	f.inflight++
	if f.inflight > f.maxFlight {
		f.maxFlight = f.inflight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.Position{}, ctx.Err()
		}
	}
	if f.panics[code] {
		panic("boom")
	}
	if err := f.failures[code]; err != nil {
		return domain.Position{}, err
	}
	return f.positions[code], nil
}

type recordingObserver struct {
	mu    sync.Mutex
	calls map[domain.Body]error
	snaps []domain.Snapshot
}

func (r *recordingObserver) ObserveCall(_ string, b domain.Body, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[domain.Body]error{}
	}
	r.calls[b] = err
}

func (r *recordingObserver) ObserveSnapshot(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}
