package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testInstant = time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC)

func TestBuildSnapshot_AllBodies(t *testing.T) {
	o := newFakeOracle()
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{Mode: domain.Lahiri}))

	s, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)

	want := domain.AllBodies[:]
	if diff := cmp.Diff(want, s.Bodies()); diff != "" {
		t.Fatalf("bodies mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s.At())

	ketu, ok := s.Get(domain.Ketu)
	require.True(t, ok)
	assert.InDelta(t, 190.5, ketu.Longitude, 1e-9)
	assert.InDelta(t, -0.053, ketu.Speed, 1e-12)
	assert.Equal(t, domain.House(6), ketu.House())
	assert.Equal(t, "10° 30'", domain.FormatInHouse(ketu.InHouse()))
}

func TestBuildSnapshot_FailedBodyOmitted(t *testing.T) {
	o := newFakeOracle()
	o.failures[domain.CodeSaturn] = errors.New("boom")
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}))

	s, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)
	assert.Equal(t, domain.BodyCount-1, s.Len())
	assert.False(t, s.Has(domain.Saturn))
	assert.Equal(t, []domain.Body{domain.Saturn}, s.Missing())
}

func TestBuildSnapshot_NonFinitePositionOmitted(t *testing.T) {
	cases := map[string]domain.Position{
		"nan longitude": {Longitude: math.NaN(), Speed: 0.7},
		"inf longitude": {Longitude: math.Inf(1), Speed: 0.7},
		"nan speed":     {Longitude: 241.3, Speed: math.NaN()},
	}
	for name, pos := range cases {
		t.Run(name, func(t *testing.T) {
			o := newFakeOracle()
			o.positions[domain.CodeMars] = pos
			obs := &recordingObserver{}
			uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}, WithOracleObserver(obs)))

			s, err := uc.Execute(context.Background(), testInstant)
			require.NoError(t, err)
			assert.False(t, s.Has(domain.Mars))
			assert.Equal(t, []domain.Body{domain.Mars}, s.Missing())
			assert.True(t, domain.IsKind(obs.calls[domain.Mars], domain.KindOracle))

			assert.NotPanics(t, func() { layout.Compute(s) })
			for _, e := range s.Entries() {
				assert.GreaterOrEqual(t, int(e.Position.House()), 0, e.Body.String())
				assert.Less(t, int(e.Position.House()), 12, e.Body.String())
			}
		})
	}
}

func TestBuildSnapshot_MissingRahuDropsKetu(t *testing.T) {
	o := newFakeOracle()
	o.failures[domain.CodeMeanNode] = errors.New("no node")
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}))

	s, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Len())
	assert.False(t, s.Has(domain.Rahu))
	assert.False(t, s.Has(domain.Ketu))
}

func TestBuildSnapshot_ParallelKeepsCanonicalOrder(t *testing.T) {
	o := newFakeOracle()
	o.delay = 5 * time.Millisecond
	obs := &recordingObserver{}
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}),
		WithConcurrency(4),
		WithSnapshotObserver(obs),
	)

	s, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)
	if diff := cmp.Diff(domain.AllBodies[:], s.Bodies()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.LessOrEqual(t, o.maxFlight, 4)
	require.Len(t, obs.snaps, 1)
}

func TestBuildSnapshot_SequentialByDefault(t *testing.T) {
	o := newFakeOracle()
	o.delay = time.Millisecond
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}), WithConcurrency(0))

	_, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)
	assert.Equal(t, 1, o.maxFlight)
}

func TestBuildSnapshot_Canceled(t *testing.T) {
	o := newFakeOracle()
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}), WithConcurrency(8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, testInstant)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildSnapshot_DeadlineMidway(t *testing.T) {
	o := newFakeOracle()
	o.delay = 200 * time.Millisecond
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}), WithConcurrency(2))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := uc.Execute(ctx, testInstant)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuildSnapshot_Idempotent(t *testing.T) {
	o := newFakeOracle()
	uc := NewBuildSnapshot(NewEphemerisAdapter(o, AdapterConfig{}), WithConcurrency(3))

	a, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)
	b, err := uc.Execute(context.Background(), testInstant)
	require.NoError(t, err)

	if diff := cmp.Diff(a.Entries(), b.Entries()); diff != "" {
		t.Fatalf("snapshots differ (-a +b):\n%s", diff)
	}
}
