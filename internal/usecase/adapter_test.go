package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/rashi/internal/domain"
)

func TestEphemerisAdapter_TruncatesToMinuteUTC(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	o := newFakeOracle()
	a := NewEphemerisAdapter(o, AdapterConfig{Mode: domain.Lahiri})

	at := time.Date(2024, 1, 1, 10, 47, 59, 999, ist)
	res := a.FetchPosition(context.Background(), at, domain.Sun)
	require.True(t, res.OK())

	require.Len(t, o.jdCalls, 1)
	got := o.jdCalls[0]
	assert.Equal(t, 2024, got.year)
	assert.Equal(t, 1, got.month)
	assert.Equal(t, 1, got.day)
	assert.InDelta(t, 5.0+17.0/60.0, got.hour, 1e-12)
}

func TestEphemerisAdapter_DateRollsBackAcrossUTC(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")
	o := newFakeOracle()
	a := NewEphemerisAdapter(o, AdapterConfig{Mode: domain.Lahiri})

	a.FetchPosition(context.Background(), time.Date(2024, 1, 1, 2, 0, 0, 0, ist), domain.Moon)

	require.Len(t, o.jdCalls, 1)
	assert.Equal(t, jdCall{2023, 12, 31, 20.5}, o.jdCalls[0])
}

func TestEphemerisAdapter_PassesMode(t *testing.T) {
	o := newFakeOracle()
	a := NewEphemerisAdapter(o, AdapterConfig{Mode: domain.Krishnamurti})

	res := a.FetchPosition(context.Background(), time.Now(), domain.Mars)
	require.True(t, res.OK())
	assert.Equal(t, []domain.SiderealMode{domain.Krishnamurti}, o.modes)
	assert.Equal(t, domain.Krishnamurti, a.Mode())
}

func TestEphemerisAdapter_KetuHasNoCode(t *testing.T) {
	o := newFakeOracle()
	a := NewEphemerisAdapter(o, AdapterConfig{})

	res := a.FetchPosition(context.Background(), time.Now(), domain.Ketu)
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, domain.ErrNoOracleCode)
	assert.Empty(t, o.modes, "oracle must not be called for Ketu")
}

func TestEphemerisAdapter_OracleFailure(t *testing.T) {
	o := newFakeOracle()
	o.failures[domain.CodeSaturn] = errors.New("data file missing")
	obs := &recordingObserver{}
	a := NewEphemerisAdapter(o, AdapterConfig{}, WithOracleObserver(obs))

	res := a.FetchPosition(context.Background(), time.Now(), domain.Saturn)
	assert.False(t, res.OK())
	assert.Equal(t, domain.Saturn, res.Body)
	assert.EqualError(t, obs.calls[domain.Saturn], "data file missing")
}

func TestEphemerisAdapter_RecoversPanic(t *testing.T) {
	o := newFakeOracle()
	o.panics[domain.CodeVenus] = true
	a := NewEphemerisAdapter(o, AdapterConfig{})

	var res domain.PositionResult
	require.NotPanics(t, func() {
		res = a.FetchPosition(context.Background(), time.Now(), domain.Venus)
	})
	assert.False(t, res.OK())
	assert.True(t, domain.IsKind(res.Err, domain.KindOracle))
}

func TestEphemerisAdapter_NormalizesLongitude(t *testing.T) {
	o := newFakeOracle()
	o.positions[domain.CodeSun] = domain.Position{Longitude: 365.5, Speed: 1}
	a := NewEphemerisAdapter(o, AdapterConfig{})

	res := a.FetchPosition(context.Background(), time.Now(), domain.Sun)
	require.True(t, res.OK())
	assert.InDelta(t, 5.5, res.Position.Longitude, 1e-12)
}
