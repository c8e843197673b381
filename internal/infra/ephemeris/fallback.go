package ephemeris

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

// Fallback asks the primary oracle first and the secondary when it fails.
// Julian days are always computed by the primary.
type Fallback struct {
	primary   ports.EphemerisOracle
	secondary ports.EphemerisOracle
	log       *slog.Logger
}

var _ ports.EphemerisOracle = (*Fallback)(nil)

func NewFallback(primary, secondary ports.EphemerisOracle, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

func (f *Fallback) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

func (f *Fallback) JulianDay(year, month, day int, hour float64) float64 {
	return f.primary.JulianDay(year, month, day, hour)
}

func (f *Fallback) Calc(ctx context.Context, jdUT float64, code domain.OracleCode, mode domain.SiderealMode) (domain.Position, error) {
	pos, err := f.primary.Calc(ctx, jdUT, code, mode)
	if err == nil {
		return pos, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.Position{}, ctxErr
	}

	f.log.Info("oracle.fallback",
		"primary", f.primary.Name(),
		"secondary", f.secondary.Name(),
		"code", int(code),
		"err", err.Error(),
	)
	return f.secondary.Calc(ctx, jdUT, code, mode)
}
