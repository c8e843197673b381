package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/rashi/internal/httpapi"
	"github.com/aalvaropc/rashi/internal/infra/logger"
	"github.com/aalvaropc/rashi/internal/infra/metrics"
	"github.com/aalvaropc/rashi/internal/infra/render"
	"github.com/aalvaropc/rashi/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// serveOptions are the serve flags that shape the HTTP surface.
type serveOptions struct {
	oracle        string
	timeout       time.Duration
	ratePerMinute int
	corsOrigins   []string
}

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string
	var opts serveOptions

	c := &cobra.Command{
		Use:         "serve",
		Short:       "Serve snapshots and charts over HTTP",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotStderr: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			handler, err := ws.newHandler(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return listenAndServe(ctx, srv)
		},
	}

	c.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	c.Flags().StringVar(&opts.oracle, "oracle", "", "Ephemeris oracle: analytic|horizons|auto")
	c.Flags().DurationVar(&opts.timeout, "request-timeout", 30*time.Second, "Per-request snapshot deadline")
	c.Flags().IntVar(&opts.ratePerMinute, "rate-limit", 120, "Requests per minute per client IP on /api and /chart (0 disables)")
	c.Flags().StringSliceVar(&opts.corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	return c
}

// newHandler assembles the HTTP surface over one shared oracle.
func (ws *workspaceCtx) newHandler(opts serveOptions) (http.Handler, error) {
	loc, err := ws.location("")
	if err != nil {
		return nil, err
	}

	log := logger.With("serve")
	oracle, err := ws.newOracle(opts.oracle, log)
	if err != nil {
		return nil, err
	}

	m := metrics.NewOracle()
	sky := ws.newSky(oracle, ws.cfg.Ephemeris.SiderealMode, log, m)
	layoutOpts := ws.layoutOptions()

	return httpapi.NewRouter(httpapi.Config{
		Location:       loc,
		RequestTimeout: opts.timeout,
		ChartSize:      ws.cfg.Chart.Size,
		RatePerMinute:  opts.ratePerMinute,
		CORSOrigins:    opts.corsOrigins,
	}, httpapi.Deps{
		Sky: sky,
		Chart: func(size int) *usecase.ExportChart {
			r := render.SVGRenderer{Options: render.SVGOptions{Size: size}}
			return usecase.NewExportChart(r, nil, layoutOpts...)
		},
		Metrics: m.Handler(),
		Logger:  logger.With("http"),
	}), nil
}

func listenAndServe(ctx context.Context, srv *http.Server) error {
	log := logger.With("serve")
	errCh := make(chan error, 1)
	go func() {
		log.Info("serve.listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	log.Info("serve.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve shutdown: %w", err)
	}
	return nil
}
