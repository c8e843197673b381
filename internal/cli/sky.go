package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/httpapi"
	"github.com/aalvaropc/rashi/internal/infra/logger"
	"github.com/aalvaropc/rashi/internal/infra/render"
	"github.com/aalvaropc/rashi/internal/usecase"
	"github.com/aalvaropc/rashi/internal/usecase/table"
)

// instantFlags are shared by every command that computes a snapshot.
type instantFlags struct {
	date   string
	clock  string
	tz     string
	mode   string
	oracle string

	now func() time.Time
}

func (f *instantFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD (defaults to today)")
	c.Flags().StringVar(&f.clock, "time", "", "Local time as HH:MM (defaults to now)")
	c.Flags().StringVar(&f.tz, "tz", "", "IANA time zone of --date/--time (defaults to workspace input.timezone)")
	c.Flags().StringVar(&f.mode, "mode", "", "Sidereal mode: lahiri|raman|krishnamurti")
	c.Flags().StringVar(&f.oracle, "oracle", "", "Ephemeris oracle: analytic|horizons|auto")
}

// snapshot resolves the flags against the workspace and builds the sky.
func (f *instantFlags) snapshot(ctx context.Context, ws *workspaceCtx) (domain.Snapshot, string, error) {
	loc, err := ws.location(f.tz)
	if err != nil {
		return domain.Snapshot{}, "", err
	}

	now := f.now
	if now == nil {
		now = time.Now
	}
	at, err := usecase.ParseInstant(f.date, f.clock, loc, now)
	if err != nil {
		return domain.Snapshot{}, "", err
	}

	mode := ws.cfg.Ephemeris.SiderealMode
	if strings.TrimSpace(f.mode) != "" {
		if mode, err = domain.ParseSiderealMode(f.mode); err != nil {
			return domain.Snapshot{}, "", err
		}
	}

	log := logger.With("sky")
	oracle, err := ws.newOracle(f.oracle, log)
	if err != nil {
		return domain.Snapshot{}, "", err
	}

	sky := ws.newSky(oracle, mode, log, nil)
	snap, err := sky.Snapshot(ctx, at, mode)
	if err != nil {
		return domain.Snapshot{}, "", err
	}
	return snap, sky.OracleName(), nil
}

func skyCmd(g *globalFlags) *cobra.Command {
	var flags instantFlags
	var format string

	c := &cobra.Command{
		Use:   "sky",
		Short: "Print sidereal positions of the nine grahas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			snap, oracle, err := flags.snapshot(cmd.Context(), ws)
			if err != nil {
				return err
			}

			warnMissing(cmd.ErrOrStderr(), snap)
			return printSky(cmd.OutOrStdout(), snap, oracle, format)
		},
	}

	flags.register(c)
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printSky(w io.Writer, snap domain.Snapshot, oracle, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.SkyResponse{
			Oracle:   oracle,
			Snapshot: snap,
			Rows:     table.FormatRows(snap),
			Missing:  snap.Missing(),
		})
	case "pretty", "":
		th := render.DefaultTheme()
		if w != os.Stdout {
			th = render.PlainTheme()
		}
		fmt.Fprintln(w, render.Caption(snap, oracle, th))
		fmt.Fprintln(w, render.TableWithTheme(table.FormatRows(snap), th))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func warnMissing(w io.Writer, snap domain.Snapshot) {
	missing := snap.Missing()
	if len(missing) == 0 {
		return
	}
	names := make([]string, 0, len(missing))
	for _, b := range missing {
		names = append(names, b.Name())
	}
	fmt.Fprintf(w, "warning: no position for %s\n", strings.Join(names, ", "))
}
