package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/rashi/internal/infra/render"
	"github.com/aalvaropc/rashi/internal/ports"
	"github.com/aalvaropc/rashi/internal/usecase"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
)

func chartCmd(g *globalFlags) *cobra.Command {
	var flags instantFlags
	var format string
	var out string
	var save bool

	c := &cobra.Command{
		Use:   "chart",
		Short: "Draw the 12-house chart as SVG (or its primitives as JSON)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "svg" && format != "json" {
				return fmt.Errorf("unsupported format %q (expected svg|json)", format)
			}

			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			snap, oracle, err := flags.snapshot(cmd.Context(), ws)
			if err != nil {
				return err
			}
			warnMissing(cmd.ErrOrStderr(), snap)

			var payload []byte
			if format == "json" {
				payload, err = json.MarshalIndent(layout.Compute(snap, ws.layoutOptions()...), "", "  ")
				if err != nil {
					return err
				}
				payload = append(payload, '\n')
			}

			var store ports.ArtifactStore
			if save {
				store = ws.store()
			}
			renderer := render.SVGRenderer{Options: render.SVGOptions{Size: ws.cfg.Chart.Size}}
			uc := usecase.NewExportChart(renderer, store, ws.layoutOptions()...)

			id, svg, err := uc.Execute(snap, oracle)
			if err != nil {
				return err
			}
			if id != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "saved chart %s in %s\n", id, ws.store().Dir())
			}

			if payload == nil {
				payload = svg
			}
			return writeOutput(cmd.OutOrStdout(), out, payload)
		},
	}

	flags.register(c)
	c.Flags().StringVar(&format, "format", "svg", "Output format: svg|json")
	c.Flags().StringVarP(&out, "out", "o", "", "Write to FILE instead of stdout")
	c.Flags().BoolVar(&save, "save", false, "Also save the chart and its table under the charts dir")
	return c
}

func writeOutput(stdout io.Writer, path string, b []byte) error {
	if strings.TrimSpace(path) == "" || path == "-" {
		_, err := stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
