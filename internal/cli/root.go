package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/rashi/internal/infra/logger"
)

// annotStderr marks commands whose logs are mirrored to standard error.
const annotStderr = "rashi.log.stderr"

type globalFlags struct {
	debug     bool
	workspace string

	cleanup func() error
}

func (g *globalFlags) close() {
	if g.cleanup != nil {
		_ = g.cleanup()
		g.cleanup = nil
	}
}

func Execute() {
	g := &globalFlags{}
	cmd := newRootCmd(g)
	err := cmd.Execute()
	g.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rashi",
		Short:        "Rashi: sidereal positions of the nine grahas on a 12-house chart",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setupLogger(cmd.Annotations[annotStderr] == "true")
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .rashi/logs/rashi.log")
	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		skyCmd(g),
		chartCmd(g),
		initCmd(),
		serveCmd(g),
		versionCmd(),
	)
	return cmd
}

// setupLogger writes logs under the workspace when there is one. Outside a
// workspace logging stays off unless --debug or stderr mirroring asks for
// it, in which case the user cache dir holds the file.
func (g *globalFlags) setupLogger(stderr bool) error {
	logRoot := ""
	if root, err := resolveWorkspaceRoot(g.workspace); err == nil {
		logRoot = root
	} else if g.debug || stderr {
		dir, cerr := os.UserCacheDir()
		if cerr != nil {
			dir = os.TempDir()
		}
		logRoot = filepath.Join(dir, "rashi")
	}
	if logRoot == "" {
		return nil
	}

	cleanup, err := logger.Setup(logger.Config{
		Root:   logRoot,
		Debug:  g.debug,
		Stderr: stderr,
	})
	if err != nil {
		// A read-only workspace should not stop the command itself.
		return nil
	}
	g.cleanup = cleanup
	return nil
}
