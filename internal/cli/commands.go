package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modstrap/internal/version"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/report"
	"github.com/arthur-debert/modstrap/pkg/telemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals are the persistent flags shared by every command
type globals struct {
	verbosity int
	format    string
	shutdown  telemetry.Shutdown
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "modstrap",
		Short: "Discover and load game mods",
		Long: `modstrap bootstraps mod loading inside a game process. This tool runs the
same discovery and loading pipeline against a game directory, and simulates
the runtime handoff that triggers it in-process.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			shutdown, err := telemetry.Setup(cmd.Context())
			if err != nil {
				return err
			}
			g.shutdown = shutdown
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.shutdown == nil {
				return nil
			}
			return g.shutdown(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", "auto", fmt.Sprintf("Output format %v", report.Formats))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newLoadCmd(g))
	rootCmd.AddCommand(newBootCmd(g))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "modstrap version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

// renderer resolves the --format flag against the command's output
func (g *globals) renderer(cmd *cobra.Command) (*report.Renderer, error) {
	format, err := report.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if format == report.FormatAuto {
		format = report.FormatText
		if f, ok := out.(*os.File); ok {
			format = report.DetectFormat(f)
		}
	}
	return report.NewRenderer(out, format)
}
