package cli

import (
	"github.com/arthur-debert/modstrap/pkg/bootstrap"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/report"
	"github.com/spf13/cobra"
)

func newScanCmd(g *globals) *cobra.Command {
	game := &gameFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the directories modules are loaded from",
		Long: `Scan walks the Libraries, Plugins and Mods folders of the game, applies the
configured exclusions and prints the directories of each category in load
order.`,
		Example: `  # Scan a game install
  modstrap scan --game ~/Games/Demo/Demo.exe

  # Machine readable output
  modstrap scan --game ~/Games/Demo/Demo.exe --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.scan")

			env, base, cfg, err := game.resolve()
			if err != nil {
				return err
			}
			logger.Info().Str("base", base).Msg("Scanning")

			core, err := bootstrap.NewCore(filesystem.NewOS(), base, cfg, env.Platform)
			if err != nil {
				return err
			}
			sets, err := core.Scan(cmd.Context())
			if err != nil {
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Scan(report.NewScan(base, sets))
		},
	}
	game.register(cmd)
	game.registerOverrides(cmd)
	return cmd
}
