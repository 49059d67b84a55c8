package cli

import (
	"github.com/arthur-debert/modstrap/pkg/bootstrap"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/report"
	"github.com/spf13/cobra"
)

func newLoadCmd(g *globals) *cobra.Command {
	game := &gameFlags{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load every module and report the registries",
		Long: `Load scans the game, loads Libraries, Plugins and Mods in that order, and
prints the accepted definitions together with every module or definition
that failed to load.`,
		Example: `  modstrap load --game ~/Games/Demo/Demo.exe
  modstrap load --game ~/Games/Demo/Demo.exe --platform windows --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.load")

			env, base, cfg, err := game.resolve()
			if err != nil {
				return err
			}
			logger.Info().Str("base", base).Msg("Loading")

			core, err := bootstrap.NewCore(filesystem.NewOS(), base, cfg, env.Platform)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close(cmd.Context()) }()

			regs, err := core.Start(cmd.Context())
			if err != nil {
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Load(report.NewLoad(regs))
		},
	}
	game.register(cmd)
	game.registerOverrides(cmd)
	return cmd
}
