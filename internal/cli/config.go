package cli

import (
	"fmt"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the loader configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	game := &gameFlags{}
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Init writes the default configuration to UserData/modstrap.toml under the
mod root. An existing file is kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := game.environment()
			if err != nil {
				return err
			}
			base := env.Base(bootstrapPaths(env))
			path := config.FilePath(base)

			if err := config.WriteDefault(filesystem.NewOS(), path, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	game.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
