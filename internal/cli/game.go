package cli

import (
	"os"

	"github.com/arthur-debert/modstrap/pkg/bootstrap"
	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/spf13/cobra"
)

// gameFlags locate the game a command works on
type gameFlags struct {
	exe      string
	base     string
	platform string
	set      map[string]string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.exe, "game", "g", "", "Path to the game executable (default $MODSTRAP_PROCESS_PATH)")
	cmd.Flags().StringVar(&f.base, "base", "", "Mod root directory (default $MODSTRAP_BASE_DIR, or the game directory)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Platform to check mods against (default the running one)")
}

// registerOverrides adds --set for commands that load the config themselves
func (f *gameFlags) registerOverrides(cmd *cobra.Command) {
	cmd.Flags().StringToStringVar(&f.set, "set", nil, "Override a config key, e.g. --set loader.debug_mode=true")
}

// overrides converts --set pairs for the config loader
func (f *gameFlags) overrides() map[string]interface{} {
	if len(f.set) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(f.set))
	for k, v := range f.set {
		out[k] = v
	}
	return out
}

// environment merges the flags over the process environment
func (f *gameFlags) environment() (bootstrap.Environment, error) {
	env, err := bootstrap.EnvironmentFromProcess()
	if err != nil {
		return env, err
	}
	if f.exe != "" {
		env.ProcessPath = f.exe
	} else if !processPathSet() {
		return env, errors.New(errors.ErrInvalidInput, "no game given, use --game or MODSTRAP_PROCESS_PATH")
	}
	if f.base != "" {
		env.BaseDir = f.base
	}
	if f.platform != "" {
		var p types.Platform
		if err := p.UnmarshalText([]byte(f.platform)); err != nil {
			return env, errors.Wrap(err, errors.ErrInvalidInput, "invalid --platform")
		}
		env.Platform = p
	}
	return env, nil
}

// resolve returns the environment, the mod root and its configuration
func (f *gameFlags) resolve() (bootstrap.Environment, string, *config.Config, error) {
	env, err := f.environment()
	if err != nil {
		return env, "", nil, err
	}
	base := env.Base(bootstrapPaths(env))
	cfg, err := config.LoadWithOverrides(nil, config.FilePath(base), f.overrides())
	if err != nil {
		return env, "", nil, err
	}
	return env, base, cfg, nil
}

func processPathSet() bool {
	return os.Getenv("MODSTRAP_PROCESS_PATH") != ""
}

func bootstrapPaths(env bootstrap.Environment) bootstrap.Paths {
	return bootstrap.ResolvePaths(env.ProcessPath, env.Platform)
}
