package bootstrap

import (
	"context"
	"io"
	"path/filepath"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/console"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/hook"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/runtimes"
	"github.com/spf13/afero"
)

// LogFileName is the loader's log file, kept under UserData
const LogFileName = "modstrap.log"

// Options wire Init to the host
type Options struct {
	// Hooker patches the resolution entry point. Required.
	Hooker hook.Hooker

	// Target is the entry point to hook, hook.TargetSymbol when empty
	Target string

	// Detours maps runtime entry symbols to their replacement addresses
	Detours map[string]uintptr

	// FS is the filesystem mods are read from, the OS when nil
	FS afero.Fs

	// Console is silenced until the handoff unless player logs are
	// captured. A Suppressor over stdout and stderr when nil.
	Console console.Handles

	// LogWriter replaces the console and file log outputs when set
	LogWriter io.Writer

	// Verbosity is the base log verbosity, raised by loader.debug_mode
	Verbosity int
}

// Init runs the attach sequence. It returns a nil Core with a nil error
// when the process is not a game or the loader is disabled.
func Init(ctx context.Context, hostEnv Environment, opts Options) (*Core, error) {
	if opts.Hooker == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a hooker is required")
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Target == "" {
		opts.Target = hook.TargetSymbol
	}

	paths := ResolvePaths(hostEnv.ProcessPath, hostEnv.Platform)
	if !filesystem.IsDir(opts.FS, paths.DataDir) {
		return nil, nil
	}

	base := hostEnv.Base(paths)
	cfg, err := config.Load(opts.FS, config.FilePath(base))
	if err != nil {
		return nil, err
	}
	if cfg.Loader.Disable {
		return nil, nil
	}

	verbosity := cfg.Verbosity(opts.Verbosity)
	if opts.LogWriter != nil {
		logging.SetupWriter(opts.LogWriter, verbosity)
	} else {
		logging.SetupLoggerWithFile(verbosity, filepath.Join(base, config.UserDataDir, LogFileName))
	}
	logger := logging.GetLogger("bootstrap")
	logger.Info().
		Str("game", paths.GameDir).
		Str("data", paths.DataDir).
		Str("base", base).
		Str("platform", string(hostEnv.Platform)).
		Msg("Bootstrapping")

	core, err := NewCore(opts.FS, base, cfg, hostEnv.Platform)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration, not hooking")
		return nil, err
	}

	var resetter hook.ConsoleResetter
	if !cfg.Loader.CapturePlayerLogs {
		if opts.Console == nil {
			opts.Console = console.NewSuppressor()
		}
		if err := opts.Console.Null(); err != nil {
			logger.Warn().Err(err).Msg("Failed to silence console")
		} else {
			resetter = opts.Console
		}
	}

	handoffCtx := context.WithoutCancel(ctx)
	table := runtimes.Table(opts.Detours, func(f runtimes.Flavor, handle uintptr) {
		core.setFlavor(f.Name)
		logger.Info().Str("flavor", f.Name).Msg("Runtime starting, loading mods")
		if _, err := core.Start(handoffCtx); err != nil {
			logger.Error().Err(err).Msg("Startup failed")
		}
	})

	icpt := hook.NewInterceptor(table, resetter)
	if err := icpt.Install(opts.Hooker, opts.Target); err != nil {
		if resetter != nil {
			_ = resetter.Reset()
		}
		return nil, err
	}
	core.interceptor = icpt

	return core, nil
}
