package bootstrap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/caarlos0/env/v11"
)

// Environment describes the host process
type Environment struct {
	// ProcessPath is the host executable, os.Executable when unset
	ProcessPath string `env:"MODSTRAP_PROCESS_PATH"`

	// BaseDir is the mod root, the game directory when unset
	BaseDir string `env:"MODSTRAP_BASE_DIR"`

	Platform types.Platform
}

// EnvironmentFromProcess reads the environment of the running process
func EnvironmentFromProcess() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, errors.ErrConfigParse, "cannot read host environment")
	}

	if e.ProcessPath == "" {
		exe, err := os.Executable()
		if err != nil {
			return e, errors.Wrap(err, errors.ErrHostEnvironment, "cannot determine process path")
		}
		e.ProcessPath = exe
	}
	e.Platform = types.CurrentPlatform()
	return e, nil
}

// Paths are the host directories derived from the process path
type Paths struct {
	GameDir string
	DataDir string
}

// ResolvePaths derives the game and data directories. The data directory
// is <GameDir>/<exe-stem>_Data, except on mac where it is
// <GameDir>/../Resources/Data.
func ResolvePaths(processPath string, p types.Platform) Paths {
	gameDir := filepath.Dir(processPath)

	if p == types.PlatformMac {
		return Paths{
			GameDir: gameDir,
			DataDir: filepath.Join(filepath.Dir(gameDir), "Resources", "Data"),
		}
	}

	base := filepath.Base(processPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return Paths{
		GameDir: gameDir,
		DataDir: filepath.Join(gameDir, stem+"_Data"),
	}
}

// Base returns the mod root for e
func (e Environment) Base(paths Paths) string {
	if e.BaseDir != "" {
		return e.BaseDir
	}
	return paths.GameDir
}
