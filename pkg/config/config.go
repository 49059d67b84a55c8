package config

import "path/filepath"

const (
	// UserDataDir is the directory under the mod root holding user files
	UserDataDir = "UserData"

	// FileName is the user configuration file name
	FileName = "modstrap.toml"

	// EnvPrefix prefixes environment overrides, e.g. MODSTRAP_LOADER__DEBUG_MODE
	EnvPrefix = "MODSTRAP_"
)

// Loader holds switches for the bootstrap itself
type Loader struct {
	// Disable turns the whole bootstrap off
	Disable bool `koanf:"disable" toml:"disable"`

	DebugMode bool `koanf:"debug_mode" toml:"debug_mode"`

	// CapturePlayerLogs keeps the host's console output. When false the
	// console handles are nulled until the managed runtime starts.
	CapturePlayerLogs bool `koanf:"capture_player_logs" toml:"capture_player_logs"`

	DisableSubFolderLoad     bool `koanf:"disable_subfolder_load" toml:"disable_subfolder_load"`
	DisableSubFolderManifest bool `koanf:"disable_subfolder_manifest" toml:"disable_subfolder_manifest"`
}

// Exclusions lists folder names and paths skipped during discovery
type Exclusions struct {
	Exact      []string `koanf:"exact" toml:"exact"`
	StartsWith []string `koanf:"starts_with" toml:"starts_with"`
	EndsWith   []string `koanf:"ends_with" toml:"ends_with"`
	FullPaths  []string `koanf:"full_paths" toml:"full_paths"`
}

// Paths holds path handling settings
type Paths struct {
	// CreateMissing creates absent category base directories during discovery
	CreateMissing bool `koanf:"create_missing" toml:"create_missing"`
}

// Config is the main configuration structure
type Config struct {
	Loader     Loader     `koanf:"loader" toml:"loader"`
	Exclusions Exclusions `koanf:"exclusions" toml:"exclusions"`
	Paths      Paths      `koanf:"paths" toml:"paths"`
}

// FilePath returns the location of the user config file under baseDir
func FilePath(baseDir string) string {
	return filepath.Join(baseDir, UserDataDir, FileName)
}

// Verbosity maps the config to a logging verbosity, never lowering base
func (c *Config) Verbosity(base int) int {
	if c.Loader.DebugMode && base < 2 {
		return 2
	}
	return base
}
