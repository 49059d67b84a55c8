package config

import (
	"strings"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// Default returns the embedded defaults, ignoring files and environment
func Default() *Config {
	cfg, err := load(nil, "", false, nil)
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(err)
	}
	return cfg
}

// Load merges the embedded defaults, the TOML file at path (if it exists)
// and MODSTRAP_ environment overrides. The file is read from fsys, or
// straight from disk when fsys is nil.
func Load(fsys afero.Fs, path string) (*Config, error) {
	return load(fsys, path, true, nil)
}

// LoadWithOverrides is Load with a final layer of dotted keys, e.g.
// {"loader.debug_mode": true}. The command line uses it for --set.
func LoadWithOverrides(fsys afero.Fs, path string, overrides map[string]interface{}) (*Config, error) {
	return load(fsys, path, true, overrides)
}

func load(fsys afero.Fs, path string, withEnv bool, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	if path != "" {
		provider, ok, err := userFile(fsys, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config from %s", path).
				WithDetail("path", path)
		}
		if ok {
			if err := k.Load(provider, toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	// 3. Environment overrides
	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// userFile returns a provider for the config file at path, false when
// there is no such file
func userFile(fsys afero.Fs, path string) (koanf.Provider, bool, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
		if exists, _ := afero.Exists(fsys, path); !exists {
			return nil, false, nil
		}
		return file.Provider(path), true, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if exists, _ := afero.Exists(fsys, path); !exists {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &rawBytesProvider{bytes: data}, true, nil
}

// envKey maps MODSTRAP_LOADER__DEBUG_MODE to loader.debug_mode
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
