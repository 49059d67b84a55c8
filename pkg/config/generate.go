package config

import (
	"path/filepath"

	"github.com/arthur-debert/modstrap/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const generatedHeader = `# modstrap loader configuration.
# Environment variables of the form MODSTRAP_<SECTION>__<KEY> override these values.

`

// Generate renders cfg as a TOML document
func Generate(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return append([]byte(generatedHeader), data...), nil
}

// WriteDefault writes the default configuration to path on fsys. An
// existing file is left untouched unless force is set.
func WriteDefault(fsys afero.Fs, path string, force bool) error {
	if !force {
		if exists, _ := afero.Exists(fsys, path); exists {
			return errors.New(errors.ErrAlreadyExists, "config file already exists").
				WithDetail("path", path)
		}
	}

	data, err := Generate(Default())
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create config directory").
			WithDetail("path", filepath.Dir(path))
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write config file").
			WithDetail("path", path)
	}
	return nil
}
