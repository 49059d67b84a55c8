package discovery

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/exclusion"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ManifestFile must exist in a first-level subfolder for it to be accepted
const ManifestFile = "manifest.json"

// Roots are the base directories, one per category
type Roots struct {
	Libraries string
	Plugins   string
	Mods      string
}

// RootsFor returns the standard layout under baseDir
func RootsFor(baseDir string) Roots {
	return Roots{
		Libraries: filepath.Join(baseDir, types.Libraries.FolderName()),
		Plugins:   filepath.Join(baseDir, types.Plugins.FolderName()),
		Mods:      filepath.Join(baseDir, types.Mods.FolderName()),
	}
}

// For returns the base directory of c
func (r Roots) For(c types.Category) string {
	switch c {
	case types.Libraries:
		return r.Libraries
	case types.Plugins:
		return r.Plugins
	case types.Mods:
		return r.Mods
	}
	return ""
}

// Options control traversal
type Options struct {
	// SubfolderLoad enables recursion below the base directories
	SubfolderLoad bool

	// RequireManifest requires ManifestFile in first-level subfolders
	RequireManifest bool

	// CreateMissing creates absent base directories
	CreateMissing bool
}

// OptionsFromConfig resolves the loader switches into scan options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SubfolderLoad:   !cfg.Loader.DisableSubFolderLoad,
		RequireManifest: !cfg.Loader.DisableSubFolderManifest,
		CreateMissing:   cfg.Paths.CreateMissing,
	}
}

// Scanner discovers mod directories
type Scanner struct {
	fs     afero.Fs
	policy *exclusion.Policy
	opts   Options
	logger zerolog.Logger
}

// NewScanner creates a scanner. A nil policy excludes nothing.
func NewScanner(fsys afero.Fs, policy *exclusion.Policy, opts Options) *Scanner {
	if policy == nil {
		policy = exclusion.NewPolicy()
	}
	return &Scanner{
		fs:     fsys,
		policy: policy,
		opts:   opts,
		logger: logging.GetLogger("discovery"),
	}
}

// scan is the state of one discovery pass
type scan struct {
	sets types.DirectorySets
}

// Scan walks roots and returns the directory sets
func (s *Scanner) Scan(ctx context.Context, roots Roots) (types.DirectorySets, error) {
	_, span := otel.Tracer("modstrap/discovery").Start(ctx, "discovery.scan")
	defer span.End()
	defer logging.LogOperationStart(s.logger, "scan")()

	st := &scan{}

	for _, c := range types.Categories {
		base := roots.For(c)
		if base == "" {
			return types.DirectorySets{}, errors.Newf(errors.ErrInvalidInput, "no base directory for %s", c)
		}
		if err := s.ensureBase(base); err != nil {
			return types.DirectorySets{}, err
		}
		st.sets.Append(c, base)
	}

	for _, c := range types.Categories {
		s.findSubFolders(st, c, roots.For(c), true)
	}

	for _, c := range types.Categories {
		span.SetAttributes(attribute.Int("dirs."+c.FolderName(), len(st.sets.For(c))))
		s.logger.Debug().
			Str("category", c.String()).
			Strs("dirs", st.sets.For(c)).
			Msg("Discovered directories")
	}

	return st.sets, nil
}

func (s *Scanner) ensureBase(base string) error {
	if filesystem.IsDir(s.fs, base) {
		return nil
	}
	if !s.opts.CreateMissing {
		s.logger.Debug().Str("path", base).Msg("Base directory missing")
		return nil
	}
	if err := s.fs.MkdirAll(base, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create base directory").
			WithDetail("path", base)
	}
	s.logger.Debug().Str("path", base).Msg("Created base directory")
	return nil
}

func (s *Scanner) findSubFolders(st *scan, category types.Category, path string, requireManifest bool) {
	if !s.opts.SubfolderLoad {
		return
	}

	dirs, err := filesystem.Subdirectories(s.fs, path)
	if err != nil {
		if !filesystem.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", path).Msg("Cannot read directory, skipping")
		}
		return
	}

	for _, dir := range dirs {
		name := dir.Name()
		dirPath := filepath.Join(path, name)

		if s.policy.IsExcluded(dirPath, name) {
			s.logger.Trace().Str("path", dirPath).Msg("Skipping excluded folder")
			continue
		}

		if requireManifest && s.opts.RequireManifest &&
			!filesystem.FileExists(s.fs, filepath.Join(dirPath, ManifestFile)) {
			s.logger.Trace().Str("path", dirPath).Msg("Skipping folder without manifest")
			continue
		}

		s.addFolder(st, category, dirPath, name)
	}
}

func (s *Scanner) addFolder(st *scan, category types.Category, path, name string) {
	if named, ok := types.CategoryForFolder(name); ok {
		category = named
	}
	st.sets.Append(category, path)
	s.logger.Trace().
		Str("category", category.String()).
		Str("path", path).
		Msg("Found folder")

	s.findSubFolders(st, category, path, false)
}
