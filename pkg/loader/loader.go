package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/registry"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Loader loads the modules found by discovery into registries
type Loader struct {
	fs       afero.Fs
	openers  registry.Registry[Opener]
	platform types.Platform
	logger   zerolog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithPlatform overrides the platform definitions are checked against
func WithPlatform(p types.Platform) Option {
	return func(l *Loader) {
		l.platform = p
	}
}

// WithOpener registers o for files with extension ext. The first opener
// registered for an extension wins.
func WithOpener(ext string, o Opener) Option {
	return func(l *Loader) {
		if err := l.Register(ext, o); err != nil {
			l.logger.Debug().Err(err).Str("ext", ext).Msg("Ignoring opener")
		}
	}
}

// New creates a loader reading from fsys
func New(fsys afero.Fs, opts ...Option) *Loader {
	l := &Loader{
		fs:       fsys,
		openers:  registry.New[Opener](),
		platform: types.CurrentPlatform(),
		logger:   logging.GetLogger("loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register adds an opener for ext. Openers cannot be added once loading
// has started.
func (l *Loader) Register(ext string, o Opener) error {
	return l.openers.Register(normalizeExt(ext), o)
}

// Extensions lists the registered extensions
func (l *Loader) Extensions() []string {
	return l.openers.List()
}

// LoadAll loads every category in order and returns the registries
func (l *Loader) LoadAll(ctx context.Context, sets types.DirectorySets) *types.Registries {
	l.openers.Freeze()

	regs := types.NewRegistries()
	for _, c := range types.Categories {
		l.LoadCategory(ctx, c, sets.For(c), regs)
	}
	return regs
}

// LoadCategory loads the modules in dirs as category c into regs
func (l *Loader) LoadCategory(ctx context.Context, c types.Category, dirs types.DirectorySet, regs *types.Registries) {
	ctx, span := otel.Tracer("modstrap/loader").Start(ctx, "loader.category",
		trace.WithAttributes(attribute.String("category", c.String())))
	defer span.End()

	logger := l.logger.With().Str("category", c.String()).Logger()
	logger.Info().Msgf("Loading %s...", c.Label(2))

	modules := l.loadModules(ctx, logger, c, dirs, regs)
	regs.Modules = append(regs.Modules, modules...)

	if c == types.Libraries {
		regs.Libraries = append(regs.Libraries, modules...)
	} else {
		l.validate(logger, c, modules, regs)
	}

	count := regs.Count(c)
	span.SetAttributes(
		attribute.Int("modules", len(modules)),
		attribute.Int("accepted", count),
		attribute.Int("rotten", len(regs.RottenFor(c))),
	)
	logger.Info().Msgf("%d %s loaded.", count, c.Label(count))
}

func (l *Loader) loadModules(ctx context.Context, logger zerolog.Logger, c types.Category, dirs types.DirectorySet, regs *types.Registries) []*types.LoadedModule {
	var modules []*types.LoadedModule

	for _, dir := range dirs {
		files, err := filesystem.Files(l.fs, dir)
		if err != nil {
			if !filesystem.IsNotExist(err) {
				logger.Warn().Err(err).Str("path", dir).Msg("Cannot read directory, skipping")
			}
			continue
		}

		for _, f := range files {
			opener, ok := l.openers.Lookup(normalizeExt(filepath.Ext(f.Name())))
			if !ok {
				continue
			}

			candidate := types.ModuleCandidate{Path: filepath.Join(dir, f.Name()), Category: c}
			mod, err := l.open(ctx, opener, candidate)
			if err != nil {
				logger.Error().Err(err).Str("path", candidate.Path).Msg("Failed to load module")
				regs.AddRotten(types.RottenEntry{
					Source:   candidate.Path,
					Module:   candidate.Path,
					Category: c,
					Message:  fmt.Sprintf("Failed to load module '%s'", candidate.Path),
					Cause:    err,
				})
				continue
			}

			logger.Debug().
				Str("module", mod.Name).
				Int("definitions", len(mod.Definitions)).
				Msg("Loaded module")
			modules = append(modules, mod)
		}
	}

	return modules
}

func (l *Loader) open(ctx context.Context, opener Opener, candidate types.ModuleCandidate) (*types.LoadedModule, error) {
	data, err := afero.ReadFile(l.fs, candidate.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleLoad, "cannot read module").
			WithDetail("path", candidate.Path)
	}

	mod, err := opener.Open(ctx, candidate, data)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrModuleLoad) {
			err = errors.Wrap(err, errors.ErrModuleLoad, "cannot open module")
		}
		return nil, err
	}
	return mod, nil
}

func (l *Loader) validate(logger zerolog.Logger, c types.Category, modules []*types.LoadedModule, regs *types.Registries) {
	required := c.RequiredCapability()

	for _, mod := range modules {
		for _, d := range mod.Definitions {
			if d.Capability != required {
				msg := fmt.Sprintf("Failed to load Mod '%s' from '%s': The given Mod is a %s and cannot be loaded as a %s. Make sure it's in the right folder.",
					d.Name, d.Location(), d.Capability, required)
				logger.Warn().Msg(msg)
				regs.AddRotten(types.RottenEntry{
					Source:   d.Name,
					Module:   d.Location(),
					Category: c,
					Message:  msg,
					Cause: errors.New(errors.ErrCapabilityMismatch, msg).
						WithDetail("actual", d.Capability.String()).
						WithDetail("required", required.String()),
				})
				continue
			}

			if !d.Platforms.IsCompatible(l.platform) {
				msg := fmt.Sprintf("Failed to load Mod '%s' from '%s': The given Mod is not compatible with %s.",
					d.Name, d.Location(), l.platform)
				logger.Warn().Msg(msg)
				regs.AddRotten(types.RottenEntry{
					Source:   d.Name,
					Module:   d.Location(),
					Category: c,
					Message:  msg,
					Cause: errors.New(errors.ErrPlatformIncompatible, msg).
						WithDetail("platform", string(l.platform)),
				})
				continue
			}

			regs.Accept(c, d)
		}
	}
}

// Close releases every opener
func (l *Loader) Close(ctx context.Context) error {
	var first error
	for _, ext := range l.openers.List() {
		o, _ := l.openers.Lookup(ext)
		if err := o.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
