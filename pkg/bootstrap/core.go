package bootstrap

import (
	"context"
	"sync"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/discovery"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/exclusion"
	"github.com/arthur-debert/modstrap/pkg/hook"
	"github.com/arthur-debert/modstrap/pkg/loader"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Core runs the startup pipeline: discovery, then loading
type Core struct {
	fs       afero.Fs
	baseDir  string
	cfg      *config.Config
	policy   *exclusion.Policy
	platform types.Platform
	logger   zerolog.Logger

	interceptor *hook.Interceptor

	mu      sync.Mutex
	started bool
	flavor  string
	sets    types.DirectorySets
	regs    *types.Registries
	loader  *loader.Loader
}

// NewCore creates a pipeline over baseDir. Invalid exclusions in cfg are
// a configuration error.
func NewCore(fsys afero.Fs, baseDir string, cfg *config.Config, platform types.Platform) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	policy, err := exclusion.FromConfig(cfg.Exclusions)
	if err != nil {
		return nil, err
	}
	return &Core{
		fs:       fsys,
		baseDir:  baseDir,
		cfg:      cfg,
		policy:   policy,
		platform: platform,
		logger:   logging.GetLogger("bootstrap"),
	}, nil
}

// Scan discovers the module directories
func (c *Core) Scan(ctx context.Context) (types.DirectorySets, error) {
	scanner := discovery.NewScanner(c.fs, c.policy, discovery.OptionsFromConfig(c.cfg))
	return scanner.Scan(ctx, discovery.RootsFor(c.baseDir))
}

// Start scans and loads every category. It runs once; later calls return
// the registries of the first run.
func (c *Core) Start(ctx context.Context) (*types.Registries, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return c.regs, nil
	}

	ctx, span := otel.Tracer("modstrap/bootstrap").Start(ctx, "bootstrap.start")
	defer span.End()
	defer logging.LogOperationStart(c.logger, "start")()

	sets, err := c.Scan(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	opener, err := loader.NewWasmOpener(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	l := loader.New(c.fs,
		loader.WithOpener(loader.WasmExtension, opener),
		loader.WithPlatform(c.platform),
	)

	regs := l.LoadAll(ctx, sets)
	span.SetAttributes(
		attribute.Int("libraries", regs.Count(types.Libraries)),
		attribute.Int("plugins", regs.Count(types.Plugins)),
		attribute.Int("mods", regs.Count(types.Mods)),
		attribute.Int("rotten", len(regs.Rotten)),
	)

	c.started = true
	c.sets = sets
	c.regs = regs
	c.loader = l
	return regs, nil
}

// Registries returns the loaded registries, nil before Start
func (c *Core) Registries() *types.Registries {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs
}

// DirectorySets returns the directories discovered by Start
func (c *Core) DirectorySets() types.DirectorySets {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// Flavor is the runtime flavor that triggered the handoff, "" before it
func (c *Core) Flavor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flavor
}

// Interceptor is the installed interceptor, nil for a Core built by NewCore
func (c *Core) Interceptor() *hook.Interceptor {
	return c.interceptor
}

// Config is the configuration the core runs with
func (c *Core) Config() *config.Config {
	return c.cfg
}

// BaseDir is the mod root
func (c *Core) BaseDir() string {
	return c.baseDir
}

// Close releases the loaded modules
func (c *Core) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loader == nil {
		return nil
	}
	err := c.loader.Close(ctx)
	c.loader = nil
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot release modules")
	}
	return nil
}

func (c *Core) setFlavor(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flavor = name
}
