package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"gopkg.in/yaml.v3"
)

// WasmExtension is the file extension handled by WasmOpener
const WasmExtension = ".wasm"

// WasmOpener compiles WebAssembly modules in a shared wazero runtime.
// Libraries are instantiated under their module name so that modules
// loaded later can import from them.
type WasmOpener struct {
	runtime wazero.Runtime
	logger  zerolog.Logger
}

// NewWasmOpener creates a runtime with custom sections retained and WASI
// available to instantiated libraries.
func NewWasmOpener(ctx context.Context) (*WasmOpener, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCustomSections(true))
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot instantiate WASI")
	}
	return &WasmOpener{
		runtime: rt,
		logger:  logging.GetLogger("loader.wasm"),
	}, nil
}

// Open compiles data and extracts its definitions
func (o *WasmOpener) Open(ctx context.Context, candidate types.ModuleCandidate, data []byte) (*types.LoadedModule, error) {
	compiled, err := o.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleLoad, "cannot compile module")
	}

	defs, err := DecodeDefinitions(compiled.CustomSections())
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	mod := &types.LoadedModule{
		Name:        ModuleName(candidate.Path),
		Path:        candidate.Path,
		Category:    candidate.Category,
		Definitions: defs,
		Handle:      compiled,
	}

	if candidate.Category == types.Libraries {
		cfg := wazero.NewModuleConfig().
			WithName(mod.Name).
			WithStartFunctions("_initialize")
		inst, err := o.runtime.InstantiateModule(ctx, compiled, cfg)
		if err != nil {
			_ = compiled.Close(ctx)
			return nil, errors.Wrapf(err, errors.ErrModuleLoad, "cannot instantiate library '%s'", mod.Name)
		}
		mod.Handle = inst
		o.logger.Debug().Str("module", mod.Name).Msg("Instantiated library")
	}

	for _, d := range defs {
		d.Module = mod
	}
	return mod, nil
}

// Close tears down the runtime and every module in it
func (o *WasmOpener) Close(ctx context.Context) error {
	return o.runtime.Close(ctx)
}

// DecodeDefinitions reads the definitions section out of sections. A module
// without the section declares no definitions.
func DecodeDefinitions(sections []api.CustomSection) ([]*types.ModDefinition, error) {
	for _, s := range sections {
		if s.Name() != types.DefinitionsSection {
			continue
		}
		return ParseDefinitions(s.Data())
	}
	return nil, nil
}

// ParseDefinitions decodes a YAML (or JSON) list of definitions
func ParseDefinitions(payload []byte) ([]*types.ModDefinition, error) {
	var defs []*types.ModDefinition
	if err := yaml.Unmarshal(payload, &defs); err != nil {
		return nil, errors.Wrap(err, errors.ErrModuleDefinitions, "cannot decode definitions")
	}
	for i, d := range defs {
		if d == nil || strings.TrimSpace(d.Name) == "" {
			return nil, errors.Newf(errors.ErrModuleDefinitions, "definition %d has no name", i)
		}
	}
	return defs, nil
}

// ModuleName is the file name of path without its extension
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
