package bootstrap_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/modstrap/pkg/bootstrap"
	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/hook"
	"github.com/arthur-debert/modstrap/pkg/testutil"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const (
	monoDetour   uintptr = 0x1000
	il2cppDetour uintptr = 0x2000
)

var detours = map[string]uintptr{
	"mono_jit_init_version": monoDetour,
	"il2cpp_init":           il2cppDetour,
}

type recordingConsole struct {
	nulls  int
	resets int
}

func (c *recordingConsole) Null() error  { c.nulls++; return nil }
func (c *recordingConsole) Reset() error { c.resets++; return nil }

type host struct {
	game    *testutil.Game
	env     bootstrap.Environment
	slots   *hook.Slots
	console *recordingConsole
	logs    *bytes.Buffer
	lookups int
}

func newHost(t *testing.T) *host {
	t.Helper()

	g := testutil.NewGame(t)
	g.Mkdir(t, "Demo_Data")
	g.Module(t, "Libraries/core.wasm")
	g.Module(t, "Plugins/tools.wasm", types.ModDefinition{Name: "Tools", Capability: types.CapabilityPlugin})
	g.Module(t, "Mods/A.wasm", types.ModDefinition{Name: "A", Capability: types.CapabilityMod})
	g.Module(t, "Mods/B.wasm", types.ModDefinition{Name: "B", Capability: types.CapabilityPlugin})

	h := &host{
		game:    g,
		env:     bootstrap.Environment{ProcessPath: g.Path("Demo.exe"), Platform: types.PlatformLinux},
		slots:   hook.NewSlots(),
		console: &recordingConsole{},
		logs:    &bytes.Buffer{},
	}
	h.slots.Set(hook.TargetSymbol, func(handle uintptr, symbol string) uintptr {
		h.lookups++
		return 0x42
	})
	return h
}

func (h *host) options() bootstrap.Options {
	return bootstrap.Options{
		Hooker:    h.slots,
		Detours:   detours,
		FS:        h.game.FS,
		Console:   h.console,
		LogWriter: h.logs,
		Verbosity: 1,
	}
}

func (h *host) resolve(symbol string) uintptr {
	return h.slots.Call(hook.TargetSymbol, 0, symbol)
}

func TestInit_HandoffLoadsOnce(t *testing.T) {
	t.Setenv("MODSTRAP_LOADER__CAPTURE_PLAYER_LOGS", "false")

	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	h := newHost(t)
	core, err := bootstrap.Init(context.Background(), h.env, h.options())
	require.NoError(t, err)
	require.NotNil(t, core)
	t.Cleanup(func() { _ = core.Close(context.Background()) })

	assert.Equal(t, hook.Installed, core.Interceptor().InstallState())
	assert.Equal(t, 1, h.console.nulls)
	assert.Nil(t, core.Registries())

	assert.Equal(t, uintptr(0x42), h.resolve("glClear"))
	assert.Nil(t, core.Registries(), "unrelated symbols do not trigger loading")

	assert.Equal(t, il2cppDetour, h.resolve("il2cpp_init"))
	regs := core.Registries()
	require.NotNil(t, regs)
	assert.Equal(t, "il2cpp", core.Flavor())
	assert.Equal(t, 1, h.console.resets)

	assert.Equal(t, il2cppDetour, h.resolve("il2cpp_init"))
	assert.Equal(t, monoDetour, h.resolve("mono_jit_init_version"))
	assert.Same(t, regs, core.Registries())
	assert.Equal(t, 1, h.console.resets)
	assert.Equal(t, 4, h.lookups)

	require.Len(t, regs.Libraries, 1)
	require.Len(t, regs.Plugins, 1)
	require.Len(t, regs.Mods, 1)
	assert.Equal(t, "A", regs.Mods[0].Name)
	require.Len(t, regs.Rotten, 1)
	assert.Equal(t, "B", regs.Rotten[0].Source)

	logs := h.logs.String()
	assert.Contains(t, logs, "1 Library loaded.")
	assert.Contains(t, logs, "1 Plugin loaded.")
	assert.Contains(t, logs, "1 Mod loaded.")

	var spans []string
	for _, s := range sr.Ended() {
		spans = append(spans, s.Name())
	}
	assert.Contains(t, spans, "discovery.scan")
	assert.Contains(t, spans, "loader.category")
	assert.Contains(t, spans, "bootstrap.start")
}

func TestInit_MissingDataDirAbortsSilently(t *testing.T) {
	h := newHost(t)
	h.env.ProcessPath = h.game.Path("Other.exe")

	core, err := bootstrap.Init(context.Background(), h.env, h.options())
	require.NoError(t, err)
	assert.Nil(t, core)

	// nothing hooked, nothing logged
	assert.Equal(t, uintptr(0x42), h.resolve("il2cpp_init"))
	assert.Equal(t, 0, h.console.nulls)
	assert.Empty(t, h.logs.String())
}

func TestInit_DisabledByConfig(t *testing.T) {
	t.Setenv("MODSTRAP_LOADER__DISABLE", "true")

	h := newHost(t)
	core, err := bootstrap.Init(context.Background(), h.env, h.options())
	require.NoError(t, err)
	assert.Nil(t, core)
	assert.Equal(t, uintptr(0x42), h.resolve("il2cpp_init"))
}

func TestInit_CapturePlayerLogsKeepsConsole(t *testing.T) {
	t.Setenv("MODSTRAP_LOADER__CAPTURE_PLAYER_LOGS", "true")

	h := newHost(t)
	core, err := bootstrap.Init(context.Background(), h.env, h.options())
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close(context.Background()) })

	h.resolve("mono_jit_init_version")
	assert.Equal(t, 0, h.console.nulls)
	assert.Equal(t, 0, h.console.resets)
	assert.Equal(t, "mono", core.Flavor())
}

func TestInit_RequiresHooker(t *testing.T) {
	h := newHost(t)
	opts := h.options()
	opts.Hooker = nil

	_, err := bootstrap.Init(context.Background(), h.env, opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestInit_HookFailureRestoresConsole(t *testing.T) {
	t.Setenv("MODSTRAP_LOADER__CAPTURE_PLAYER_LOGS", "false")

	h := newHost(t)
	opts := h.options()
	opts.Target = "missing_entry_point"

	core, err := bootstrap.Init(context.Background(), h.env, opts)
	assert.Nil(t, core)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookInstall))
	assert.Equal(t, 1, h.console.nulls)
	assert.Equal(t, 1, h.console.resets)
}

func TestCore_StartRunsOnce(t *testing.T) {
	h := newHost(t)
	core, err := bootstrap.NewCore(h.game.FS, h.game.Root, nil, types.PlatformLinux)
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close(context.Background()) })

	first, err := core.Start(context.Background())
	require.NoError(t, err)
	second, err := core.Start(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	sets := core.DirectorySets()
	assert.Equal(t, h.game.Path("Mods"), sets.Mods[0])
	assert.Nil(t, core.Interceptor())
}

func (h *host) writeConfig(t *testing.T, toml string) {
	t.Helper()
	h.game.WriteFile(t, h.game.Path("UserData", "modstrap.toml"), []byte(toml))
}

func TestInit_InvalidExclusionsFailBeforeHooking(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"blank pattern", "[loader]\ncapture_player_logs = false\n[exclusions]\nexact = [\"  \"]\n"},
		{"blank full path", "[loader]\ncapture_player_logs = false\n[exclusions]\nfull_paths = [\"\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t)
			h.writeConfig(t, tt.config)

			core, err := bootstrap.Init(context.Background(), h.env, h.options())
			assert.Nil(t, core)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)

			assert.Equal(t, uintptr(0x42), h.resolve("il2cpp_init"), "no hook was installed")
			assert.Equal(t, 0, h.console.nulls)
		})
	}
}

func TestInit_ReadsConfigFromGivenFilesystem(t *testing.T) {
	t.Run("disable", func(t *testing.T) {
		h := newHost(t)
		h.writeConfig(t, "[loader]\ndisable = true\n")

		core, err := bootstrap.Init(context.Background(), h.env, h.options())
		require.NoError(t, err)
		assert.Nil(t, core)
		assert.Equal(t, uintptr(0x42), h.resolve("il2cpp_init"))
	})

	t.Run("exclusions", func(t *testing.T) {
		h := newHost(t)
		h.game.ModFolder(t, "Mods", "Extra")
		h.game.Module(t, "Mods/Extra/C.wasm", types.ModDefinition{Name: "C", Capability: types.CapabilityMod})
		h.writeConfig(t, "[loader]\ncapture_player_logs = false\n[exclusions]\nexact = [\"extra\"]\n")

		core, err := bootstrap.Init(context.Background(), h.env, h.options())
		require.NoError(t, err)
		require.NotNil(t, core)
		t.Cleanup(func() { _ = core.Close(context.Background()) })
		assert.Equal(t, 1, h.console.nulls)

		h.resolve("il2cpp_init")
		regs := core.Registries()
		require.NotNil(t, regs)
		require.Len(t, regs.Mods, 1)
		assert.Equal(t, "A", regs.Mods[0].Name)
		assert.Equal(t, []string{h.game.Path("Mods")}, []string(core.DirectorySets().Mods))
	})
}

func TestNewCore_InvalidExclusions(t *testing.T) {
	cfg := config.Default()
	cfg.Exclusions.StartsWith = append(cfg.Exclusions.StartsWith, " ")

	core, err := bootstrap.NewCore(afero.NewMemMapFs(), "/games/demo", cfg, types.PlatformLinux)
	assert.Nil(t, core)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
