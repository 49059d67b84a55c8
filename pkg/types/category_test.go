package types_test

import (
	"testing"

	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCategoryOrder(t *testing.T) {
	assert.Equal(t, []types.Category{types.Libraries, types.Plugins, types.Mods}, types.Categories)
	assert.Less(t, int(types.Libraries), int(types.Plugins))
	assert.Less(t, int(types.Plugins), int(types.Mods))
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		category types.Category
		count    int
		want     string
	}{
		{types.Mods, 0, "Mods"},
		{types.Mods, 1, "Mod"},
		{types.Mods, 2, "Mods"},
		{types.Plugins, 1, "Plugin"},
		{types.Plugins, 3, "Plugins"},
		{types.Libraries, 1, "Library"},
		{types.Libraries, 2, "Libraries"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Label(tt.count))
		})
	}
}

func TestCategoryForFolder(t *testing.T) {
	c, ok := types.CategoryForFolder("Plugins")
	require.True(t, ok)
	assert.Equal(t, types.Plugins, c)

	_, ok = types.CategoryForFolder("plugins")
	assert.False(t, ok, "folder names are matched exactly")

	_, ok = types.CategoryForFolder("Extras")
	assert.False(t, ok)
}

func TestRequiredCapability(t *testing.T) {
	assert.Equal(t, types.CapabilityNone, types.Libraries.RequiredCapability())
	assert.Equal(t, types.CapabilityPlugin, types.Plugins.RequiredCapability())
	assert.Equal(t, types.CapabilityMod, types.Mods.RequiredCapability())
}

func TestDefinitionDecoding(t *testing.T) {
	payload := `
- name: Speedrun Timer
  version: 1.2.0
  capability: Mod
  platforms: [WINDOWS_X64, linux]
- name: Profiler
  capability: plugin
`
	var defs []types.ModDefinition
	require.NoError(t, yaml.Unmarshal([]byte(payload), &defs))
	require.Len(t, defs, 2)

	assert.Equal(t, types.CapabilityMod, defs[0].Capability)
	assert.Equal(t, types.Platforms{types.PlatformWindows, types.PlatformLinux}, defs[0].Platforms)
	assert.Equal(t, types.CapabilityPlugin, defs[1].Capability)
	assert.Empty(t, defs[1].Platforms)
}

func TestDefinitionDecoding_UnknownCapability(t *testing.T) {
	var defs []types.ModDefinition
	err := yaml.Unmarshal([]byte(`[{name: X, capability: driver}]`), &defs)
	assert.Error(t, err)
}

func TestPlatformsIsCompatible(t *testing.T) {
	tests := []struct {
		name      string
		platforms types.Platforms
		current   types.Platform
		want      bool
	}{
		{"empty is universal", nil, types.PlatformLinux, true},
		{"explicit universal", types.Platforms{types.PlatformUniversal}, types.PlatformMac, true},
		{"listed", types.Platforms{types.PlatformWindows, types.PlatformLinux}, types.PlatformLinux, true},
		{"not listed", types.Platforms{types.PlatformWindows}, types.PlatformLinux, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platforms.IsCompatible(tt.current))
		})
	}
}

func TestPlatformForGOOS(t *testing.T) {
	assert.Equal(t, types.PlatformWindows, types.PlatformForGOOS("windows"))
	assert.Equal(t, types.PlatformMac, types.PlatformForGOOS("darwin"))
	assert.Equal(t, types.PlatformAndroid, types.PlatformForGOOS("android"))
	assert.Equal(t, types.PlatformLinux, types.PlatformForGOOS("freebsd"))
}

func TestDirectorySets(t *testing.T) {
	var sets types.DirectorySets
	sets.Append(types.Libraries, "/g/Libraries")
	sets.Append(types.Mods, "/g/Mods")
	sets.Append(types.Plugins, "/g/Plugins")
	sets.Append(types.Mods, "/g/Mods/Extra")

	assert.Equal(t, types.DirectorySet{"/g/Mods", "/g/Mods/Extra"}, sets.For(types.Mods))
	assert.Equal(t, []string{"/g/Libraries", "/g/Plugins", "/g/Mods", "/g/Mods/Extra"}, sets.All())
	assert.True(t, sets.Contains(types.Plugins, "/g/Plugins"))
	assert.False(t, sets.Contains(types.Libraries, "/g/Plugins"))
}

func TestRegistriesCount(t *testing.T) {
	r := types.NewRegistries()
	r.Libraries = append(r.Libraries, &types.LoadedModule{Name: "core"})
	r.Accept(types.Mods, &types.ModDefinition{Name: "a"})
	r.Accept(types.Mods, &types.ModDefinition{Name: "b"})
	r.AddRotten(types.RottenEntry{Source: "c", Category: types.Mods})

	assert.Equal(t, 1, r.Count(types.Libraries))
	assert.Equal(t, 0, r.Count(types.Plugins))
	assert.Equal(t, 2, r.Count(types.Mods))
	assert.Len(t, r.RottenFor(types.Mods), 1)
	assert.Empty(t, r.RottenFor(types.Plugins))
}
