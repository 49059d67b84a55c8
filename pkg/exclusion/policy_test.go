package exclusion_test

import (
	"testing"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/exclusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name    string
		rule    exclusion.Rule
		folder  string
		matched bool
	}{
		{"dot prefix", exclusion.Rule{Kind: exclusion.StartsWith, Pattern: "."}, ".cache", true},
		{"tilde prefix", exclusion.Rule{Kind: exclusion.StartsWith, Pattern: "~"}, "~backup", true},
		{"prefix any case", exclusion.Rule{Kind: exclusion.StartsWith, Pattern: "Temp"}, "TEMPfiles", true},
		{"lower pattern upper name", exclusion.Rule{Kind: exclusion.StartsWith, Pattern: "old"}, "OldStuff", true},
		{"prefix miss", exclusion.Rule{Kind: exclusion.StartsWith, Pattern: "."}, "cache", false},
		{"exact", exclusion.Rule{Kind: exclusion.ExactMatch, Pattern: "Disabled"}, "Disabled", true},
		{"exact other case", exclusion.Rule{Kind: exclusion.ExactMatch, Pattern: "Disabled"}, "DISABLED", true},
		{"exact is not prefix", exclusion.Rule{Kind: exclusion.ExactMatch, Pattern: "Disabled"}, "DisabledMods", false},
		{"suffix", exclusion.Rule{Kind: exclusion.EndsWith, Pattern: ".bak"}, "Mods.BAK", true},
		{"suffix miss", exclusion.Rule{Kind: exclusion.EndsWith, Pattern: ".bak"}, "bakery", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matched, tt.rule.Matches(tt.folder))
		})
	}
}

func TestPolicy_StartsWithIsCaseInsensitive(t *testing.T) {
	p := exclusion.NewPolicy()
	require.NoError(t, p.AddRule(exclusion.StartsWith, "wip"))

	for _, name := range []string{"wip", "WIP-mods", "Wip_test", "wIpX"} {
		assert.True(t, p.IsExcluded("/g/Mods/"+name, name), name)
	}
	assert.False(t, p.IsExcluded("/g/Mods/mywip", "mywip"))
}

func TestPolicy_FullPathWinsOverPassingName(t *testing.T) {
	p := exclusion.NewPolicy()
	require.NoError(t, p.AddRule(exclusion.StartsWith, "."))
	require.NoError(t, p.AddFullPath("/g/Mods/Legacy"))

	assert.True(t, p.IsExcluded("/g/Mods/Legacy", "Legacy"))
	assert.False(t, p.IsExcluded("/g/Plugins/Legacy", "Legacy"), "full paths are matched verbatim")
	assert.False(t, p.IsExcluded("/g/Mods/legacy", "legacy"))
}

func TestPolicy_BlankPatternsAreConfigErrors(t *testing.T) {
	p := exclusion.NewPolicy()

	for _, pattern := range []string{"", "   ", "\t"} {
		err := p.AddRule(exclusion.ExactMatch, pattern)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

		err = p.AddFullPath(pattern)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	}
	assert.Empty(t, p.Rules())
}

func TestPolicy_RulesKeepRegistrationOrder(t *testing.T) {
	p := exclusion.NewPolicy()
	require.NoError(t, p.AddRule(exclusion.EndsWith, "_old"))
	require.NoError(t, p.AddRule(exclusion.StartsWith, "."))

	rules := p.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, exclusion.EndsWith, rules[0].Kind)
	assert.Equal(t, exclusion.StartsWith, rules[1].Kind)
}

func TestFromConfig(t *testing.T) {
	p, err := exclusion.FromConfig(config.Default().Exclusions)
	require.NoError(t, err)

	assert.True(t, p.IsExcluded("/g/Mods/.cache", ".cache"))
	assert.True(t, p.IsExcluded("/g/Mods/~tmp", "~tmp"))
	assert.True(t, p.IsExcluded("/g/Mods/Disabled", "Disabled"))
	assert.True(t, p.IsExcluded("/g/Mods/Broken", "Broken"))
	assert.False(t, p.IsExcluded("/g/Mods/Speedrun", "Speedrun"))
}

func TestFromConfig_RejectsBlankEntries(t *testing.T) {
	_, err := exclusion.FromConfig(config.Exclusions{EndsWith: []string{""}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	_, err = exclusion.FromConfig(config.Exclusions{FullPaths: []string{" "}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
