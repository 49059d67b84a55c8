package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modstrap/pkg/discovery"
	"github.com/arthur-debert/modstrap/pkg/filesystem"
	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// GameRoot is where Game fixtures live inside their filesystem
const GameRoot = "/games/demo"

// Game is an in-memory game install
type Game struct {
	FS   afero.Fs
	Root string
}

// NewGame creates an empty game install with the three base directories
func NewGame(t *testing.T) *Game {
	t.Helper()

	g := &Game{FS: filesystem.NewMemory(), Root: GameRoot}
	for _, c := range types.Categories {
		g.Mkdir(t, c.FolderName())
	}
	return g
}

// Path joins rel onto the game root
func (g *Game) Path(rel ...string) string {
	return filepath.Join(append([]string{g.Root}, rel...)...)
}

// Roots returns the discovery roots of the game
func (g *Game) Roots() discovery.Roots {
	return discovery.RootsFor(g.Root)
}

// Mkdir creates a directory below the root
func (g *Game) Mkdir(t *testing.T, rel ...string) string {
	t.Helper()

	path := g.Path(rel...)
	require.NoError(t, g.FS.MkdirAll(path, 0755))
	return path
}

// ModFolder creates a directory with a manifest.json in it
func (g *Game) ModFolder(t *testing.T, rel ...string) string {
	t.Helper()

	path := g.Mkdir(t, rel...)
	g.WriteFile(t, filepath.Join(path, discovery.ManifestFile), []byte(`{"name":"`+filepath.Base(path)+`"}`))
	return path
}

// WriteFile writes data at an absolute path in the game filesystem
func (g *Game) WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()

	require.NoError(t, g.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(g.FS, path, data, 0644))
}

// Module writes a wasm module declaring defs at rel and returns its path
func (g *Game) Module(t *testing.T, rel string, defs ...types.ModDefinition) string {
	t.Helper()

	path := g.Path(rel)
	g.WriteFile(t, path, WasmModule(t, defs...))
	return path
}
