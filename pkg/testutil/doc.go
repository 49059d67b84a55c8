// Package testutil provides fixtures for testing modstrap components.
//
// Key components:
//   - Game: an in-memory game install (afero) with builders for category
//     folders, manifests and module files
//   - WasmModule: minimal wasm binaries carrying a definitions section
//
// All fixtures are in memory; tests that need the real filesystem use
// t.TempDir directly.
package testutil
