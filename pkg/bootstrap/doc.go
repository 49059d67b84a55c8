// Package bootstrap is the process-attach sequence of the mod loader.
//
// Init locates the game from the process path, loads the configuration,
// sets up logging, optionally silences the console and installs the symbol
// interceptor. When the host resolves a runtime entry symbol the
// interceptor hands off to Core.Start, which discovers and loads modules.
//
// A process that is not a recognizable game (no data directory) is left
// untouched: Init returns a nil Core and a nil error.
package bootstrap
