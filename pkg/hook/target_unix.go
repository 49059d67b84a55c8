//go:build unix

package hook

// TargetSymbol is the resolution entry point hooked on this platform
const TargetSymbol = "dlsym"
