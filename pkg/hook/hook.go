package hook

// Resolver resolves symbol in the library identified by handle and returns
// its address, or 0 when it is not found.
type Resolver func(handle uintptr, symbol string) uintptr

// Detour builds the replacement for a resolution entry point from the
// entry point's original behavior.
type Detour func(original Resolver) Resolver

// Hooker patches resolution entry points
type Hooker interface {
	// Install patches target with the resolver built by detour and returns
	// the original resolver. detour is called with the original before the
	// patch is applied, so no call can observe a half-installed hook.
	Install(target string, detour Detour) (Resolver, error)
}
