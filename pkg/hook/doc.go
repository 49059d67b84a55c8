// Package hook intercepts a process's dynamic symbol resolution and
// detects when the host's managed runtime comes up.
//
// A Hooker patches a named resolution entry point (dlsym, GetProcAddress)
// with a Detour built from the unpatched Resolver. The Interceptor is the
// detour: it always calls the original resolver, and when the requested
// symbol is in its redirect Table it returns the redirect's detour address
// instead. The first redirected resolution in the process runs that
// redirect's Init exactly once before returning.
//
// Slots is an in-process Hooker. Embedders that perform the actual code
// patching route resolution through Slots.Call.
package hook
