// Package runtimes lists the managed runtime flavors a host can embed and
// the symbols whose resolution signals that each one is starting.
package runtimes

import (
	"github.com/arthur-debert/modstrap/pkg/hook"
	"github.com/arthur-debert/modstrap/pkg/logging"
)

// Flavor is a managed runtime a host may embed
type Flavor struct {
	Name string

	// Symbols are resolved by the host once the runtime is loaded
	Symbols []string
}

var (
	Mono   = Flavor{Name: "mono", Symbols: []string{"mono_jit_init_version"}}
	Il2Cpp = Flavor{Name: "il2cpp", Symbols: []string{"il2cpp_init"}}
)

// Flavors lists the known flavors in precedence order
var Flavors = []Flavor{Mono, Il2Cpp}

// InitFunc is called with the flavor that was detected
type InitFunc func(f Flavor, handle uintptr)

// Redirects builds the redirect table of f. detours maps each symbol to
// the address returned in its place. Symbols without a detour are left
// unredirected.
func (f Flavor) Redirects(detours map[string]uintptr, init InitFunc) []hook.Redirect {
	logger := logging.GetLogger("runtimes")

	var out []hook.Redirect
	for _, sym := range f.Symbols {
		addr, ok := detours[sym]
		if !ok || addr == 0 {
			logger.Debug().Str("flavor", f.Name).Str("symbol", sym).Msg("No detour, not redirecting")
			continue
		}
		r := hook.Redirect{Symbol: sym, Detour: addr}
		if init != nil {
			r.Init = func(handle uintptr) { init(f, handle) }
		}
		out = append(out, r)
	}
	return out
}

// Table builds the union table of all flavors
func Table(detours map[string]uintptr, init InitFunc) *hook.Table {
	tables := make([][]hook.Redirect, 0, len(Flavors))
	for _, f := range Flavors {
		tables = append(tables, f.Redirects(detours, init))
	}
	return hook.NewTable(tables...)
}

// ForSymbol returns the flavor owning symbol
func ForSymbol(symbol string) (Flavor, bool) {
	for _, f := range Flavors {
		for _, s := range f.Symbols {
			if s == symbol {
				return f, true
			}
		}
	}
	return Flavor{}, false
}

// Symbols lists every flavor's symbols in precedence order
func Symbols() []string {
	var out []string
	for _, f := range Flavors {
		out = append(out, f.Symbols...)
	}
	return out
}
