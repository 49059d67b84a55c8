package hook

import (
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/arthur-debert/modstrap/pkg/registry"
)

// Redirect replaces the address of Symbol with Detour. Init runs once, on
// the first redirected resolution in the process, with the handle of the
// library being resolved.
//
// Other callers resolving a redirected symbol block until Init returns.
// Init may resolve unredirected symbols through the hooked entry point, but
// must not resolve a redirected one: that call waits on Init itself.
type Redirect struct {
	Symbol string
	Detour uintptr
	Init   func(handle uintptr)
}

// Table is a read-only union of redirect tables
type Table struct {
	redirects registry.Registry[Redirect]
}

// NewTable builds the union of tables. When a symbol appears more than
// once the first registration wins.
func NewTable(tables ...[]Redirect) *Table {
	logger := logging.GetLogger("hook")
	reg := registry.New[Redirect]()

	for _, table := range tables {
		for _, r := range table {
			if err := reg.Register(r.Symbol, r); err != nil {
				logger.Debug().Err(err).Str("symbol", r.Symbol).Msg("Ignoring redirect")
			}
		}
	}
	reg.Freeze()

	return &Table{redirects: reg}
}

// Lookup returns the redirect for symbol
func (t *Table) Lookup(symbol string) (Redirect, bool) {
	return t.redirects.Lookup(symbol)
}

// Symbols lists the redirected symbols in registration order
func (t *Table) Symbols() []string {
	return t.redirects.List()
}

// Len is the number of redirected symbols
func (t *Table) Len() int {
	return t.redirects.Count()
}
