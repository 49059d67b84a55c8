package hook

import (
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/rs/zerolog"
)

// InstallState tracks Interceptor.Install
type InstallState int32

const (
	NotInstalled InstallState = iota
	Installing
	Installed
)

func (s InstallState) String() string {
	switch s {
	case NotInstalled:
		return "not-installed"
	case Installing:
		return "installing"
	case Installed:
		return "installed"
	}
	return "unknown"
}

// RuntimeState tracks whether the host runtime has been detected
type RuntimeState int32

const (
	Waiting RuntimeState = iota
	Initializing
	Steady
)

func (s RuntimeState) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Steady:
		return "steady"
	}
	return "waiting"
}

// ConsoleResetter restores console handles nulled at startup
type ConsoleResetter interface {
	Reset() error
}

// Interceptor redirects symbol resolution through a Table
type Interceptor struct {
	table   *Table
	console ConsoleResetter

	install atomic.Int32
	runtime atomic.Int32

	// mu serializes the handoff. It is never taken once runtime is Steady.
	mu sync.Mutex

	original Resolver
	logger   zerolog.Logger
}

// NewInterceptor creates an interceptor over table. console may be nil.
func NewInterceptor(table *Table, console ConsoleResetter) *Interceptor {
	if table == nil {
		table = NewTable()
	}
	return &Interceptor{
		table:   table,
		console: console,
		logger:  logging.GetLogger("hook"),
	}
}

// Install hooks target through h. Only the first call installs. Repeated
// or reentrant calls return nil without touching h. A failed install can
// be retried.
func (i *Interceptor) Install(h Hooker, target string) error {
	if !i.install.CompareAndSwap(int32(NotInstalled), int32(Installing)) {
		i.logger.Debug().
			Str("target", target).
			Str("state", i.InstallState().String()).
			Msg("Interceptor already installed, skipping")
		return nil
	}

	original, err := h.Install(target, i.Detour)
	if err != nil {
		i.install.Store(int32(NotInstalled))
		return errors.Wrapf(err, errors.ErrHookInstall, "cannot hook '%s'", target).
			WithDetail("target", target)
	}

	i.original = original
	i.install.Store(int32(Installed))
	i.logger.Debug().
		Str("target", target).
		Strs("symbols", i.table.Symbols()).
		Msg("Interceptor installed")
	return nil
}

// Detour wraps original with the redirect logic. It satisfies the Detour
// type so it can be handed to any Hooker.
func (i *Interceptor) Detour(original Resolver) Resolver {
	return func(handle uintptr, symbol string) uintptr {
		return i.resolve(original, handle, symbol)
	}
}

func (i *Interceptor) resolve(original Resolver, handle uintptr, symbol string) uintptr {
	addr := original(handle, symbol)

	r, ok := i.table.Lookup(symbol)
	if !ok {
		return addr
	}

	if RuntimeState(i.runtime.Load()) != Steady {
		i.handoff(r, handle)
	}

	i.logger.Debug().Str("symbol", symbol).Msg("Redirecting symbol")
	return r.Detour
}

func (i *Interceptor) handoff(r Redirect, handle uintptr) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if RuntimeState(i.runtime.Load()) == Steady {
		return
	}

	i.logger.Info().Str("symbol", r.Symbol).Msg("Runtime detected")
	i.runtime.Store(int32(Initializing))
	if r.Init != nil {
		r.Init(handle)
	}
	if i.console != nil {
		if err := i.console.Reset(); err != nil {
			i.logger.Warn().Err(err).Msg("Failed to restore console handles")
		}
	}

	i.runtime.Store(int32(Steady))
}

// InstallState reports the install state
func (i *Interceptor) InstallState() InstallState {
	return InstallState(i.install.Load())
}

// RuntimeState reports whether the handoff has happened
func (i *Interceptor) RuntimeState() RuntimeState {
	return RuntimeState(i.runtime.Load())
}

// Original is the resolver that was replaced, nil until installed
func (i *Interceptor) Original() Resolver {
	if i.InstallState() != Installed {
		return nil
	}
	return i.original
}
