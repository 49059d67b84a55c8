package hook

import (
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/modstrap/pkg/errors"
)

// Slots is a Hooker over a table of named resolver slots. Each slot holds
// the resolver currently serving its entry point. Calls load the slot
// atomically and take no lock.
type Slots struct {
	mu    sync.Mutex
	slots sync.Map // string -> *atomic.Pointer[Resolver]
}

// NewSlots returns an empty slot table
func NewSlots() *Slots {
	return &Slots{}
}

// Set points target at r. It is how an embedder provides the host's real
// resolver before anything is installed.
func (s *Slots) Set(target string, r Resolver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, _ := s.slots.LoadOrStore(target, &atomic.Pointer[Resolver]{})
	slot.(*atomic.Pointer[Resolver]).Store(&r)
}

// Install replaces the resolver of target with detour(original)
func (s *Slots) Install(target string, detour Detour) (Resolver, error) {
	if detour == nil {
		return nil, errors.New(errors.ErrInvalidInput, "detour cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.slots.Load(target)
	if !ok {
		return nil, errors.Newf(errors.ErrHookInstall, "no resolver for target '%s'", target)
	}
	slot := v.(*atomic.Pointer[Resolver])

	original := *slot.Load()
	patched := detour(original)
	if patched == nil {
		return nil, errors.Newf(errors.ErrHookInstall, "detour for '%s' returned no resolver", target)
	}

	slot.Store(&patched)
	return original, nil
}

// Call resolves symbol through the current resolver of target. An unknown
// target resolves nothing.
func (s *Slots) Call(target string, handle uintptr, symbol string) uintptr {
	v, ok := s.slots.Load(target)
	if !ok {
		return 0
	}
	r := v.(*atomic.Pointer[Resolver]).Load()
	if r == nil || *r == nil {
		return 0
	}
	return (*r)(handle, symbol)
}

// Resolver returns a resolver bound to target, for hosts that want a
// function value rather than a slot name.
func (s *Slots) Resolver(target string) Resolver {
	return func(handle uintptr, symbol string) uintptr {
		return s.Call(target, handle, symbol)
	}
}
