// Package console hides the host's standard output handles while the mod
// loader starts, and restores them once the host runtime is up.
package console

// Handles nulls and restores the console handles
type Handles interface {
	// Null redirects the handles to the null device
	Null() error

	// Reset restores the handles saved by Null. It is a no-op when
	// nothing is nulled.
	Reset() error
}

// Nop leaves the console alone
type Nop struct{}

func (Nop) Null() error  { return nil }
func (Nop) Reset() error { return nil }

var _ Handles = Nop{}
var _ Handles = (*Suppressor)(nil)
