//go:build unix

package console

import (
	"os"
	"sync"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"golang.org/x/sys/unix"
)

// Suppressor points file descriptors at /dev/null and back
type Suppressor struct {
	mu    sync.Mutex
	fds   []int
	saved map[int]int
}

// NewSuppressor manages fds, stdout and stderr by default
func NewSuppressor(fds ...int) *Suppressor {
	if len(fds) == 0 {
		fds = []int{int(os.Stdout.Fd()), int(os.Stderr.Fd())}
	}
	return &Suppressor{fds: fds}
}

// Null saves each descriptor and points it at the null device
func (s *Suppressor) Null() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved != nil {
		return nil
	}

	devNull, err := unix.Open(os.DevNull, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot open null device")
	}
	defer func() { _ = unix.Close(devNull) }()

	saved := make(map[int]int, len(s.fds))
	for _, fd := range s.fds {
		dup, err := unix.Dup(fd)
		if err != nil {
			restore(saved)
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot save descriptor %d", fd)
		}
		saved[fd] = dup
		if err := unix.Dup2(devNull, fd); err != nil {
			restore(saved)
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot null descriptor %d", fd)
		}
	}

	s.saved = saved
	return nil
}

// Reset restores the descriptors saved by Null
func (s *Suppressor) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved == nil {
		return nil
	}
	err := restore(s.saved)
	s.saved = nil
	return err
}

func restore(saved map[int]int) error {
	var first error
	for fd, dup := range saved {
		if err := unix.Dup2(dup, fd); err != nil && first == nil {
			first = errors.Wrapf(err, errors.ErrFileAccess, "cannot restore descriptor %d", fd)
		}
		_ = unix.Close(dup)
	}
	return first
}
