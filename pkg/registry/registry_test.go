package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID   int
	Name string
}

func TestRegister(t *testing.T) {
	reg := New[testItem]()
	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Count())

	t.Run("valid item", func(t *testing.T) {
		require.NoError(t, reg.Register("item1", testItem{ID: 1}))
		assert.Equal(t, 1, reg.Count())
	})

	t.Run("empty name", func(t *testing.T) {
		err := reg.Register("", testItem{ID: 2})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("duplicate keeps first", func(t *testing.T) {
		err := reg.Register("item1", testItem{ID: 3})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

		got, err := reg.Get("item1")
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
	})
}

func TestGetAndLookup(t *testing.T) {
	reg := New[testItem]()
	require.NoError(t, reg.Register("a", testItem{ID: 1, Name: "a"}))

	got, err := reg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = reg.Get("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, ok := reg.Lookup("missing")
	assert.False(t, ok)

	assert.True(t, reg.Has("a"))
	assert.False(t, reg.Has(""))
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	reg := New[testItem]()
	names := []string{"zeta", "alpha", "mid"}
	for i, n := range names {
		require.NoError(t, reg.Register(n, testItem{ID: i}))
	}

	assert.Equal(t, names, reg.List())

	// callers cannot mutate the internal order
	list := reg.List()
	list[0] = "changed"
	assert.Equal(t, names, reg.List())
}

func TestFreeze(t *testing.T) {
	reg := New[testItem]()
	require.NoError(t, reg.Register("a", testItem{ID: 1}))
	assert.False(t, reg.Frozen())

	reg.Freeze()
	assert.True(t, reg.Frozen())

	err := reg.Register("b", testItem{ID: 2})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 1, reg.Count())

	got, ok := reg.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
}

func TestConcurrency(t *testing.T) {
	reg := New[testItem]()
	const goroutines = 10
	const itemsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				assert.NoError(t, reg.Register(fmt.Sprintf("g%d_item%d", id, i), testItem{ID: id*1000 + i}))
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, goroutines*itemsPerGoroutine, reg.Count())

	reg.Freeze()

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				_, ok := reg.Lookup(fmt.Sprintf("g%d_item%d", id, i))
				assert.True(t, ok)
			}
		}(g)
	}
	wg.Wait()
}

type resolverFunc func(string) uintptr

func TestWithFunctions(t *testing.T) {
	reg := New[resolverFunc]()
	require.NoError(t, reg.Register("one", func(string) uintptr { return 1 }))
	require.NoError(t, reg.Register("two", func(string) uintptr { return 2 }))

	fn, err := reg.Get("two")
	require.NoError(t, err)
	assert.Equal(t, uintptr(2), fn("x"))
}
