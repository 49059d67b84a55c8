//go:build unix

package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuppressor_NullAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	s := NewSuppressor(int(f.Fd()))

	_, err = f.WriteString("before\n")
	require.NoError(t, err)

	require.NoError(t, s.Null())
	require.NoError(t, s.Null(), "nulling twice is a no-op")
	_, err = f.WriteString("hidden\n")
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	require.NoError(t, s.Reset(), "reset without null is a no-op")
	_, err = f.WriteString("after\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before\n")
	assert.Contains(t, string(data), "after\n")
	assert.NotContains(t, string(data), "hidden")
}

func TestNop(t *testing.T) {
	var h Handles = Nop{}
	assert.NoError(t, h.Null())
	assert.NoError(t, h.Reset())
}
