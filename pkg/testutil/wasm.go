package testutil

import (
	"testing"

	"github.com/arthur-debert/modstrap/pkg/types"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var wasmHeader = []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

// WasmModule returns a minimal wasm binary whose definitions section lists
// defs. With no defs the module has no definitions section at all.
func WasmModule(t *testing.T, defs ...types.ModDefinition) []byte {
	t.Helper()

	if len(defs) == 0 {
		return append([]byte(nil), wasmHeader...)
	}
	payload, err := yaml.Marshal(defs)
	require.NoError(t, err)
	return WasmWithSection(types.DefinitionsSection, payload)
}

// WasmWithSection returns a minimal wasm binary with one custom section
func WasmWithSection(name string, payload []byte) []byte {
	var body []byte
	body = appendULEB(body, uint32(len(name)))
	body = append(body, name...)
	body = append(body, payload...)

	out := append([]byte(nil), wasmHeader...)
	out = append(out, 0x00) // custom section id
	out = appendULEB(out, uint32(len(body)))
	return append(out, body...)
}

func appendULEB(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}
