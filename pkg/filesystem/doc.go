// Package filesystem provides the afero filesystems used by discovery and
// loading, plus a few helpers over afero.Fs.
//
// Production code uses NewOS. Tests use NewMemory to build game layouts
// without touching disk.
package filesystem
