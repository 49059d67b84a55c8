// Package registry provides a generic, append-only registry keyed by
// name. Registration order is preserved and the first registration of a
// name wins. A registry can be frozen, after which it is read-only and
// lookups take no lock.
package registry
