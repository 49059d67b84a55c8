// Package types defines the data model shared by discovery, loading and
// the bootstrap: folder categories, capability tags, module candidates,
// loaded modules with their mod definitions, rotten entries and the
// per-category registries built during startup.
package types
