package types

import "slices"

// DirectorySet is the ordered list of directories scanned for one category.
// The base directory is always first.
type DirectorySet []string

// DirectorySets holds one DirectorySet per category. It is the result of a
// discovery pass.
type DirectorySets struct {
	Libraries DirectorySet `json:"libraries" yaml:"libraries" toml:"libraries"`
	Plugins   DirectorySet `json:"plugins" yaml:"plugins" toml:"plugins"`
	Mods      DirectorySet `json:"mods" yaml:"mods" toml:"mods"`
}

// For returns the set for a category
func (s *DirectorySets) For(c Category) DirectorySet {
	switch c {
	case Libraries:
		return s.Libraries
	case Plugins:
		return s.Plugins
	case Mods:
		return s.Mods
	}
	return nil
}

// Append adds dir to the set for c
func (s *DirectorySets) Append(c Category, dir string) {
	switch c {
	case Libraries:
		s.Libraries = append(s.Libraries, dir)
	case Plugins:
		s.Plugins = append(s.Plugins, dir)
	case Mods:
		s.Mods = append(s.Mods, dir)
	}
}

// All returns every directory in load order: libraries, plugins, mods
func (s *DirectorySets) All() []string {
	all := make([]string, 0, len(s.Libraries)+len(s.Plugins)+len(s.Mods))
	all = append(all, s.Libraries...)
	all = append(all, s.Plugins...)
	all = append(all, s.Mods...)
	return all
}

// Contains reports whether dir was filed under c
func (s *DirectorySets) Contains(c Category, dir string) bool {
	return slices.Contains(s.For(c), dir)
}
