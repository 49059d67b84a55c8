package types

// Registries is the outcome of a loading pass. It is built once during
// startup, appended to category by category, and read-only afterwards.
type Registries struct {
	// Libraries holds the library modules made resolvable
	Libraries []*LoadedModule

	// Plugins and Mods hold accepted definitions in discovery order
	Plugins []*ModDefinition
	Mods    []*ModDefinition

	// Modules holds every module that loaded, in load order
	Modules []*LoadedModule

	Rotten []RottenEntry
}

// NewRegistries returns empty registries
func NewRegistries() *Registries {
	return &Registries{}
}

// Accepted returns the accepted definitions for a definition category
func (r *Registries) Accepted(c Category) []*ModDefinition {
	switch c {
	case Plugins:
		return r.Plugins
	case Mods:
		return r.Mods
	}
	return nil
}

// Accept appends d to the registry for c
func (r *Registries) Accept(c Category, d *ModDefinition) {
	switch c {
	case Plugins:
		r.Plugins = append(r.Plugins, d)
	case Mods:
		r.Mods = append(r.Mods, d)
	}
}

// Count returns the summary count for c: loaded modules for libraries,
// accepted definitions otherwise.
func (r *Registries) Count(c Category) int {
	if c == Libraries {
		return len(r.Libraries)
	}
	return len(r.Accepted(c))
}

// RottenFor returns the rotten entries recorded for c
func (r *Registries) RottenFor(c Category) []RottenEntry {
	var out []RottenEntry
	for _, e := range r.Rotten {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// AddRotten records a failure
func (r *Registries) AddRotten(e RottenEntry) {
	r.Rotten = append(r.Rotten, e)
}
