package types

// ModuleCandidate is a module file found in one of a category's directories
type ModuleCandidate struct {
	Path     string
	Category Category
}

// LoadedModule is a module that was opened successfully, together with the
// definitions extracted from it. It owns its definitions.
type LoadedModule struct {
	// Name is the module's file name without extension
	Name string

	// Path is the location the module was loaded from
	Path string

	Category Category

	Definitions []*ModDefinition

	// Handle is the opener-specific loaded representation (a compiled
	// wasm module, an instantiated library, ...)
	Handle any `json:"-" yaml:"-" toml:"-"`
}

// ModDefinition is one mod declared by a module
type ModDefinition struct {
	Name       string                 `json:"name" yaml:"name"`
	Version    string                 `json:"version,omitempty" yaml:"version,omitempty"`
	Author     string                 `json:"author,omitempty" yaml:"author,omitempty"`
	Capability Capability             `json:"capability" yaml:"capability"`
	Platforms  Platforms              `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Module is the declaring module. Set by the loader after extraction.
	Module *LoadedModule `json:"-" yaml:"-" toml:"-"`
}

// Location returns the path of the declaring module, or "" if unknown
func (d *ModDefinition) Location() string {
	if d.Module == nil {
		return ""
	}
	return d.Module.Path
}

// RottenEntry records a module or definition that failed to load or validate
type RottenEntry struct {
	// Source is the module path, or the definition name when the module
	// loaded but one of its definitions was rejected
	Source string

	// Module is the module path the failure relates to
	Module string

	Category Category
	Message  string
	Cause    error `json:"-" yaml:"-" toml:"-"`
}

// DefinitionsSection is the wasm custom section holding a module's mod
// definitions as a YAML (or JSON) list.
const DefinitionsSection = "modstrap.definitions"
