package types

import (
	"fmt"
	"strings"
)

// Category is the trust/role tier a module is discovered under.
// The declaration order is the load order.
type Category int

const (
	Libraries Category = iota
	Plugins
	Mods
)

// Categories lists every category in load order
var Categories = []Category{Libraries, Plugins, Mods}

var categoryInfo = [...]struct {
	folder   string
	singular string
	plural   string
	requires Capability
}{
	Libraries: {folder: "Libraries", singular: "Library", plural: "Libraries", requires: CapabilityNone},
	Plugins:   {folder: "Plugins", singular: "Plugin", plural: "Plugins", requires: CapabilityPlugin},
	Mods:      {folder: "Mods", singular: "Mod", plural: "Mods", requires: CapabilityMod},
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	return c >= Libraries && c <= Mods
}

// FolderName is the well-known directory name for the category
func (c Category) FolderName() string {
	if !c.Valid() {
		return ""
	}
	return categoryInfo[c].folder
}

// String returns the category's folder name
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryInfo[c].folder
}

// Label returns the singular or plural label for count items of this category.
func (c Category) Label(count int) string {
	if !c.Valid() {
		return c.String()
	}
	if count == 1 {
		return categoryInfo[c].singular
	}
	return categoryInfo[c].plural
}

// RequiredCapability is the capability a definition must declare to be
// accepted in this category. Libraries require none.
func (c Category) RequiredCapability() Capability {
	if !c.Valid() {
		return CapabilityNone
	}
	return categoryInfo[c].requires
}

// CategoryForFolder returns the category whose well-known folder name
// equals name exactly.
func CategoryForFolder(name string) (Category, bool) {
	for _, c := range Categories {
		if categoryInfo[c].folder == name {
			return c, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Capability is the role a mod definition declares
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityPlugin
	CapabilityMod
)

// String returns the display name used in diagnostics
func (c Capability) String() string {
	switch c {
	case CapabilityPlugin:
		return "Plugin"
	case CapabilityMod:
		return "Mod"
	default:
		return "None"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Capability) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText accepts "plugin" or "mod" in any case
func (c *Capability) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "plugin":
		*c = CapabilityPlugin
	case "mod":
		*c = CapabilityMod
	case "", "none":
		*c = CapabilityNone
	default:
		return fmt.Errorf("unknown capability %q", string(text))
	}
	return nil
}
