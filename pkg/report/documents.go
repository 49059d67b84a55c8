package report

import (
	"fmt"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/types"
)

// Scan is the outcome of discovery
type Scan struct {
	Base      string   `json:"base" yaml:"base" toml:"base"`
	Libraries []string `json:"libraries" yaml:"libraries" toml:"libraries"`
	Plugins   []string `json:"plugins" yaml:"plugins" toml:"plugins"`
	Mods      []string `json:"mods" yaml:"mods" toml:"mods"`
}

// NewScan builds the scan document
func NewScan(base string, sets types.DirectorySets) Scan {
	return Scan{
		Base:      base,
		Libraries: nonNil(sets.Libraries),
		Plugins:   nonNil(sets.Plugins),
		Mods:      nonNil(sets.Mods),
	}
}

// Module describes a loaded module
type Module struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Path        string   `json:"path" yaml:"path" toml:"path"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Definitions []string `json:"definitions" yaml:"definitions" toml:"definitions"`
}

// Definition describes an accepted mod definition
type Definition struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Version    string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Author     string   `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Capability string   `json:"capability" yaml:"capability" toml:"capability"`
	Platforms  []string `json:"platforms,omitempty" yaml:"platforms,omitempty" toml:"platforms,omitempty"`
	Module     string   `json:"module" yaml:"module" toml:"module"`
}

// Rotten describes a load or validation failure
type Rotten struct {
	Source   string `json:"source" yaml:"source" toml:"source"`
	Module   string `json:"module" yaml:"module" toml:"module"`
	Category string `json:"category" yaml:"category" toml:"category"`
	Message  string `json:"message" yaml:"message" toml:"message"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`

	// Details are the error's structured fields, e.g. actual and required capability
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// Summary is a category's summary line
type Summary struct {
	Category string `json:"category" yaml:"category" toml:"category"`
	Count    int    `json:"count" yaml:"count" toml:"count"`
	Line     string `json:"line" yaml:"line" toml:"line"`
}

// Load is the outcome of loading
type Load struct {
	Libraries []Module     `json:"libraries" yaml:"libraries" toml:"libraries"`
	Plugins   []Definition `json:"plugins" yaml:"plugins" toml:"plugins"`
	Mods      []Definition `json:"mods" yaml:"mods" toml:"mods"`
	Rotten    []Rotten     `json:"rotten" yaml:"rotten" toml:"rotten"`
	Summary   []Summary    `json:"summary" yaml:"summary" toml:"summary"`
}

// NewLoad builds the load document
func NewLoad(regs *types.Registries) Load {
	l := Load{
		Libraries: []Module{},
		Plugins:   definitions(regs.Plugins),
		Mods:      definitions(regs.Mods),
		Rotten:    []Rotten{},
	}

	for _, m := range regs.Libraries {
		mod := Module{Name: m.Name, Path: m.Path, Category: m.Category.String(), Definitions: []string{}}
		for _, d := range m.Definitions {
			mod.Definitions = append(mod.Definitions, d.Name)
		}
		l.Libraries = append(l.Libraries, mod)
	}

	for _, r := range regs.Rotten {
		entry := Rotten{Source: r.Source, Module: r.Module, Category: r.Category.String(), Message: r.Message}
		if r.Cause != nil {
			entry.Error = r.Cause.Error()
			entry.Code = string(errors.GetErrorCode(r.Cause))
			entry.Details = details(r.Cause)
		}
		l.Rotten = append(l.Rotten, entry)
	}

	for _, c := range types.Categories {
		n := regs.Count(c)
		l.Summary = append(l.Summary, Summary{
			Category: c.String(),
			Count:    n,
			Line:     fmt.Sprintf("%d %s loaded.", n, c.Label(n)),
		})
	}
	return l
}

// Resolution is one simulated symbol lookup
type Resolution struct {
	Symbol     string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Address    string `json:"address" yaml:"address" toml:"address"`
	Redirected bool   `json:"redirected" yaml:"redirected" toml:"redirected"`
}

// Boot is the outcome of a simulated boot
type Boot struct {
	Hooked      bool         `json:"hooked" yaml:"hooked" toml:"hooked"`
	Target      string       `json:"target" yaml:"target" toml:"target"`
	Install     string       `json:"install" yaml:"install" toml:"install"`
	Runtime     string       `json:"runtime" yaml:"runtime" toml:"runtime"`
	Flavor      string       `json:"flavor,omitempty" yaml:"flavor,omitempty" toml:"flavor,omitempty"`
	Resolutions []Resolution `json:"resolutions" yaml:"resolutions" toml:"resolutions"`
	Load        *Load        `json:"load,omitempty" yaml:"load,omitempty" toml:"load,omitempty"`
}

// Address formats a resolved address
func Address(addr uintptr) string {
	return fmt.Sprintf("0x%x", addr)
}

func definitions(defs []*types.ModDefinition) []Definition {
	out := []Definition{}
	for _, d := range defs {
		def := Definition{
			Name:       d.Name,
			Version:    d.Version,
			Author:     d.Author,
			Capability: d.Capability.String(),
			Module:     d.Location(),
		}
		for _, p := range d.Platforms {
			def.Platforms = append(def.Platforms, string(p))
		}
		out = append(out, def)
	}
	return out
}

func details(err error) map[string]string {
	fields := errors.GetErrorDetails(err)
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
