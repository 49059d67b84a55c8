package exclusion

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modstrap/pkg/config"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/logging"
	"github.com/rs/zerolog"
)

// Kind selects how a rule's pattern is compared against a folder name
type Kind int

const (
	ExactMatch Kind = iota
	StartsWith
	EndsWith
)

func (k Kind) String() string {
	switch k {
	case ExactMatch:
		return "exact"
	case StartsWith:
		return "starts_with"
	case EndsWith:
		return "ends_with"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is a name exclusion
type Rule struct {
	Kind    Kind
	Pattern string
}

// Matches reports whether name is excluded by r
func (r Rule) Matches(name string) bool {
	return r.matches(name, strings.ToLower(name), strings.ToLower(r.Pattern))
}

func (r Rule) matches(name, nameLower, patternLower string) bool {
	var cmp func(s, p string) bool
	switch r.Kind {
	case ExactMatch:
		cmp = func(s, p string) bool { return s == p }
	case StartsWith:
		cmp = strings.HasPrefix
	case EndsWith:
		cmp = strings.HasSuffix
	default:
		return false
	}
	return cmp(name, r.Pattern) || cmp(nameLower, patternLower)
}

// Policy is the set of exclusions applied during discovery. Build it
// before scanning; it is not safe for concurrent mutation.
type Policy struct {
	fullPaths []string
	rules     []Rule
	logger    zerolog.Logger
}

// NewPolicy returns an empty policy
func NewPolicy() *Policy {
	return &Policy{
		logger: logging.GetLogger("exclusion"),
	}
}

// FromConfig builds a policy from the [exclusions] config section.
// Rules are registered exact, then starts_with, then ends_with.
func FromConfig(cfg config.Exclusions) (*Policy, error) {
	p := NewPolicy()
	for _, path := range cfg.FullPaths {
		if err := p.AddFullPath(path); err != nil {
			return nil, err
		}
	}
	groups := []struct {
		kind     Kind
		patterns []string
	}{
		{ExactMatch, cfg.Exact},
		{StartsWith, cfg.StartsWith},
		{EndsWith, cfg.EndsWith},
	}
	for _, g := range groups {
		for _, pattern := range g.patterns {
			if err := p.AddRule(g.kind, pattern); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// AddRule registers a name exclusion. A blank pattern is a configuration error.
func (p *Policy) AddRule(kind Kind, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return errors.New(errors.ErrConfigValid, "exclusion pattern cannot be empty").
			WithDetail("kind", kind.String())
	}
	if kind < ExactMatch || kind > EndsWith {
		return errors.Newf(errors.ErrConfigValid, "unknown exclusion kind %d", int(kind))
	}
	p.rules = append(p.rules, Rule{Kind: kind, Pattern: pattern})
	return nil
}

// AddFullPath registers an exact path exclusion. A blank path is a configuration error.
func (p *Policy) AddFullPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New(errors.ErrConfigValid, "full path exclusion cannot be empty")
	}
	p.fullPaths = append(p.fullPaths, path)
	return nil
}

// Rules returns the registered name rules in order
func (p *Policy) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// IsExcluded reports whether the folder at path named name is skipped
func (p *Policy) IsExcluded(path, name string) bool {
	for _, exclusion := range p.fullPaths {
		if exclusion == path {
			p.logger.Trace().Str("path", path).Msg("Excluded by full path")
			return true
		}
	}

	nameLower := strings.ToLower(name)
	for _, rule := range p.rules {
		if rule.matches(name, nameLower, strings.ToLower(rule.Pattern)) {
			p.logger.Trace().
				Str("name", name).
				Str("kind", rule.Kind.String()).
				Str("pattern", rule.Pattern).
				Msg("Excluded by name rule")
			return true
		}
	}
	return false
}
