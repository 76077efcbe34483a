// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

// Package filter resolves attribute destinations from operator-configured
// include/exclude rules. Builders fix a default destination mask per
// attribute kind; the filter widens or narrows that mask per key before a
// reporting pipeline consults it.
package filter

import (
	"sort"
	"strings"

	"github.com/pulseapm/go-agent/attribute"
)

// ScopeOptions configures attribute filtering for a single destination.
type ScopeOptions struct {
	// Enabled gates the destination: a disabled scope can never be
	// included into, regardless of include rules.
	Enabled bool
	// Include lists patterns whose matching attributes gain this
	// destination.
	Include []string
	// Exclude lists patterns whose matching attributes lose this
	// destination.
	Exclude []string
}

// Options configures the attribute filter. Top-level include/exclude rules
// apply to every destination; per-scope rules apply to that scope's
// destination bit only.
type Options struct {
	// Enabled is the master switch. When false every attribute resolves
	// to no destinations at all.
	Enabled bool
	Include []string
	Exclude []string

	TransactionEvents ScopeOptions
	TransactionTraces ScopeOptions
	ErrorEvents       ScopeOptions
	ErrorTraces       ScopeOptions
	BrowserMonitoring ScopeOptions
}

// DefaultOptions returns the filter configuration used when the operator
// supplies nothing: every destination enabled except browser monitoring,
// which is opt-in.
func DefaultOptions() Options {
	return Options{
		Enabled:           true,
		TransactionEvents: ScopeOptions{Enabled: true},
		TransactionTraces: ScopeOptions{Enabled: true},
		ErrorEvents:       ScopeOptions{Enabled: true},
		ErrorTraces:       ScopeOptions{Enabled: true},
		BrowserMonitoring: ScopeOptions{Enabled: false},
	}
}

// modifier carries the destination bits one pattern includes and excludes.
// A single pattern can accumulate bits from the top-level lists and from
// several scopes; exclusion wins within the modifier.
type modifier struct {
	match        string
	wildcard     bool
	includeDests attribute.Destinations
	excludeDests attribute.Destinations
}

func (m *modifier) applies(key string) bool {
	if m.wildcard {
		return strings.HasPrefix(key, m.match)
	}
	return key == m.match
}

func (m *modifier) apply(d attribute.Destinations) attribute.Destinations {
	d |= m.includeDests
	d &^= m.excludeDests
	return d
}

// Filter is an immutable compiled rule set, safe for concurrent readers.
type Filter struct {
	enabled      bool
	enabledDests attribute.Destinations
	wildcards    []*modifier
	exact        map[string]*modifier
}

// New compiles the options into a Filter. A trailing '*' makes a pattern a
// prefix match; any other pattern matches exactly. Wildcard modifiers apply
// in ascending order of their prefix, so a longer (more specific) prefix is
// applied later and wins; the exact-match modifier applies last. Disabled
// scopes are masked off after all modifiers.
func New(opts Options) *Filter {
	f := &Filter{
		enabled: opts.Enabled,
		exact:   make(map[string]*modifier),
	}

	scopes := []struct {
		opts ScopeOptions
		dest attribute.Destinations
	}{
		{opts.TransactionEvents, attribute.TransactionEvent},
		{opts.TransactionTraces, attribute.TransactionTrace},
		{opts.ErrorEvents, attribute.ErrorEvent},
		{opts.ErrorTraces, attribute.ErrorTrace},
		{opts.BrowserMonitoring, attribute.JavaScriptAgent},
	}
	for _, scope := range scopes {
		if scope.opts.Enabled {
			f.enabledDests |= scope.dest
		}
		f.addRules(scope.opts.Include, scope.dest, true)
		f.addRules(scope.opts.Exclude, scope.dest, false)
	}
	f.addRules(opts.Include, attribute.DestinationAll, true)
	f.addRules(opts.Exclude, attribute.DestinationAll, false)

	sort.Slice(f.wildcards, func(i, j int) bool {
		return f.wildcards[i].match < f.wildcards[j].match
	})
	return f
}

func (f *Filter) addRules(patterns []string, d attribute.Destinations, include bool) {
	for _, pattern := range patterns {
		match, wildcard := strings.CutSuffix(pattern, "*")
		mod := f.findOrCreateModifier(match, wildcard)
		if include {
			mod.includeDests |= d
		} else {
			mod.excludeDests |= d
		}
	}
}

func (f *Filter) findOrCreateModifier(match string, wildcard bool) *modifier {
	if !wildcard {
		mod := f.exact[match]
		if mod == nil {
			mod = &modifier{match: match}
			f.exact[match] = mod
		}
		return mod
	}
	for _, mod := range f.wildcards {
		if mod.match == match {
			return mod
		}
	}
	mod := &modifier{match: match, wildcard: true}
	f.wildcards = append(f.wildcards, mod)
	return mod
}

// Destinations resolves the final destination mask for an attribute key,
// starting from the builder's default mask.
func (f *Filter) Destinations(key string, def attribute.Destinations) attribute.Destinations {
	if !f.enabled {
		return attribute.DestinationNone
	}
	d := def
	for _, mod := range f.wildcards {
		if mod.applies(key) {
			d = mod.apply(d)
		}
	}
	if mod, ok := f.exact[key]; ok {
		d = mod.apply(d)
	}
	return d & f.enabledDests
}

// Apply returns a copy of the attribute with its destinations resolved
// through the filter.
func (f *Filter) Apply(a attribute.Attribute) attribute.Attribute {
	a.Destinations = f.Destinations(a.Key, a.Destinations)
	return a
}
