// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

// Package securitypolicy tracks the remotely-governed security policies that
// can suppress categories of data collection. A Registry is built once per
// configuration epoch from the server-delivered policy map; the Store swaps
// registries atomically so readers never observe a partial epoch.
package securitypolicy

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Names of the security policies recognized by this build. The declaration
// order is fixed and drives the order of MissingExpectedPolicies results.
const (
	RecordSQL                   = "record_sql"
	AttributesInclude           = "attributes_include"
	AllowRawExceptionMessages   = "allow_raw_exception_messages"
	CustomEvents                = "custom_events"
	CustomParameters            = "custom_parameters"
	CustomInstrumentationEditor = "custom_instrumentation_editor"
)

var knownPolicyNames = []string{
	RecordSQL,
	AttributesInclude,
	AllowRawExceptionMessages,
	CustomEvents,
	CustomParameters,
	CustomInstrumentationEditor,
}

func knownPolicy(name string) bool {
	for _, known := range knownPolicyNames {
		if name == known {
			return true
		}
	}
	return false
}

// Setting is one entry of the server-delivered policy map.
type Setting struct {
	Enabled  bool `json:"enabled"`
	Required bool `json:"required"`
}

// ParsePolicies decodes the server-delivered policy map from JSON.
func ParsePolicies(data []byte) (map[string]Setting, error) {
	var policies map[string]Setting
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("failed to parse security policies: %w", err)
	}
	return policies, nil
}

// Policy is the stored enforcement state of one named policy.
type Policy struct {
	Enabled bool
}

// Registry holds the policies of one configuration epoch. It stores every
// supplied name, recognized or not, and is read-only after construction, so
// concurrent readers need no synchronization.
type Registry struct {
	policies map[string]Policy
}

// NewRegistry builds a Registry from the server-delivered policy map.
func NewRegistry(settings map[string]Setting) *Registry {
	policies := make(map[string]Policy, len(settings))
	for name, setting := range settings {
		policies[name] = Policy{Enabled: setting.Enabled}
	}
	return &Registry{policies: policies}
}

// Len returns the number of stored policies.
func (r *Registry) Len() int {
	return len(r.policies)
}

// Exists reports whether a policy with the given name was supplied.
func (r *Registry) Exists(name string) bool {
	_, ok := r.policies[name]
	return ok
}

// Policy returns the named policy. Callers must check ok before reading
// Enabled: absence of a policy is not the same as a disabled one.
func (r *Registry) Policy(name string) (Policy, bool) {
	p, ok := r.policies[name]
	return p, ok
}

// RecordSQL returns the record_sql policy, if supplied.
func (r *Registry) RecordSQL() (Policy, bool) { return r.Policy(RecordSQL) }

// AttributesInclude returns the attributes_include policy, if supplied.
func (r *Registry) AttributesInclude() (Policy, bool) { return r.Policy(AttributesInclude) }

// AllowRawExceptionMessages returns the allow_raw_exception_messages
// policy, if supplied.
func (r *Registry) AllowRawExceptionMessages() (Policy, bool) {
	return r.Policy(AllowRawExceptionMessages)
}

// CustomEvents returns the custom_events policy, if supplied.
func (r *Registry) CustomEvents() (Policy, bool) { return r.Policy(CustomEvents) }

// CustomParameters returns the custom_parameters policy, if supplied.
func (r *Registry) CustomParameters() (Policy, bool) { return r.Policy(CustomParameters) }

// CustomInstrumentationEditor returns the custom_instrumentation_editor
// policy, if supplied.
func (r *Registry) CustomInstrumentationEditor() (Policy, bool) {
	return r.Policy(CustomInstrumentationEditor)
}

// MissingExpectedPolicies returns the recognized policy names absent from
// the supplied map, in declaration order. Missing expected policies are
// informational, not fatal.
func MissingExpectedPolicies(supplied map[string]Setting) []string {
	var missing []string
	for _, name := range knownPolicyNames {
		if _, ok := supplied[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingRequiredPolicies returns the names in the supplied map that are
// marked required but not recognized by this build, sorted for determinism.
// A non-empty result means the server expects enforcement this agent cannot
// provide, which callers must treat as a reason to fail safe.
func MissingRequiredPolicies(supplied map[string]Setting) []string {
	var unknown []string
	for name, setting := range supplied {
		if setting.Required && !knownPolicy(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// UnknownRequiredPoliciesError is returned by Store.Update when the server
// requires policies this build does not recognize.
type UnknownRequiredPoliciesError struct {
	Names []string
}

func (e *UnknownRequiredPoliciesError) Error() string {
	return "security policies required by the server are not recognized: " + strings.Join(e.Names, ", ")
}
