// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package securitypolicy

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pulseapm/go-agent/internal/metrics"
)

// Store holds the Registry of the current configuration epoch. Updates
// build a brand-new Registry and swap the reference wholesale; they never
// mutate a published Registry in place.
type Store struct {
	logger   *zap.Logger
	registry atomic.Pointer[Registry]
	updates  metrics.Counter
	policies metrics.Gauge
}

// NewStore creates a Store holding an empty Registry until the first
// update arrives.
func NewStore(logger *zap.Logger, metricsFactory metrics.Factory) *Store {
	s := &Store{
		logger: logger,
		updates: metricsFactory.Counter(metrics.Options{
			Name: "security-policy.updates",
			Help: "Number of accepted security policy epoch swaps",
		}),
		policies: metricsFactory.Gauge(metrics.Options{
			Name: "security-policy.policies",
			Help: "Number of security policies in the current epoch",
		}),
	}
	s.registry.Store(NewRegistry(nil))
	return s
}

// Registry returns the current epoch's registry. Readers observe either the
// old or the new registry in full, never a partially updated one.
func (s *Store) Registry() *Registry {
	return s.registry.Load()
}

// Update replaces the current registry with one built from the supplied
// policy map. The swap is refused, leaving the current epoch in place, when
// the map carries required policies this build does not recognize.
func (s *Store) Update(supplied map[string]Setting) error {
	if unknown := MissingRequiredPolicies(supplied); len(unknown) > 0 {
		return &UnknownRequiredPoliciesError{Names: unknown}
	}
	if missing := MissingExpectedPolicies(supplied); len(missing) > 0 {
		s.logger.Info(
			"Expected security policies absent from the supplied set",
			zap.Strings("names", missing),
		)
	}

	registry := NewRegistry(supplied)
	s.registry.Store(registry)
	s.updates.Inc(1)
	s.policies.Update(int64(registry.Len()))
	return nil
}
