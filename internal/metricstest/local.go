// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package metricstest

import (
	"sync"
	"sync/atomic"

	"github.com/pulseapm/go-agent/internal/metrics"
)

// A Backend is a metrics provider which aggregates data in-vm and
// allows exporting snapshots for assertions in tests.
type Backend struct {
	cm       sync.Mutex
	gm       sync.Mutex
	counters map[string]*int64
	gauges   map[string]*int64
	tagsSep  string
	tagKVSep string
}

// NewBackend returns a new Backend.
func NewBackend() *Backend {
	return &Backend{
		counters: make(map[string]*int64),
		gauges:   make(map[string]*int64),
		tagsSep:  "|",
		tagKVSep: "=",
	}
}

// IncCounter increments a counter value.
func (b *Backend) IncCounter(name string, tags map[string]string, delta int64) {
	name = GetKey(name, tags, b.tagsSep, b.tagKVSep)
	b.cm.Lock()
	defer b.cm.Unlock()
	counter := b.counters[name]
	if counter == nil {
		counter = new(int64)
		b.counters[name] = counter
	}
	atomic.AddInt64(counter, delta)
}

// UpdateGauge updates the value of a gauge.
func (b *Backend) UpdateGauge(name string, tags map[string]string, value int64) {
	name = GetKey(name, tags, b.tagsSep, b.tagKVSep)
	b.gm.Lock()
	defer b.gm.Unlock()
	gauge := b.gauges[name]
	if gauge == nil {
		gauge = new(int64)
		b.gauges[name] = gauge
	}
	atomic.StoreInt64(gauge, value)
}

// Snapshot captures a snapshot of the current counter and gauge values.
func (b *Backend) Snapshot() (counters, gauges map[string]int64) {
	b.cm.Lock()
	counters = make(map[string]int64, len(b.counters))
	for name, value := range b.counters {
		counters[name] = atomic.LoadInt64(value)
	}
	b.cm.Unlock()

	b.gm.Lock()
	gauges = make(map[string]int64, len(b.gauges))
	for name, value := range b.gauges {
		gauges[name] = atomic.LoadInt64(value)
	}
	b.gm.Unlock()

	return counters, gauges
}

type stats struct {
	name    string
	tags    map[string]string
	backend *Backend
}

type localCounter struct {
	stats
}

func (l *localCounter) Inc(delta int64) {
	l.backend.IncCounter(l.name, l.tags, delta)
}

type localGauge struct {
	stats
}

func (l *localGauge) Update(value int64) {
	l.backend.UpdateGauge(l.name, l.tags, value)
}

// Factory is a metrics factory that stores metrics locally for inspection.
type Factory struct {
	*Backend
	namespace string
	tags      map[string]string
}

// NewFactory returns a new Factory backed by an in-vm Backend.
func NewFactory() *Factory {
	return &Factory{
		Backend: NewBackend(),
	}
}

// appendTags adds the tags to the namespace tags and returns a combined map.
func (l *Factory) appendTags(tags map[string]string) map[string]string {
	newTags := make(map[string]string)
	for k, v := range l.tags {
		newTags[k] = v
	}
	for k, v := range tags {
		newTags[k] = v
	}
	return newTags
}

func (l *Factory) newNamespace(name string) string {
	if l.namespace == "" {
		return name
	}
	if name == "" {
		return l.namespace
	}
	return l.namespace + "." + name
}

// Counter returns a local stats counter.
func (l *Factory) Counter(options metrics.Options) metrics.Counter {
	return &localCounter{
		stats{
			name:    l.newNamespace(options.Name),
			tags:    l.appendTags(options.Tags),
			backend: l.Backend,
		},
	}
}

// Gauge returns a local stats gauge.
func (l *Factory) Gauge(options metrics.Options) metrics.Gauge {
	return &localGauge{
		stats{
			name:    l.newNamespace(options.Name),
			tags:    l.appendTags(options.Tags),
			backend: l.Backend,
		},
	}
}

// Namespace returns a derived factory with a nested namespace and tags.
func (l *Factory) Namespace(scope metrics.NSOptions) metrics.Factory {
	return &Factory{
		namespace: l.newNamespace(scope.Name),
		tags:      l.appendTags(scope.Tags),
		Backend:   l.Backend,
	}
}
