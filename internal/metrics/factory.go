// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package metrics

// NSOptions defines the name and tags map associated with a factory namespace.
type NSOptions struct {
	Name string
	Tags map[string]string
}

// Options defines the information associated with a metric.
type Options struct {
	Name string
	Tags map[string]string
	Help string
}

// Factory creates new metrics.
type Factory interface {
	Counter(metric Options) Counter
	Gauge(metric Options) Gauge

	// Namespace returns a nested metrics factory.
	Namespace(scope NSOptions) Factory
}

// NullFactory is a metrics factory that returns NullCounter and NullGauge.
var NullFactory Factory = nullFactory{}

type nullFactory struct{}

func (nullFactory) Counter(Options) Counter { return NullCounter }

func (nullFactory) Gauge(Options) Gauge { return NullGauge }

func (nullFactory) Namespace(NSOptions /* scope */) Factory { return NullFactory }
