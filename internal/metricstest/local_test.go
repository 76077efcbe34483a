// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package metricstest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseapm/go-agent/internal/metrics"
)

func TestLocalMetrics(t *testing.T) {
	f := NewFactory()
	tags := map[string]string{"x": "y"}

	f.Counter(metrics.Options{
		Name: "my-counter",
		Tags: tags,
	}).Inc(4)
	f.Counter(metrics.Options{
		Name: "my-counter",
		Tags: tags,
	}).Inc(2)
	f.Counter(metrics.Options{
		Name: "my-counter",
	}).Inc(6)
	f.Counter(metrics.Options{
		Name: "other-counter",
	}).Inc(8)
	f.Gauge(metrics.Options{
		Name: "my-gauge",
	}).Update(25)
	f.Gauge(metrics.Options{
		Name: "my-gauge",
	}).Update(43)

	counters, gauges := f.Snapshot()
	assert.EqualValues(t, 6, counters["my-counter|x=y"])
	assert.EqualValues(t, 6, counters["my-counter"])
	assert.EqualValues(t, 8, counters["other-counter"])
	assert.EqualValues(t, 43, gauges["my-gauge"])

	f.AssertCounterMetrics(t,
		ExpectedMetric{Name: "my-counter", Tags: tags, Value: 6},
		ExpectedMetric{Name: "my-counter", Value: 6},
		ExpectedMetric{Name: "other-counter", Value: 8},
	)
	f.AssertGaugeMetrics(t,
		ExpectedMetric{Name: "my-gauge", Value: 43},
	)
}

func TestLocalMetricsNamespaces(t *testing.T) {
	f := NewFactory()
	sub := f.Namespace(metrics.NSOptions{
		Name: "sub",
		Tags: map[string]string{"component": "core"},
	})
	subsub := sub.Namespace(metrics.NSOptions{
		Name: "leaf",
	})

	sub.Counter(metrics.Options{Name: "counter"}).Inc(1)
	subsub.Gauge(metrics.Options{Name: "gauge"}).Update(2)

	counters, gauges := f.Snapshot()
	assert.EqualValues(t, 1, counters["sub.counter|component=core"])
	assert.EqualValues(t, 2, gauges["sub.leaf.gauge|component=core"])
}
