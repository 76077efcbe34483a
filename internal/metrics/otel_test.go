// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/pulseapm/go-agent/internal/metrics"
)

func TestOTelFactory(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() {
		otel.SetMeterProvider(noop.NewMeterProvider())
	})

	factory := metrics.NewOTelFactory("pulseapm-core")
	scoped := factory.Namespace(metrics.NSOptions{
		Name: "attributes",
		Tags: map[string]string{"component": "core"},
	})

	counter := scoped.Counter(metrics.Options{Name: "values-discarded"})
	counter.Inc(2)
	counter.Inc(1)

	gauge := scoped.Gauge(metrics.Options{Name: "policies"})
	gauge.Update(4)
	gauge.Update(6)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	scope := rm.ScopeMetrics[0]
	assert.Equal(t, "pulseapm-core", scope.Scope.Name)

	wantAttrs := attribute.NewSet(attribute.String("component", "core"))

	sum, ok := findMetric(scope, "attributes.values-discarded").Data.(metricdata.Sum[int64])
	require.True(t, ok, "counter must be exported as an int64 sum")
	require.Len(t, sum.DataPoints, 1)
	assert.EqualValues(t, 3, sum.DataPoints[0].Value)
	assert.Equal(t, wantAttrs, sum.DataPoints[0].Attributes)

	g, ok := findMetric(scope, "attributes.policies").Data.(metricdata.Gauge[int64])
	require.True(t, ok, "gauge must be exported as an int64 gauge")
	require.Len(t, g.DataPoints, 1)
	assert.EqualValues(t, 6, g.DataPoints[0].Value)
	assert.Equal(t, wantAttrs, g.DataPoints[0].Attributes)
}

func TestOTelFactoryNestedNamespaces(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() {
		otel.SetMeterProvider(noop.NewMeterProvider())
	})

	factory := metrics.NewOTelFactory("pulseapm-core")
	nested := factory.
		Namespace(metrics.NSOptions{Name: "security-policy"}).
		Namespace(metrics.NSOptions{Name: "store"})
	nested.Counter(metrics.Options{Name: "updates"}).Inc(1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "security-policy.store.updates", rm.ScopeMetrics[0].Metrics[0].Name)
}

func TestNullFactory(t *testing.T) {
	factory := metrics.NullFactory.Namespace(metrics.NSOptions{Name: "anything"})
	assert.Equal(t, metrics.NullFactory, factory)
	// must not panic
	factory.Counter(metrics.Options{Name: "c"}).Inc(1)
	factory.Gauge(metrics.Options{Name: "g"}).Update(1)
}

func findMetric(scope metricdata.ScopeMetrics, name string) metricdata.Metrics {
	for _, m := range scope.Metrics {
		if m.Name == name {
			return m
		}
	}
	return metricdata.Metrics{}
}
