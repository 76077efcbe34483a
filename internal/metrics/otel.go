// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelFactory emits metrics through the global OpenTelemetry meter provider.
type otelFactory struct {
	meter  metric.Meter
	prefix string
	tags   map[string]string
}

// NewOTelFactory creates a Factory backed by an OpenTelemetry meter with the
// given instrumentation scope name.
func NewOTelFactory(scope string) Factory {
	return &otelFactory{meter: otel.Meter(scope)}
}

func (f *otelFactory) Counter(options Options) Counter {
	counter, _ := f.meter.Int64Counter(f.subScope(options.Name), metric.WithDescription(options.Help))
	return &otelCounter{
		counter: counter,
		ctx:     context.Background(),
		opts:    addOptions(mergeTags(f.tags, options.Tags)),
	}
}

func (f *otelFactory) Gauge(options Options) Gauge {
	gauge, _ := f.meter.Int64Gauge(f.subScope(options.Name), metric.WithDescription(options.Help))
	return &otelGauge{
		gauge: gauge,
		ctx:   context.Background(),
		opts:  recordOptions(mergeTags(f.tags, options.Tags)),
	}
}

func (f *otelFactory) Namespace(scope NSOptions) Factory {
	return &otelFactory{
		meter:  f.meter,
		prefix: f.subScope(scope.Name),
		tags:   mergeTags(f.tags, scope.Tags),
	}
}

func (f *otelFactory) subScope(name string) string {
	if f.prefix == "" {
		return name
	}
	if name == "" {
		return f.prefix
	}
	return f.prefix + "." + name
}

func mergeTags(a, b map[string]string) map[string]string {
	merged := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

func addOptions(tags map[string]string) []metric.AddOption {
	if len(tags) == 0 {
		return nil
	}
	return []metric.AddOption{metric.WithAttributes(attributesFromTags(tags)...)}
}

func recordOptions(tags map[string]string) []metric.RecordOption {
	if len(tags) == 0 {
		return nil
	}
	return []metric.RecordOption{metric.WithAttributes(attributesFromTags(tags)...)}
}

func attributesFromTags(tags map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(tags))
	for k, v := range tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}

type otelCounter struct {
	counter metric.Int64Counter
	ctx     context.Context
	opts    []metric.AddOption
}

func (c *otelCounter) Inc(value int64) {
	c.counter.Add(c.ctx, value, c.opts...)
}

type otelGauge struct {
	gauge metric.Int64Gauge
	ctx   context.Context
	opts  []metric.RecordOption
}

func (g *otelGauge) Update(value int64) {
	g.gauge.Record(g.ctx, value, g.opts...)
}
