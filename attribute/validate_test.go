// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package attribute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pulseapm/go-agent/attribute"
	"github.com/pulseapm/go-agent/internal/metrics"
	"github.com/pulseapm/go-agent/internal/metricstest"
)

func TestCheckAcceptsWireTypes(t *testing.T) {
	v := attribute.NewValidator(zap.NewNop(), metrics.NullFactory)

	tests := []struct {
		name     string
		input    any
		expected attribute.Value
	}{
		{"string", "hello", attribute.StringValue("hello")},
		{"empty string", "", attribute.StringValue("")},
		{"float32", float32(1.5), attribute.Float32Value(1.5)},
		{"float64", 2.5, attribute.Float64Value(2.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := v.Check("key", tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCheckSubstitutesInvalidTypes(t *testing.T) {
	zapCore, logs := observer.New(zap.InfoLevel)
	logger := zap.New(zapCore)
	metricsFactory := metricstest.NewFactory()
	v := attribute.NewValidator(logger, metricsFactory)

	invalid := []any{
		42,
		int64(42),
		true,
		[]byte("blob"),
		map[string]string{"a": "b"},
		struct{ X int }{X: 1},
		nil,
	}
	for _, value := range invalid {
		out, ok := v.Check("some.key", value)
		assert.False(t, ok)
		assert.Equal(t, attribute.StringValue(""), out)
	}

	entries := logs.FilterMessage("Unsupported attribute value type, substituting empty string").All()
	require.Len(t, entries, len(invalid))
	fields := entries[0].ContextMap()
	assert.Equal(t, "some.key", fields["key"])
	assert.Equal(t, "int", fields["value-type"])

	metricsFactory.AssertCounterMetrics(t, metricstest.ExpectedMetric{
		Name:  "attributes.values-discarded",
		Value: len(invalid),
	})
}

func TestCheckNeverLogsOnValidValue(t *testing.T) {
	zapCore, logs := observer.New(zap.InfoLevel)
	v := attribute.NewValidator(zap.New(zapCore), metrics.NullFactory)

	_, ok := v.Check("key", "value")
	require.True(t, ok)
	assert.Zero(t, logs.Len())
}
