// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package attribute

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pulseapm/go-agent/internal/metrics"
)

// Validator screens attribute values down to the three types the collector
// wire format can carry. Anything else is substituted with an empty string
// value, never rejected with an error: failing a telemetry call must not
// crash the monitored application.
type Validator struct {
	logger    *zap.Logger
	discarded metrics.Counter
}

// NewValidator creates a Validator that reports substituted values via the
// logger and the "attributes.values-discarded" counter.
func NewValidator(logger *zap.Logger, metricsFactory metrics.Factory) *Validator {
	return &Validator{
		logger: logger,
		discarded: metricsFactory.Counter(metrics.Options{
			Name: "attributes.values-discarded",
			Help: "Number of attribute values discarded because their type is not supported",
		}),
	}
}

// Check returns string, float32, and float64 values unchanged with ok=true.
// Any other dynamic type yields an empty string value and ok=false, plus a
// warning naming the key and the rejected type.
func (v *Validator) Check(key string, value any) (Value, bool) {
	switch val := value.(type) {
	case string:
		return StringValue(val), true
	case float32:
		return Float32Value(val), true
	case float64:
		return Float64Value(val), true
	default:
		v.logger.Warn(
			"Unsupported attribute value type, substituting empty string",
			zap.String("key", key),
			zap.String("value-type", fmt.Sprintf("%T", value)),
		)
		v.discarded.Inc(1)
		return StringValue(""), false
	}
}
