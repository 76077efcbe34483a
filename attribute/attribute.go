// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

// Package attribute implements the normalized, classified, destination-tagged
// attribute entity produced by instrumentation and consumed by reporting
// pipelines. Builders fix an attribute's classification and destination
// bitmask at construction time; downstream code only ever filters on them.
package attribute

import (
	"strconv"
	"strings"
)

// ValueType describes the type of value contained in an attribute.
type ValueType int32

const (
	// StringType indicates the value is a unicode string.
	StringType ValueType = iota
	// Float32Type indicates the value is a float32 number stored as float64.
	Float32Type
	// Float64Type indicates the value is a float64 number.
	Float64Type
)

// Value is a typed attribute payload. Before accessing a value, the caller
// must check the type. Numeric values should be accessed via the accessor
// methods Float32() and Float64().
//
// This struct is designed to minimize heap allocations.
type Value struct {
	VType ValueType `json:"vType"`
	VStr  string    `json:"vStr,omitempty"`
	VNum  float64   `json:"vNum,omitempty"`
}

// StringValue creates a String-typed Value.
func StringValue(value string) Value {
	return Value{VType: StringType, VStr: value}
}

// Float32Value creates a Float32-typed Value. The payload is stored in the
// float64 field, which represents every float32 exactly.
func Float32Value(value float32) Value {
	return Value{VType: Float32Type, VNum: float64(value)}
}

// Float64Value creates a Float64-typed Value.
func Float64Value(value float64) Value {
	return Value{VType: Float64Type, VNum: value}
}

// Float32 returns the float32 value stored in this Value or 0 if it stores
// a different type. The caller must check VType before using this method.
func (v *Value) Float32() float32 {
	if v.VType == Float32Type {
		return float32(v.VNum)
	}
	return 0
}

// Float64 returns the float64 value stored in this Value or 0 if it stores
// a different type. The caller must check VType before using this method.
func (v *Value) Float64() float64 {
	if v.VType == Float64Type {
		return v.VNum
	}
	return 0
}

// Interface returns the value as a dynamically-typed any.
func (v *Value) Interface() any {
	switch v.VType {
	case Float32Type:
		return float32(v.VNum)
	case Float64Type:
		return v.VNum
	default:
		return v.VStr
	}
}

// AsString returns a potentially lossy string representation of the value.
func (v *Value) AsString() string {
	switch v.VType {
	case Float32Type:
		return strconv.FormatFloat(v.VNum, 'g', -1, 32)
	case Float64Type:
		return strconv.FormatFloat(v.VNum, 'g', -1, 64)
	default:
		return v.VStr
	}
}

// Classification is the origin category of an attribute.
type Classification int32

const (
	// Intrinsics marks attributes computed by the agent itself.
	Intrinsics Classification = iota
	// AgentAttributes marks attributes derived from request context.
	AgentAttributes
	// UserAttributes marks attributes supplied by application code.
	UserAttributes
)

// String returns the lowercase name of the classification.
func (c Classification) String() string {
	switch c {
	case Intrinsics:
		return "intrinsics"
	case AgentAttributes:
		return "agent-attributes"
	case UserAttributes:
		return "user-attributes"
	default:
		return "unknown"
	}
}

// Destinations is a bitmask of the output channels an attribute is
// eligible for.
type Destinations uint32

const (
	// TransactionTrace routes to the transaction trace payload.
	TransactionTrace Destinations = 1 << iota
	// TransactionEvent routes to the transaction event payload.
	TransactionEvent
	// ErrorTrace routes to the error trace payload.
	ErrorTrace
	// ErrorEvent routes to the error event payload.
	ErrorEvent
	// JavaScriptAgent routes to the injected browser agent.
	JavaScriptAgent

	// DestinationNone routes nowhere.
	DestinationNone Destinations = 0
	// DestinationAll routes to every output channel.
	DestinationAll = TransactionTrace | TransactionEvent | ErrorTrace | ErrorEvent | JavaScriptAgent
)

var destinationNames = []struct {
	bit  Destinations
	name string
}{
	{TransactionTrace, "transaction-trace"},
	{TransactionEvent, "transaction-event"},
	{ErrorTrace, "error-trace"},
	{ErrorEvent, "error-event"},
	{JavaScriptAgent, "javascript-agent"},
}

// String returns a pipe-separated list of destination names, or "none".
func (d Destinations) String() string {
	if d == DestinationNone {
		return "none"
	}
	names := make([]string, 0, len(destinationNames))
	for _, dn := range destinationNames {
		if d&dn.bit != 0 {
			names = append(names, dn.name)
		}
	}
	return strings.Join(names, "|")
}

// Attribute is an immutable key/value fact about a transaction or error,
// tagged with its classification and allowed output destinations. Attributes
// are always passed and returned by value; builders are the only producers.
type Attribute struct {
	Key            string         `json:"key"`
	Classification Classification `json:"classification"`
	Destinations   Destinations   `json:"destinations"`
	Value          Value          `json:"value"`
}

// HasDestination reports whether the attribute is eligible for every
// destination bit in d. The test is exact-subset, not overlap: an attribute
// tagged for TransactionEvent only does not match a query for
// TransactionEvent|ErrorEvent. A nil attribute matches nothing.
func (a *Attribute) HasDestination(d Destinations) bool {
	if a == nil {
		return false
	}
	return a.Destinations&d == d
}
