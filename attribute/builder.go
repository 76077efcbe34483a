// Copyright (c) 2025 The PulseAPM Authors.
// SPDX-License-Identifier: Apache-2.0

package attribute

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pulseapm/go-agent/internal/metrics"
)

// metadata fixes the classification and destination bitmask of one
// attribute kind. The table below is the builders' core contract: masks are
// hard-coded per kind and never derived from input data, with
// BuildTypeAttribute as the single documented exception.
type metadata struct {
	classification Classification
	destinations   Destinations
}

func (m metadata) build(key string, value Value) Attribute {
	return Attribute{
		Key:            key,
		Classification: m.classification,
		Destinations:   m.destinations,
		Value:          value,
	}
}

var (
	typeTransactionMetadata      = metadata{Intrinsics, TransactionEvent}
	typeTransactionErrorMetadata = metadata{Intrinsics, ErrorEvent}
	typeUnknownMetadata          = metadata{Intrinsics, DestinationNone}

	timestampMetadata     = metadata{Intrinsics, TransactionEvent | ErrorEvent}
	durationMetadata      = metadata{Intrinsics, TransactionEvent | ErrorEvent}
	webDurationMetadata   = metadata{Intrinsics, TransactionEvent}
	queueDurationMetadata = metadata{Intrinsics, TransactionEvent | ErrorEvent}
	totalTimeMetadata     = metadata{Intrinsics, TransactionEvent}

	nameMetadata            = metadata{Intrinsics, TransactionEvent}
	transactionNameMetadata = metadata{Intrinsics, ErrorEvent}
	guidMetadata            = metadata{Intrinsics, TransactionEvent | ErrorEvent}
	apdexPerfZoneMetadata   = metadata{Intrinsics, TransactionEvent}
	errorClassMetadata      = metadata{Intrinsics, ErrorEvent}
	errorMessageMetadata    = metadata{Intrinsics, ErrorEvent}

	catTripIDMetadata              = metadata{Intrinsics, TransactionTrace | ErrorTrace}
	catNRTripIDMetadata            = metadata{Intrinsics, TransactionEvent}
	catPathHashMetadata            = metadata{Intrinsics, TransactionTrace | ErrorTrace}
	catNRPathHashMetadata          = metadata{Intrinsics, TransactionEvent}
	catReferringPathHashMetadata   = metadata{Intrinsics, TransactionEvent}
	catAlternatePathHashesMetadata = metadata{Intrinsics, TransactionEvent}
	catReferringGUIDMetadata       = metadata{Intrinsics, TransactionTrace | ErrorTrace}
	catNRReferringGUIDMetadata     = metadata{Intrinsics, TransactionEvent | ErrorEvent}
	clientCrossProcessIDMetadata   = metadata{Intrinsics, TransactionTrace | ErrorTrace}
	browserTripIDMetadata          = metadata{Intrinsics, JavaScriptAgent}

	syntheticsLegacyMetadata     = metadata{Intrinsics, TransactionTrace | ErrorTrace}
	syntheticsNamespacedMetadata = metadata{Intrinsics, TransactionEvent | ErrorEvent}

	requestParameterMetadata = metadata{AgentAttributes, DestinationNone}
	requestURIMetadata       = metadata{AgentAttributes, TransactionTrace | ErrorTrace | ErrorEvent}
	originalURLMetadata      = metadata{AgentAttributes, TransactionTrace | ErrorTrace}
	requestRefererMetadata   = metadata{AgentAttributes, ErrorTrace | ErrorEvent}
	responseStatusMetadata   = metadata{AgentAttributes, TransactionEvent | ErrorEvent | ErrorTrace}
	hostDisplayNameMetadata  = metadata{AgentAttributes, TransactionTrace | ErrorTrace | TransactionEvent | ErrorEvent}

	customMetadata      = metadata{UserAttributes, DestinationAll}
	customErrorMetadata = metadata{UserAttributes, ErrorEvent | ErrorTrace}
)

// TypeValue identifies the payload kind reported in the "type" attribute.
type TypeValue int32

const (
	// TypeTransaction marks a transaction event payload.
	TypeTransaction TypeValue = iota
	// TypeTransactionError marks an error event payload.
	TypeTransactionError
)

// Builder constructs attributes, one method per attribute kind. Builders
// hold no mutable state and are safe for concurrent use from any number of
// goroutines processing independent transactions.
type Builder struct {
	validator *Validator
}

// NewBuilder creates a Builder reporting diagnostics through the given
// logger and metrics factory.
func NewBuilder(logger *zap.Logger, metricsFactory metrics.Factory) *Builder {
	return &Builder{
		validator: NewValidator(logger, metricsFactory),
	}
}

// BuildTypeAttribute reports the payload type of an event. It is the only
// builder whose destinations branch on the input: an unrecognized type value
// yields an empty value routed nowhere.
func (*Builder) BuildTypeAttribute(t TypeValue) Attribute {
	switch t {
	case TypeTransaction:
		return typeTransactionMetadata.build("type", StringValue("Transaction"))
	case TypeTransactionError:
		return typeTransactionErrorMetadata.build("type", StringValue("TransactionError"))
	default:
		return typeUnknownMetadata.build("type", StringValue(""))
	}
}

// BuildTimestampAttribute reports the event start time as Unix epoch seconds.
func (*Builder) BuildTimestampAttribute(t time.Time) Attribute {
	return timestampMetadata.build("timestamp", Float64Value(float64(t.UnixNano())/float64(time.Second)))
}

// BuildDurationAttribute reports the transaction duration in seconds.
func (*Builder) BuildDurationAttribute(d time.Duration) Attribute {
	return durationMetadata.build("duration", Float64Value(d.Seconds()))
}

// BuildWebDurationAttribute reports the server-side portion of the response
// time in seconds.
func (*Builder) BuildWebDurationAttribute(d time.Duration) Attribute {
	return webDurationMetadata.build("webDuration", Float64Value(d.Seconds()))
}

// BuildQueueDurationAttribute reports time spent queued ahead of the
// transaction in seconds.
func (*Builder) BuildQueueDurationAttribute(d time.Duration) Attribute {
	return queueDurationMetadata.build("queueDuration", Float64Value(d.Seconds()))
}

// BuildTotalTimeAttribute reports the summed duration of all transaction
// segments in seconds.
func (*Builder) BuildTotalTimeAttribute(d time.Duration) Attribute {
	return totalTimeMetadata.build("totalTime", Float64Value(d.Seconds()))
}

// BuildNameAttribute reports the transaction name on transaction events.
func (*Builder) BuildNameAttribute(name string) Attribute {
	return nameMetadata.build("name", StringValue(name))
}

// BuildTransactionNameAttribute reports the transaction name on error events.
func (*Builder) BuildTransactionNameAttribute(name string) Attribute {
	return transactionNameMetadata.build("transactionName", StringValue(name))
}

// BuildGUIDAttribute reports the transaction GUID.
func (*Builder) BuildGUIDAttribute(guid string) Attribute {
	return guidMetadata.build("nr.guid", StringValue(guid))
}

// BuildApdexPerfZoneAttribute reports the apdex bucket ("S", "T", or "F").
func (*Builder) BuildApdexPerfZoneAttribute(zone string) Attribute {
	return apdexPerfZoneMetadata.build("nr.apdexPerfZone", StringValue(zone))
}

// BuildErrorClassAttribute reports the class name of a noticed error.
func (*Builder) BuildErrorClassAttribute(class string) Attribute {
	return errorClassMetadata.build("error.class", StringValue(class))
}

// BuildErrorMessageAttribute reports the message of a noticed error. The
// message originates in application code, so it is truncated like any
// user-supplied value.
func (*Builder) BuildErrorMessageAttribute(message string) Attribute {
	return errorMessageMetadata.build("error.message", StringValue(Truncate(message, ValueLengthLimit)))
}

// BuildCATReferringPathHashAttribute reports the path hash of the calling
// application in a cross-application trace.
func (*Builder) BuildCATReferringPathHashAttribute(pathHash string) Attribute {
	return catReferringPathHashMetadata.build("nr.referringPathHash", StringValue(pathHash))
}

// BuildCATAlternatePathHashesAttribute reports the alternate path hashes
// seen during a cross-application trace, sorted and comma-joined so the
// value is stable regardless of observation order.
func (*Builder) BuildCATAlternatePathHashesAttribute(hashes []string) Attribute {
	sorted := make([]string, len(hashes))
	copy(sorted, hashes)
	sort.Strings(sorted)
	return catAlternatePathHashesMetadata.build("nr.alternatePathHashes", StringValue(strings.Join(sorted, ",")))
}

// BuildClientCrossProcessIDAttribute reports the cross-process ID of the
// calling application.
func (*Builder) BuildClientCrossProcessIDAttribute(id string) Attribute {
	return clientCrossProcessIDMetadata.build("client_cross_process_id", StringValue(id))
}

// BuildBrowserTripIDAttribute reports the trip ID handed to the injected
// browser agent.
func (*Builder) BuildBrowserTripIDAttribute(tripID string) Attribute {
	return browserTripIDMetadata.build("nr.tripId", StringValue(tripID))
}

// BuildRequestParameterAttribute captures one HTTP request parameter. The
// default mask routes nowhere: eligibility is decided entirely by the
// config-driven include/exclude rules in the filter package.
func (*Builder) BuildRequestParameterAttribute(name, value string) Attribute {
	key := Truncate("request.parameters."+name, KeyLengthLimit)
	return requestParameterMetadata.build(key, StringValue(Truncate(value, ValueLengthLimit)))
}

// BuildRequestURIAttribute reports the request URI with the query string
// and fragment stripped.
func (*Builder) BuildRequestURIAttribute(uri string) Attribute {
	return requestURIMetadata.build("request.uri", StringValue(stripQuery(uri)))
}

// BuildOriginalURLAttribute reports the pre-rewrite URL of a redirected
// request, query string and fragment stripped.
func (*Builder) BuildOriginalURLAttribute(url string) Attribute {
	return originalURLMetadata.build("original_url", StringValue(stripQuery(url)))
}

// BuildRequestRefererAttribute reports the Referer header, query string and
// fragment stripped.
func (*Builder) BuildRequestRefererAttribute(referer string) Attribute {
	return requestRefererMetadata.build("request.referer", StringValue(stripQuery(referer)))
}

// BuildResponseStatusAttribute reports the HTTP response status code as a
// decimal string.
func (*Builder) BuildResponseStatusAttribute(statusCode int) Attribute {
	return responseStatusMetadata.build("response.status", StringValue(strconv.Itoa(statusCode)))
}

// BuildHostDisplayNameAttribute reports the operator-configured display
// name of the reporting host.
func (*Builder) BuildHostDisplayNameAttribute(name string) Attribute {
	return hostDisplayNameMetadata.build("host.displayName", StringValue(name))
}

// BuildCustomAttribute records a key/value pair supplied by application
// code. Both key and value are truncated, and the value is degraded to an
// empty string when its type cannot be carried on the wire.
func (b *Builder) BuildCustomAttribute(key string, value any) Attribute {
	v, ok := b.validator.Check(key, value)
	if ok && v.VType == StringType {
		v = StringValue(Truncate(v.VStr, ValueLengthLimit))
	}
	return customMetadata.build(Truncate(key, KeyLengthLimit), v)
}

// BuildCustomErrorAttribute records a key/value pair attached to a noticed
// error by application code.
func (b *Builder) BuildCustomErrorAttribute(key string, value any) Attribute {
	v, ok := b.validator.Check(key, value)
	if ok && v.VType == StringType {
		v = StringValue(Truncate(v.VStr, ValueLengthLimit))
	}
	return customErrorMetadata.build(Truncate(key, KeyLengthLimit), v)
}

// BuildCATTripIDAttributes reports the trip ID of a cross-application
// trace. Trace payloads read the legacy key while event payloads read the
// namespaced key, so one call produces both attributes, legacy first.
func (*Builder) BuildCATTripIDAttributes(tripID string) []Attribute {
	return []Attribute{
		catTripIDMetadata.build("trip_id", StringValue(tripID)),
		catNRTripIDMetadata.build("nr.tripId", StringValue(tripID)),
	}
}

// BuildCATPathHashAttributes reports the path hash of a cross-application
// trace, legacy key first.
func (*Builder) BuildCATPathHashAttributes(pathHash string) []Attribute {
	return []Attribute{
		catPathHashMetadata.build("path_hash", StringValue(pathHash)),
		catNRPathHashMetadata.build("nr.pathHash", StringValue(pathHash)),
	}
}

// BuildCATReferringTransactionGUIDAttributes reports the GUID of the
// transaction that initiated a cross-application trace, legacy key first.
func (*Builder) BuildCATReferringTransactionGUIDAttributes(guid string) []Attribute {
	return []Attribute{
		catReferringGUIDMetadata.build("referring_transaction_guid", StringValue(guid)),
		catNRReferringGUIDMetadata.build("nr.referringTransactionGuid", StringValue(guid)),
	}
}

// BuildSyntheticsResourceIDAttributes reports the synthetics resource ID,
// legacy key first.
func (*Builder) BuildSyntheticsResourceIDAttributes(id string) []Attribute {
	return []Attribute{
		syntheticsLegacyMetadata.build("synthetics_resource_id", StringValue(id)),
		syntheticsNamespacedMetadata.build("nr.syntheticsResourceId", StringValue(id)),
	}
}

// BuildSyntheticsJobIDAttributes reports the synthetics job ID, legacy key
// first.
func (*Builder) BuildSyntheticsJobIDAttributes(id string) []Attribute {
	return []Attribute{
		syntheticsLegacyMetadata.build("synthetics_job_id", StringValue(id)),
		syntheticsNamespacedMetadata.build("nr.syntheticsJobId", StringValue(id)),
	}
}

// BuildSyntheticsMonitorIDAttributes reports the synthetics monitor ID,
// legacy key first.
func (*Builder) BuildSyntheticsMonitorIDAttributes(id string) []Attribute {
	return []Attribute{
		syntheticsLegacyMetadata.build("synthetics_monitor_id", StringValue(id)),
		syntheticsNamespacedMetadata.build("nr.syntheticsMonitorId", StringValue(id)),
	}
}

// stripQuery cuts a URL-valued attribute at the first query string or
// fragment delimiter so request parameters never leak through it.
func stripQuery(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}
