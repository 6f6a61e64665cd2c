// Package observability derives per-request identity for RPC logging.
//
// Every call gets a fresh request_id. When the caller supplies a W3C
// traceparent header the trace id is extracted from it best-effort; an
// explicit trace_id header always wins. Malformed traceparent values are
// carried through verbatim but never fail the request.
package observability

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// traceparentRe matches the W3C trace context header:
// version "-" trace-id "-" parent-id "-" trace-flags, all lowercase hex.
var traceparentRe = regexp.MustCompile(`^([0-9a-f]{2})-([0-9a-f]{32})-([0-9a-f]{16})-([0-9a-f]{2})$`)

// RequestContext identifies one RPC invocation in logs and error reports.
// Traceparent and TraceID are nil when the caller did not supply them.
type RequestContext struct {
	RequestID   string
	Traceparent *string
	TraceID     *string
}

// Derive builds a RequestContext from request headers. Header names are
// matched case-insensitively. The request id is always freshly generated;
// it is never taken from the caller.
func Derive(headers map[string]string) RequestContext {
	md := make(map[string]string, len(headers))
	for k, v := range headers {
		md[strings.ToLower(k)] = v
	}

	rc := RequestContext{RequestID: uuid.NewString()}

	if tp, ok := md["traceparent"]; ok {
		rc.Traceparent = &tp
	}
	if tid, ok := md["trace_id"]; ok {
		rc.TraceID = &tid
	} else if rc.Traceparent != nil {
		if m := traceparentRe.FindStringSubmatch(*rc.Traceparent); m != nil {
			traceID := m[2]
			rc.TraceID = &traceID
		}
	}

	return rc
}

// Fields returns the zap fields shared by the start and end log events.
func (rc RequestContext) Fields() []zap.Field {
	return []zap.Field{
		zap.String("request_id", rc.RequestID),
		zap.Stringp("trace_id", rc.TraceID),
	}
}

// LogStart emits the rpc_start event for a call.
func LogStart(log *zap.Logger, method string, rc RequestContext) {
	fields := append([]zap.Field{zap.String("method", method)}, rc.Fields()...)
	fields = append(fields, zap.Stringp("traceparent", rc.Traceparent))
	log.Info("rpc_start", fields...)
}

// LogEnd emits the rpc_end event for a call that completed normally.
func LogEnd(log *zap.Logger, method string, rc RequestContext) {
	fields := append([]zap.Field{zap.String("method", method)}, rc.Fields()...)
	log.Info("rpc_end", fields...)
}
