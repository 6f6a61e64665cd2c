package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sampleTraceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestDerive(t *testing.T) {
	t.Run("always generates a request id", func(t *testing.T) {
		rc := Derive(nil)
		assert.NotEmpty(t, rc.RequestID)
		assert.Nil(t, rc.Traceparent)
		assert.Nil(t, rc.TraceID)
	})

	t.Run("extracts trace id from traceparent", func(t *testing.T) {
		rc := Derive(map[string]string{"traceparent": sampleTraceparent})
		require.NotNil(t, rc.TraceID)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", *rc.TraceID)
		require.NotNil(t, rc.Traceparent)
		assert.Equal(t, sampleTraceparent, *rc.Traceparent)
	})

	t.Run("explicit trace_id wins over traceparent", func(t *testing.T) {
		rc := Derive(map[string]string{
			"traceparent": sampleTraceparent,
			"trace_id":    "deadbeef",
		})
		require.NotNil(t, rc.TraceID)
		assert.Equal(t, "deadbeef", *rc.TraceID)
	})

	t.Run("malformed traceparent degrades silently", func(t *testing.T) {
		for _, tp := range []string{
			"not-a-traceparent",
			"00-SHOUTY-00f067aa0ba902b7-01",
			"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7",
			"",
		} {
			rc := Derive(map[string]string{"traceparent": tp})
			assert.Nil(t, rc.TraceID, "traceparent %q", tp)
			require.NotNil(t, rc.Traceparent)
			assert.Equal(t, tp, *rc.Traceparent, "raw header must be preserved")
		}
	})

	t.Run("header names match case-insensitively", func(t *testing.T) {
		rc := Derive(map[string]string{"Traceparent": sampleTraceparent})
		require.NotNil(t, rc.TraceID)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", *rc.TraceID)
	})

	t.Run("request ids are unique across calls", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			rc := Derive(nil)
			_, dup := seen[rc.RequestID]
			require.False(t, dup, "duplicate request id %s", rc.RequestID)
			seen[rc.RequestID] = struct{}{}
		}
	})
}

func TestLogStartEnd(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	rc := Derive(map[string]string{"traceparent": sampleTraceparent})
	LogStart(log, "SystemJobService.SubmitJob", rc)
	LogEnd(log, "SystemJobService.SubmitJob", rc)

	entries := logs.All()
	require.Len(t, entries, 2)

	start := entries[0]
	assert.Equal(t, "rpc_start", start.Message)
	startFields := start.ContextMap()
	assert.Equal(t, "SystemJobService.SubmitJob", startFields["method"])
	assert.Equal(t, rc.RequestID, startFields["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", startFields["trace_id"])
	assert.Equal(t, sampleTraceparent, startFields["traceparent"])

	end := entries[1]
	assert.Equal(t, "rpc_end", end.Message)
	endFields := end.ContextMap()
	assert.Equal(t, "SystemJobService.SubmitJob", endFields["method"])
	assert.Equal(t, rc.RequestID, endFields["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", endFields["trace_id"])
	assert.NotContains(t, endFields, "traceparent")
}
