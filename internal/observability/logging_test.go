package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func tracedContext(t *testing.T) (context.Context, trace.SpanContext) {
	t.Helper()
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36},
		SpanID:     trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: trace.FlagsSampled,
	})
	require.True(t, sc.IsValid())
	return trace.ContextWithSpanContext(context.Background(), sc), sc
}

func TestHandlerInjectsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(&traceHandler{inner: slog.NewJSONHandler(&buf, nil)})

	ctx, sc := tracedContext(t)
	log.InfoContext(ctx, "artifact saved")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, sc.TraceID().String(), rec["trace_id"])
	assert.Equal(t, sc.SpanID().String(), rec["span_id"])
}

func TestHandlerSkipsTraceIDsWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(&traceHandler{inner: slog.NewJSONHandler(&buf, nil)})

	log.Info("no span here")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.NotContains(t, rec, "trace_id")
	assert.NotContains(t, rec, "span_id")
}
