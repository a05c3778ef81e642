// Package ctxlog carries a go-kit logger through a context, so the
// pipeline stages don't need a logger argument everywhere.
package ctxlog

import (
	"context"

	"github.com/go-kit/kit/log"
	"go.opencensus.io/trace"
)

type key int

const loggerKey key = 0

func NewContext(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a nop logger. If
// there's a live trace span, its identifiers are attached so log
// lines can be correlated with traces.
func FromContext(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(loggerKey).(log.Logger)
	if !ok {
		return log.NewNopLogger()
	}

	span := trace.FromContext(ctx).SpanContext()
	if spanUnset(span.TraceID) {
		return logger
	}

	return log.With(
		logger,
		"trace_id", span.TraceID.String(),
		"span_id", span.SpanID.String(),
	)
}

// spanUnset reports whether the trace id is all zeros, meaning no
// span was ever started on this context.
func spanUnset(id trace.TraceID) bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}
