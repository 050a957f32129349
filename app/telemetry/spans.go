package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartBlockSpan starts the span of one committed block.
func StartBlockSpan(ctx context.Context, height int64, chainID string) (context.Context, trace.Span) {
	return otel.Tracer(ServiceName).Start(ctx, "block.exec",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("block.height", height),
			attribute.String("chain.id", chainID),
		),
	)
}

// StartRequestSpan starts the server span of an API request.
func StartRequestSpan(ctx context.Context, method, route, requestID string) (context.Context, trace.Span) {
	return otel.Tracer(ServiceName).Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", route),
			attribute.String("request.id", requestID),
		),
	)
}

// RecordError marks span as failed. Either argument may be nil.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
