package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/app/telemetry"
)

// Tracer instruments block execution with a span per block and otel
// meters for height, latency and failures. Instruments are resolved from the
// global meter provider, so they are no-ops until telemetry is enabled.
type Tracer struct {
	blockHeight   metric.Int64Gauge
	blockDuration metric.Float64Histogram
	blockFailures metric.Int64Counter
}

// NewTracer creates the block instruments.
func NewTracer() *Tracer {
	meter := otel.Meter(telemetry.ServiceName)
	t := &Tracer{}
	// names are static, creation cannot fail
	t.blockHeight, _ = meter.Int64Gauge(
		"amm.block.height",
		metric.WithDescription("Last committed block height"),
		metric.WithUnit("{block}"),
	)
	t.blockDuration, _ = meter.Float64Histogram(
		"amm.block.exec_time",
		metric.WithDescription("Block execution time"),
		metric.WithUnit("ms"),
	)
	t.blockFailures, _ = meter.Int64Counter(
		"amm.block.failed",
		metric.WithDescription("Blocks whose operation returned an error"),
		metric.WithUnit("{block}"),
	)
	return t
}

// BlockSpan is an in-flight block measurement.
type BlockSpan struct {
	tracer *Tracer
	ctx    context.Context
	span   trace.Span
	height int64
	start  time.Time
}

// StartBlock opens the span of the block at height.
func (t *Tracer) StartBlock(ctx sdk.Context, height int64) *BlockSpan {
	spanCtx, span := telemetry.StartBlockSpan(ctx.Context(), height, ctx.ChainID())
	return &BlockSpan{tracer: t, ctx: spanCtx, span: span, height: height, start: time.Now()}
}

// End closes the span and records the block metrics.
func (s *BlockSpan) End(err error) {
	status := "success"
	if err != nil {
		status = "failed"
		telemetry.RecordError(s.span, err)
		s.tracer.blockFailures.Add(s.ctx, 1)
	}
	attrs := metric.WithAttributes(attribute.String("block.status", status))
	s.tracer.blockHeight.Record(s.ctx, s.height)
	s.tracer.blockDuration.Record(s.ctx, float64(time.Since(s.start).Milliseconds()), attrs)
	s.span.End()
}
