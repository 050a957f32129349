// Package telemetry configures OpenTelemetry tracing and metrics for the AMM
// node and provides span helpers for blocks and API requests.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceName identifies the AMM node in traces and meters.
	ServiceName = "amm"

	serviceVersion = "1.0.0"
	batchTimeout   = 5 * time.Second
	maxBatchSize   = 512
)

// Config selects what the node exports.
type Config struct {
	Enabled      bool
	OTLPEndpoint string // host:port of an OTLP/HTTP collector
	SampleRate   float64
	Environment  string
	ChainID      string

	// PrometheusEnabled bridges otel meters onto the Prometheus registry.
	PrometheusEnabled bool
}

// Validate checks an enabled config. A disabled config is always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.OTLPEndpoint == "" {
		return errors.New("otlp endpoint is required")
	}
	if _, err := url.Parse(c.OTLPEndpoint); err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample rate %v outside [0, 1]", c.SampleRate)
	}
	return nil
}

// Provider owns the SDK providers installed as otel globals.
type Provider struct {
	cfg    Config
	traces *tracesdk.TracerProvider
	meters *metricsdk.MeterProvider
}

// NewProvider installs the configured providers as the otel globals. A
// disabled config leaves the no-op globals in place.
func NewProvider(cfg Config) (*Provider, error) {
	p := &Provider{cfg: cfg}
	if !cfg.Enabled {
		return p, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(serviceVersion),
		attribute.String("environment", cfg.Environment),
		attribute.String("chain.id", cfg.ChainID),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	if p.traces, err = newTracerProvider(cfg, res); err != nil {
		return nil, err
	}
	otel.SetTracerProvider(p.traces)

	if cfg.PrometheusEnabled {
		if p.meters, err = newMeterProvider(res); err != nil {
			_ = p.traces.Shutdown(context.Background())
			return nil, err
		}
		otel.SetMeterProvider(p.meters)
	}
	return p, nil
}

func newTracerProvider(cfg Config, res *resource.Resource) (*tracesdk.TracerProvider, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.OTLPEndpoint, "http://"), "https://")
	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithURLPath("/v1/traces"),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry: otlp exporter: %w", err)
	}
	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter,
			tracesdk.WithMaxExportBatchSize(maxBatchSize),
			tracesdk.WithBatchTimeout(batchTimeout),
		),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(cfg.SampleRate))),
	), nil
}

// newMeterProvider exports otel meters through the default Prometheus
// registry, next to the keeper and API collectors.
func newMeterProvider(res *resource.Resource) (*metricsdk.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: prometheus exporter: %w", err)
	}
	return metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	), nil
}

// Shutdown flushes pending spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.traces != nil {
		if err := p.traces.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.meters != nil {
		if err := p.meters.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Tracer returns the node tracer, a no-op when tracing is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return otel.Tracer(ServiceName)
}

// Meter returns the node meter, a no-op when metrics are disabled.
func (p *Provider) Meter() metric.Meter {
	return otel.Meter(ServiceName)
}

// Ready reports whether every configured provider is installed.
func (p *Provider) Ready() error {
	switch {
	case !p.cfg.Enabled:
		return nil
	case p.traces == nil:
		return errors.New("telemetry: tracer provider not initialized")
	case p.cfg.PrometheusEnabled && p.meters == nil:
		return errors.New("telemetry: meter provider not initialized")
	}
	return nil
}
