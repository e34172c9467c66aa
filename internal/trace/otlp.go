// Package trace sets up OpenTelemetry tracing for provider requests.
package trace

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName identifies spans created by apiviews.
const InstrumentationName = "apiviews/apiclient"

// Config selects the exporter endpoint and the reported service name.
type Config struct {
	Endpoint    string
	ServiceName string
}

// Provider owns the tracer used by the API clients.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// NewProvider creates an OTLP-exporting provider if cfg.Endpoint is set.
// Without an endpoint it returns a disabled provider with a no-op tracer.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return Disabled(), nil
	}

	// Endpoint is a base URL such as http://localhost:4318. Its scheme selects
	// TLS and spans are posted under /v1/traces.
	tracesURL, err := url.JoinPath(cfg.Endpoint, "v1", "traces")
	if err != nil {
		return nil, fmt.Errorf("otlp endpoint %q: %w", cfg.Endpoint, err)
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(tracesURL))
	if err != nil {
		return nil, err
	}

	return newWithProcessor(sdktrace.NewBatchSpanProcessor(exporter), cfg.ServiceName), nil
}

// NewWithProcessor builds an enabled provider around an arbitrary span
// processor. Tests pass a tracetest.SpanRecorder here.
func NewWithProcessor(sp sdktrace.SpanProcessor, serviceName string) *Provider {
	return newWithProcessor(sp, serviceName)
}

func newWithProcessor(sp sdktrace.SpanProcessor, serviceName string) *Provider {
	if serviceName == "" {
		serviceName = "apiviews"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sp),
		sdktrace.WithResource(res),
	)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
		enabled:  true,
	}
}

// Disabled returns a provider whose tracer records nothing.
func Disabled() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}
}

// Tracer returns the tracer for request spans. Safe on a nil Provider.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil || p.tracer == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return p.tracer
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
