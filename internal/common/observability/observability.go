// Package observability sets up OpenTelemetry metrics and tracing.
package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"matching-workers/internal/common/config"
)

// Observability owns the meter and tracer providers of the process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
	scoreHistogram otelmetric.Int64Histogram
}

// New builds the providers. Metrics are exported through the Prometheus
// registry served on /metrics. Traces go to Jaeger when an endpoint is
// configured and are otherwise dropped.
func New(cfg config.ObservabilityConfig) (*Observability, error) {
	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(mp)

	o := &Observability{
		meterProvider: mp,
		meter:         mp.Meter(cfg.ServiceName),
	}

	if cfg.JaegerEndpoint != "" {
		je, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			_ = mp.Shutdown(context.Background())
			return nil, err
		}
		o.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(je),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		)
		otel.SetTracerProvider(o.tracerProvider)
		o.tracer = o.tracerProvider.Tracer(cfg.ServiceName)
	} else {
		o.tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	o.jobCounter, _ = o.meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	o.jobDuration, _ = o.meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	o.scoreHistogram, _ = o.meter.Int64Histogram(
		"compatibility.score",
		otelmetric.WithDescription("Overall compatibility score"),
	)

	return o, nil
}

// NewNoop returns an Observability that records nothing, for tests.
func NewNoop() *Observability {
	return &Observability{tracer: noop.NewTracerProvider().Tracer("noop")}
}

// StartSpan starts a span named name. The returned span must be ended.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

// RecordScore records one overall score for category.
func (o *Observability) RecordScore(ctx context.Context, category string, score int) {
	if o.scoreHistogram != nil {
		o.scoreHistogram.Record(ctx, int64(score), otelmetric.WithAttributes(
			attribute.String("category", category),
		))
	}
}

// Shutdown flushes and stops both providers.
func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
