package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	deckCounter   otelmetric.Int64Counter
	deckDuration  otelmetric.Float64Histogram
	tracing       *Tracing
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	deckCounter, _ := meter.Int64Counter(
		"decks.generated",
		otelmetric.WithDescription("Number of pitch decks generated"),
	)

	deckDuration, _ := meter.Float64Histogram(
		"decks.duration",
		otelmetric.WithDescription("Deck generation duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		deckCounter:   deckCounter,
		deckDuration:  deckDuration,
	}
}

// EnableTracing attaches a Jaeger-backed tracer provider. Without it
// StartSpan returns no-op spans.
func (o *Observability) EnableTracing(serviceName, endpoint string) error {
	tracing, err := NewTracing(serviceName, endpoint)
	if err != nil {
		return err
	}
	o.tracing = tracing
	return nil
}

func (o *Observability) RecordDeckGenerated(ctx context.Context, strategy, status string) {
	if o.deckCounter != nil {
		o.deckCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("strategy", strategy),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordGenerationDuration(ctx context.Context, duration time.Duration, strategy string) {
	if o.deckDuration != nil {
		o.deckDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("strategy", strategy),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.tracing != nil {
		o.tracing.Shutdown()
	}
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
