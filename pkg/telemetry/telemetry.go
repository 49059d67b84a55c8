// Package telemetry sets up OpenTelemetry tracing for the loader.
package telemetry

import (
	"context"

	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ServiceName is reported as the traced service
const ServiceName = "modstrap"

// Settings are read from the environment
type Settings struct {
	Endpoint string `env:"MODSTRAP_OTEL_ENDPOINT"`
	Enabled  bool   `env:"MODSTRAP_OTEL_ENABLED" envDefault:"true"`
}

// Shutdown flushes pending spans
type Shutdown func(context.Context) error

// Setup initialises tracing.
//
// Tracing is opt-in: when MODSTRAP_OTEL_ENDPOINT is empty or
// MODSTRAP_OTEL_ENABLED is false, Setup returns a no-op shutdown and no
// global provider is registered.
func Setup(ctx context.Context) (Shutdown, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return noop, errors.Wrap(err, errors.ErrConfigParse, "cannot read telemetry settings")
	}
	return SetupWith(ctx, s)
}

// SetupWith is Setup with explicit settings
func SetupWith(ctx context.Context, s Settings) (Shutdown, error) {
	if !s.Enabled || s.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(s.Endpoint),
	)
	if err != nil {
		return noop, errors.Wrap(err, errors.ErrConfigValid, "cannot create trace exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
		),
	)
	if err != nil {
		return noop, errors.Wrap(err, errors.ErrInternal, "cannot build trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func noop(context.Context) error { return nil }
