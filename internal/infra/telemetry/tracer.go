// Package telemetry wires the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"log/slog"
	"strings"

	"morgenstar/config"
	"morgenstar/internal/domain/lifecycle"
	"morgenstar/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Params defines the dependencies of the tracer provider
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewTracerProvider builds the configured tracer provider, installs it globally with
// W3C trace-context propagation and flushes it on shutdown.
func NewTracerProvider(params Params) (trace.TracerProvider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cfg := params.Config.Telemetry
	if cfg == nil || cfg.Exporter == "" || strings.EqualFold(cfg.Exporter, ExporterNone) {
		provider := noop.NewTracerProvider()
		otel.SetTracerProvider(provider)

		return provider, nil
	}

	exporter, err := newExporter(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", params.Config.Env.ServiceName),
		attribute.String("deployment.environment", params.Config.Env.Env),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.SampleRatio)))),
	)
	otel.SetTracerProvider(provider)

	params.Append(fx.Hook{
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := provider.Shutdown(ctx); err != nil {
				params.Logger.Warn("Failed to flush traces", slog.Any("error", err))
			}

			return nil
		},
	})

	params.Logger.Info("Tracing enabled",
		slog.String("exporter", cfg.Exporter),
		slog.String("endpoint", cfg.Endpoint),
	)

	return provider, nil
}

func newExporter(ctx context.Context, cfg *config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create stdout trace exporter")
		}

		return exporter, nil
	case ExporterOTLP:
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create otlp trace exporter")
		}

		return exporter, nil
	default:
		return nil, errors.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}
}

func sampleRatio(ratio float64) float64 {
	if ratio <= 0 || ratio > 1 {
		return 1
	}

	return ratio
}
