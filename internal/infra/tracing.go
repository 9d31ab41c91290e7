package infra

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/pkg/bininfo"
	"github.com/reporthub/backend/internal/pkg/observability"
)

// Tracing installs the global tracer provider. It must run before anything
// captures the provider, which in practice means before the fiber app is
// assembled.
func Tracing(conf *appconfig.Config, lc fx.Lifecycle) error {
	if !conf.TracingEnabled {
		otel.SetTracerProvider(trace.NewNoopTracerProvider())
		log.Info().
			Str("evt.name", "infra.tracing.disabled").
			Msg("infra: tracing: disabled")
		return nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
		)),
	}

	for _, exporter := range conf.TracingExporters {
		switch exporter {
		case "otlp":
			exp, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient())
			if err != nil {
				return errors.Wrap(err, "infra: tracing: failed to create otlp exporter")
			}
			opts = append(opts, tracesdk.WithBatcher(exp))
		case "stdout":
			exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				return errors.Wrap(err, "infra: tracing: failed to create stdout exporter")
			}
			opts = append(opts, tracesdk.WithBatcher(exp))
		default:
			log.Warn().
				Str("exporter", exporter).
				Msg("infra: tracing: unknown exporter, skipping")
		}
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return nil
}
