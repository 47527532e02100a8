package otel

import (
	"context"
	"fmt"
	"rental/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc/credentials/insecure"
)

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	TracerProvider *trace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.TracerProvider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// Shutdown flushes pending spans.
func (o *otelImpl) Shutdown(ctx context.Context) error {
	if err := o.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}

// New builds the tracer provider. Without an OTLP endpoint spans are still
// created, but never exported.
func New(config *config.Config) Otel {
	ctx := context.Background()

	options := []trace.TracerProviderOption{
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.App.Name),
			semconv.DeploymentEnvironmentKey.String(config.Server.Env),
		)),
	}

	endpoint := config.External.Otel.Endpoint
	if endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
		}

		options = append(options, trace.WithBatcher(exporter))
	} else {
		log.Warn().Msg("No OTLP endpoint configured, traces will not be exported")
	}

	traceProvider := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(traceProvider)

	return &otelImpl{
		TracerProvider: traceProvider,
	}
}
