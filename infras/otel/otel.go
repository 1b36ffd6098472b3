package otel

import (
	"context"
	"fmt"
	"rentdesk/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens tracing scopes. Shutdown flushes spans still held by the batcher.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider *trace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (o *otelImpl) Shutdown(ctx context.Context) error {
	if err := o.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to flush spans: %w", err)
	}

	return nil
}

// sampler keeps the sampling decision of the caller's trace and samples new
// root traces at the configured ratio.
func sampler(ratio float64) trace.Sampler {
	if ratio >= 1 {
		return trace.ParentBased(trace.AlwaysSample())
	}

	return trace.ParentBased(trace.TraceIDRatioBased(max(ratio, 0)))
}

func New(config *config.Config) Otel {
	otelConfig := config.External.Otel

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(config.App.Name),
		semconv.DeploymentEnvironmentKey.String(config.Server.Env),
	)

	options := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(sampler(otelConfig.SampleRatio)),
	}

	if otelConfig.Endpoint == "" {
		log.Warn().Msg("No OTLP endpoint configured, spans will not be exported")

		return &otelImpl{provider: trace.NewTracerProvider(options...)}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(otelConfig.Endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
	}

	provider := trace.NewTracerProvider(append(options, trace.WithBatcher(exporter))...)

	otel.SetTracerProvider(provider)

	log.Info().
		Str("endpoint", otelConfig.Endpoint).
		Float64("sample_ratio", otelConfig.SampleRatio).
		Msg("tracing enabled")

	return &otelImpl{provider: provider}
}
