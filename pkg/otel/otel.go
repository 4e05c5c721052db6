package otel

import (
	"context"
	"errors"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

type shutdownFunc = func(context.Context) error

// Setup installs the OTLP trace, metric and log pipelines when telemetry is
// enabled. Exporters are configured through the standard OTEL_* variables.
// The returned function flushes and stops all pipelines.
func Setup(ctx context.Context, service string) (func(context.Context) error, error) {
	if !EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewSchemaless(
			attribute.String("service.name", service),
		),
	)

	if err != nil {
		return nil, err
	}

	var shutdowns []shutdownFunc
	var result error

	for _, setup := range []func(context.Context, *sdkresource.Resource) (shutdownFunc, error){
		setupTracer,
		setupMeter,
		setupLogger,
	} {
		shutdown, err := setup(ctx, resource)

		if err != nil {
			result = errors.Join(result, err)
			continue
		}

		shutdowns = append(shutdowns, shutdown)
	}

	shutdown := func(ctx context.Context) error {
		var result error

		for _, s := range shutdowns {
			result = errors.Join(result, s(ctx))
		}

		return result
	}

	return shutdown, result
}

// useGRPC reports whether the OTLP exporter for signal (TRACES, METRICS or LOGS) speaks gRPC.
func useGRPC(signal string) bool {
	for _, key := range []string{"OTEL_EXPORTER_OTLP_" + signal + "_PROTOCOL", "OTEL_EXPORTER_OTLP_PROTOCOL"} {
		if val := os.Getenv(key); val != "" {
			return strings.EqualFold(val, "grpc")
		}
	}

	return false
}
