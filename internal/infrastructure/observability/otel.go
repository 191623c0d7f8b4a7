// Package observability wires the OTLP trace and metric pipeline for
// control-api. Telemetry is optional: when no collector endpoint is
// configured the providers stay local and nothing leaves the process.
package observability

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"relay-server/services/control-api/internal/config"
)

const metricExportInterval = 30 * time.Second

// otlpTarget is the collector address derived from
// OTEL_EXPORTER_OTLP_ENDPOINT plus any OTEL_EXPORTER_OTLP_HEADERS pairs.
type otlpTarget struct {
	endpoint string
	insecure bool
	headers  map[string]string
}

// resolveTarget accepts both bare "host:4318" values and full URLs. Only an
// explicit https scheme turns TLS on.
func resolveTarget(cfg *config.Config) *otlpTarget {
	raw := strings.TrimSpace(cfg.OTLPEndpoint)
	if raw == "" {
		return nil
	}

	target := &otlpTarget{endpoint: raw, insecure: true, headers: parseHeaderPairs(cfg.OTLPHeaders)}
	if after, ok := strings.CutPrefix(raw, "https://"); ok {
		target.endpoint = after
		target.insecure = false
	} else if after, ok := strings.CutPrefix(raw, "http://"); ok {
		target.endpoint = after
	}
	return target
}

func parseHeaderPairs(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			headers[key] = value
		}
	}
	return headers
}

func (t *otlpTarget) traceOptions() []otlptracehttp.Option {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.endpoint)}
	if t.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(t.headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(t.headers))
	}
	return opts
}

func (t *otlpTarget) metricOptions() []otlpmetrichttp.Option {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(t.endpoint)}
	if t.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(t.headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(t.headers))
	}
	return opts
}

// Setup registers the global tracer and meter providers and returns a
// shutdown function that flushes both. It must be invoked on exit.
func Setup(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceNamespace(cfg.ServiceNamespace),
			semconv.ServiceVersion(config.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if target := resolveTarget(cfg); target != nil {
		traceExporter, err := otlptracehttp.New(ctx, target.traceOptions()...)
		if err != nil {
			return nil, err
		}
		metricExporter, err := otlpmetrichttp.New(ctx, target.metricOptions()...)
		if err != nil {
			return nil, err
		}

		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
		meterOpts = append(meterOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricExportInterval)),
		))
		logger.Info().Str("endpoint", target.endpoint).Bool("insecure", target.insecure).Msg("telemetry export enabled")
	} else {
		logger.Info().Msg("telemetry export disabled, no collector endpoint configured")
	}

	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	meterProvider := sdkmetric.NewMeterProvider(meterOpts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		var shutdownErr error
		if err := meterProvider.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown meter provider")
			shutdownErr = err
		}
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown tracer provider")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		return shutdownErr
	}

	return shutdown, nil
}
