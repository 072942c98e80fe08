package observability

import (
	"github.com/smallbiznis/retailpos/internal/observability/logger"
	"github.com/smallbiznis/retailpos/internal/observability/metrics"
	"github.com/smallbiznis/retailpos/internal/observability/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		provideLoggerConfig,
		logger.New,
		provideTracingConfig,
		tracing.NewProvider,
		provideMetricsConfig,
		metrics.NewRegistry,
		metrics.New,
	),
	fx.Invoke(ensureTracingProvider),
	fx.Invoke(metrics.RegisterTextfileExport),
)

func ensureTracingProvider(_ trace.TracerProvider) {}

func provideLoggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       cfg.Debug(),
		IncludeStackOnError: cfg.Debug(),
	}
}

func provideTracingConfig(cfg Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.Version,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingEndpoint,
		ExporterProtocol: cfg.TracingProtocol,
		SamplingRatio:    cfg.TracingSamplingRatio,
	}
}

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Textfile:    cfg.MetricsTextfile,
	}
}
