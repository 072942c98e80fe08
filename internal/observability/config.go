package observability

import (
	"strings"

	"github.com/smallbiznis/retailpos/internal/config"
)

// Config holds observability settings derived from the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	MetricsTextfile string

	TracingEnabled       bool
	TracingEndpoint      string
	TracingProtocol      string
	TracingSamplingRatio float64
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "retailpos"
	}
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "warn"
	}
	logFormat := cfg.Log.Format
	if logFormat == "" {
		logFormat = "console"
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          cfg.Environment,
		Version:              cfg.AppVersion,
		LogLevel:             logLevel,
		LogFormat:            logFormat,
		MetricsTextfile:      cfg.Metrics.Textfile,
		TracingEnabled:       cfg.Tracing.Enabled,
		TracingEndpoint:      cfg.Tracing.Endpoint,
		TracingProtocol:      cfg.Tracing.Protocol,
		TracingSamplingRatio: cfg.Tracing.SamplingRatio,
	}
}

func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	return isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	switch env {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
