// Package logging builds the zap logger used by the service and the CLI.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level       string            `yaml:"level"`
	Format      string            `yaml:"format"` // "json" or "console"
	OutputPath  string            `yaml:"output_path"`
	Fields      map[string]string `yaml:"fields"`
	Development bool              `yaml:"development"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Fields: map[string]string{"service": "sustainabos"},
	}
}

// New creates a logger from config.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, len(config.Fields))
	for k, v := range config.Fields {
		fields = append(fields, zap.String(k, v))
	}
	return logger.With(fields...), nil
}

// NewDefault creates a logger with DefaultConfig, falling back to
// zap.NewProduction.
func NewDefault() *zap.Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

// DataQuality returns the fields tagging a data-quality event.
func DataQuality(check string) []zap.Field {
	return []zap.Field{
		zap.String("type", "data_quality"),
		zap.String("check", check),
	}
}
