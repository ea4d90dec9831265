// Package logging builds the structured loggers used by bomforge commands and services.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // "json" or "console"
	OutputPath  string `yaml:"output_path"`
	Development bool   `yaml:"development"`
}

// DefaultConfig logs warnings and above to stderr in console format
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
	}
}

// NewLogger creates a zap logger from the config. An unknown level falls back to info.
func NewLogger(config Config) (*zap.Logger, error) {
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

	switch config.Format {
	case "json":
		zapConfig.Encoding = "json"
	case "console", "":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unsupported log format: %s", config.Format)
	}

	zapConfig.OutputPaths = []string{"stderr"}
	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns logger, or a no-op logger when it is nil
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
