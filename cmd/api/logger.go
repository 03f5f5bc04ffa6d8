package main

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func newLoggerConfig() loggerConfig {
	var cfg loggerConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func newLogger(cfg loggerConfig) (*zap.Logger, error) {
	var level zapcore.Level
	normalized := strings.ToLower(strings.TrimSpace(cfg.Level))
	if normalized == "" {
		normalized = "info"
	}
	if err := level.UnmarshalText([]byte(normalized)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true

	return zcfg.Build(zap.AddCaller())
}
