// Package logger holds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// New builds a logger for the environment at the given level
func New(environment string, level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if environment == "development" || environment == "test" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	return cfg.Build()
}

func Initialize(l *zap.Logger) {
	logger = l
	sugar = l.Sugar()
}

func Logger() *zap.Logger {
	if logger != nil {
		return logger
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func Sugar() *zap.SugaredLogger {
	if sugar != nil {
		return sugar
	}
	return Logger().Sugar()
}

// Sync flushes buffered entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
