package config

import (
	"strings"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) String() string {
	return string(l)
}

func (l LogLevel) Zap() zap.AtomicLevel {
	switch strings.ToLower(strings.TrimSpace(l.String())) {
	case LogLevelDebug.String(), "trace":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case LogLevelInfo.String(), "":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelWarn.String(), "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelError.String(), "silent":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}

// Gorm maps the level onto the ORM logger. Queries are only traced at debug.
func (l LogLevel) Gorm() gormlogger.LogLevel {
	switch l.Zap().Level() {
	case zap.DebugLevel:
		return gormlogger.Info
	case zap.InfoLevel, zap.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
