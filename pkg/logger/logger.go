// Package logger provides the shared logging facade for the cheeseshop server.
// It wraps a zap sugared logger behind package-level functions so callers do
// not need to thread a logger through every component.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.SugaredLogger
)

// Initialize sets up the global logger. The log level is taken from the
// CHEESESHOP_LOG_LEVEL environment variable (debug, info, warn, error) and
// defaults to info. Safe to call more than once; the last call wins.
func Initialize() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap's production config only fails on bad output paths; fall back
		// to a no-op logger rather than crashing before main runs.
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		zl = zap.NewNop()
	}

	mu.Lock()
	log = zl.Sugar()
	mu.Unlock()
}

func levelFromEnv() zapcore.Level {
	switch strings.ToLower(os.Getenv("CHEESESHOP_LOG_LEVEL")) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func get() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Initialize()
		mu.RLock()
		l = log
		mu.RUnlock()
	}
	return l
}

// Debug logs at debug level.
func Debug(args ...any) { get().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { get().Debugf(format, args...) }

// Info logs at info level.
func Info(args ...any) { get().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warn logs at warn level.
func Warn(args ...any) { get().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Error logs at error level.
func Error(args ...any) { get().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { get().Errorf(format, args...) }

// Fatalf logs a formatted message and exits.
func Fatalf(format string, args ...any) { get().Fatalf(format, args...) }
