package logger

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

var globalLogger *slog.Logger

// Init installs the given handler as both the package logger and the
// process-wide slog default.
func Init(handler slog.Handler) {
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// InitZap routes the package logger through an existing zap core.
func InitZap(zapLogger *zap.Logger) {
	Init(zapslog.NewHandler(zapLogger.Core()))
}

// ParseLevel maps a configured level name onto a slog level, defaulting
// to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureInitialized() {
	if globalLogger == nil {
		globalLogger = slog.Default()
	}
}

func Debug(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}
