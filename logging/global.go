package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// LoggingService holds the process wide logger and the file it writes to
type LoggingService struct {
	Logger *slog.Logger
	closer io.Closer
}

var (
	DefaultLoggingService *LoggingService

	fallbackOnce sync.Once
	fallback     *slog.Logger
)

// InitLogger initializes the global logger with console and file output
func InitLogger(opts Options) {
	if DefaultLoggingService != nil {
		_ = DefaultLoggingService.closer.Close()
	}
	logger, closer := NewLogger(opts)
	DefaultLoggingService = &LoggingService{Logger: logger, closer: closer}
	slog.SetDefault(logger)
}

// Close flushes and closes the global log file
func Close() error {
	if DefaultLoggingService == nil {
		return nil
	}
	return DefaultLoggingService.closer.Close()
}

// current returns the global logger, or a stderr logger before InitLogger
func current() *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	fallbackOnce.Do(func() {
		fallback = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})
	return fallback
}

// Logger returns the global logger
func Logger() *slog.Logger {
	return current()
}

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}
