package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/vaccines-api/config"
)

// Options describes where and how verbosely the app logs
type Options struct {
	Dir            string // Log directory, empty for console only
	Env            config.Environment
	Level          string // LOG_LEVEL override for the console
	RetentionWeeks int
	MaxFileSize    int64
	Verbose        bool
}

// parseLogLevel maps LOG_LEVEL values to slog levels, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// GetConsoleLogLevel returns the console level for env. Tests stay quiet
// unless verbose and ignore LOG_LEVEL; other environments honour it.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if level != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the file level; files always keep debug records
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// NewLogger builds a logger writing text to the console and JSON to a
// rotating file under opts.Dir. The returned closer releases the file.
func NewLogger(opts Options) (*slog.Logger, io.Closer) {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})
	if opts.Dir == "" {
		return slog.New(console), nopCloser{}
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		logger := slog.New(console)
		logger.Error("Failed to create logs directory, logging to console only", "dir", opts.Dir, "error", err)
		return logger, nopCloser{}
	}

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}
	rl := NewRotatingLoggerWithSizeLimit(opts.Dir, opts.RetentionWeeks, maxSize)

	// Open the week file up front so a bad directory shows up at startup
	rl.mu.Lock()
	err := rl.rotate(weekKey(rl.now()), false)
	rl.mu.Unlock()
	if err != nil {
		logger := slog.New(console)
		logger.Error("Failed to initialize rotating logger", "error", err)
		return logger, nopCloser{}
	}
	rl.startCleanup()

	file := slog.NewJSONHandler(rl, &slog.HandlerOptions{Level: GetFileLogLevel()})
	return slog.New(&multiHandler{handlers: []slog.Handler{console, file}}), rl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler fans records out to every handler that accepts their level
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("log handler failed: %w", errs[0])
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
