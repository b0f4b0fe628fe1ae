package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type cmdLogger struct{}

var cmdLoggerKey cmdLogger

func loggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(cmdLoggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return defaultLogger
}

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, cmdLoggerKey, logger)
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

// logFilePath returns where upkeep writes its run log, mirroring where
// macOS apps keep theirs.
func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "upkeep.log")
	}
	return filepath.Join(home, "Library", "Logs", "upkeep", "upkeep.log")
}

// openLogFile opens the log file for appending, falling back to stderr
// when the file cannot be opened.
func openLogFile() io.Writer {
	path := logFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}
