// Package logging provides the leveled, emoji-friendly console logger used by
// every javaboot command, with an optional log file and JSON line output.
//
// Messages logged before InitLogger runs (for example while the configuration
// file is being read) are buffered with PreLog and replayed once the logger
// knows its level and destinations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFileName is the file created inside the configured log_path.
const LogFileName = "javaboot.log"

type preLogEntry struct {
	level slog.Level
	msg   string
}

var (
	mu sync.Mutex

	level    = new(slog.LevelVar)
	jsonMode bool

	console io.Writer = os.Stderr
	output  io.Writer = os.Stdout

	jsonLogger *slog.Logger
	fileLogger *slog.Logger
	logFile    *os.File

	preLogs     []preLogEntry
	preLogLevel = slog.LevelDebug
)

// ParseLevel converts a configuration level name into a slog level.
// Unknown or empty names map to info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// PreLog records a message before the logger is initialized.
func PreLog(levelName string, format string, args ...interface{}) {
	lvl, _ := ParseLevel(levelName)
	mu.Lock()
	defer mu.Unlock()
	preLogs = append(preLogs, preLogEntry{level: lvl, msg: fmt.Sprintf(format, args...)})
}

// SetPreLogLevel filters buffered PreLog messages that are replayed by InitLogger.
func SetPreLogLevel(levelName string) {
	lvl, _ := ParseLevel(levelName)
	mu.Lock()
	preLogLevel = lvl
	mu.Unlock()
}

// InitLogger configures the level and destinations, then flushes the PreLog buffer.
// logPath may be empty, in which case nothing is written to disk.
func InitLogger(logPath, levelName string, jsonFormat bool) error {
	lvl, err := ParseLevel(levelName)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	level.Set(lvl)
	jsonMode = jsonFormat
	jsonLogger = slog.New(slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level}))

	if logFile != nil {
		logFile.Close()
		logFile, fileLogger = nil, nil
	}
	if logPath != "" {
		if err := os.MkdirAll(logPath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(logPath, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		// the file keeps everything, the level only filters the console
		fileLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	buffered := preLogs
	preLogs = nil
	for _, entry := range buffered {
		if entry.level < preLogLevel {
			continue
		}
		emit(entry.level, entry.msg)
	}
	return nil
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile, fileLogger = nil, nil
	return err
}

// SetOutput redirects console diagnostics and command output. Used by tests.
func SetOutput(diagnostics, results io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console, output = diagnostics, results
	jsonLogger = slog.New(slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level}))
}

// must be called with mu held
func emit(lvl slog.Level, msg string) {
	if fileLogger != nil {
		fileLogger.Log(context.Background(), lvl, msg)
	}
	if lvl < level.Level() {
		return
	}
	if jsonMode && jsonLogger != nil {
		jsonLogger.Log(context.Background(), lvl, msg)
		return
	}
	fmt.Fprintln(console, msg)
}

func logAt(lvl slog.Level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	emit(lvl, msg)
}

// LogDebug logs a debug message.
func LogDebug(format string, args ...interface{}) { logAt(slog.LevelDebug, format, args...) }

// LogInfo logs an informational message.
func LogInfo(format string, args ...interface{}) { logAt(slog.LevelInfo, format, args...) }

// LogWarn logs a recoverable problem.
func LogWarn(format string, args ...interface{}) { logAt(slog.LevelWarn, format, args...) }

// LogError logs an error message.
func LogError(format string, args ...interface{}) { logAt(slog.LevelError, format, args...) }

// LogOutput writes a command result to stdout regardless of the log level.
func LogOutput(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format+"\n", args...)
}
