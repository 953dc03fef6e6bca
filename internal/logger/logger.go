// Package logger provides tagged, leveled logging for the genzai client
// and server.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level classifies log messages.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
}

// Logger writes tagged log lines to a writer, optionally mirroring them to
// a file. The zero Logger is not usable; create one with New.
type Logger struct {
	tag      string
	minLevel Level

	mu      sync.Mutex
	out     io.Writer
	logFile *os.File
}

// New creates a logger writing to stderr at Info level.
func New(tag string) *Logger {
	return &Logger{
		tag:      tag,
		minLevel: LevelInfo,
		out:      os.Stderr,
	}
}

// WithTag returns a logger sharing this logger's sinks under a new tag.
func (l *Logger) WithTag(tag string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		tag:      tag,
		minLevel: l.minLevel,
		out:      l.out,
		logFile:  l.logFile,
	}
}

// SetVerbose lowers the threshold to Debug.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if verbose {
		l.minLevel = LevelDebug
	} else {
		l.minLevel = LevelInfo
	}
}

// SetOutput redirects log lines. Used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// LogToFile mirrors log lines into a timestamped file under dir.
func (l *Logger) LogToFile(dir string) error {
	name := fmt.Sprintf("genzai_%s.log", time.Now().Format("20060102_150405"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	l.logFile = file
	l.mu.Unlock()
	return nil
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	fmt.Fprintf(l.out, "%s [%s] %s: %s\n",
		timestamp, l.tag, levelColors[level].Sprint(level.String()), msg)

	if l.logFile != nil {
		fmt.Fprintf(l.logFile, "%s [%s] %s: %s\n", timestamp, l.tag, level, msg)
	}
}

// Debug logs at debug level; dropped unless verbose is on.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}
