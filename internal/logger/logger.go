package logger

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Logger provides leveled logging to an error stream
type Logger struct {
	out         io.Writer
	useColors   bool
	level       LogLevel
	warnings    atomic.Int64
	VerboseMode bool // Mirrors level == LevelDebug
}

// New creates a new Logger with the given settings
func New(out io.Writer, verbose bool, useColors bool) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	return &Logger{
		out:         out,
		useColors:   useColors,
		level:       level,
		VerboseMode: verbose,
	}
}

// WithLevel sets the log level and returns the logger
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.level = level
	l.VerboseMode = (level <= LevelDebug)
	return l
}

// SetLevel sets the log level from its name
func (l *Logger) SetLevel(levelStr string) {
	l.WithLevel(ParseLevel(levelStr))
}

// Level returns the active level
func (l *Logger) Level() LogLevel {
	return l.level
}

// Warnings returns how many warnings were logged, shown or not
func (l *Logger) Warnings() int64 {
	return l.warnings.Load()
}

// ParseLevel converts a level name to LogLevel, defaulting to Info
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Debug logs a debug message if verbose mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, "DEBUG", color.FgCyan, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, "INFO", color.FgBlue, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.warnings.Add(1)
	l.log(LevelWarn, "WARN", color.FgYellow, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, "ERROR", color.FgRed, format, args...)
}

func (l *Logger) log(level LogLevel, prefix string, attr color.Attribute, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		c := color.New(attr)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", timeString(), prefix, fmt.Sprintf(format, args...))
}

// timeString returns a formatted time string for the log prefix
func timeString() string {
	return time.Now().Format("15:04:05.000")
}
