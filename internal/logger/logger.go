// Package logger is a small leveled logger. Output is discarded unless a log
// file is configured, since the terminal belongs to the onboarding UI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
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
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger writes "[LEVEL] message" lines at or above its level.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *log.Logger
	file   *os.File
}

// Default is the process-wide logger used by the package-level functions.
var Default = New()

// New creates a logger from ONBOARDR_LOG_LEVEL and ONBOARDR_LOG_FILE.
func New() *Logger {
	l := &Logger{
		level:  LevelInfo,
		logger: log.New(io.Discard, "", log.LstdFlags),
	}
	_ = l.Configure(os.Getenv("ONBOARDR_LOG_LEVEL"), os.Getenv("ONBOARDR_LOG_FILE"))
	return l
}

// Configure sets the level and, when path is non-empty, switches output to
// that file in append mode. An invalid level leaves the current one in place.
func (l *Logger) Configure(level, path string) error {
	var errs []string
	if level != "" {
		lv, err := ParseLevel(level)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			l.SetLevel(lv)
		}
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			errs = append(errs, fmt.Sprintf("opening log file: %v", err))
		} else {
			l.mu.Lock()
			if l.file != nil {
				_ = l.file.Close()
			}
			l.file = f
			l.logger.SetOutput(f)
			l.mu.Unlock()
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuring logger: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.logger.SetOutput(io.Discard)
	return err
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

func (l *Logger) Debug(format string, v ...interface{}) { l.log(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.log(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.log(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.log(LevelError, format, v...) }

func (l *Logger) log(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

// Package-level functions that use the default logger

func Debug(format string, v ...interface{}) { Default.Debug(format, v...) }
func Info(format string, v ...interface{})  { Default.Info(format, v...) }
func Warn(format string, v ...interface{})  { Default.Warn(format, v...) }
func Error(format string, v ...interface{}) { Default.Error(format, v...) }

// Configure configures the default logger.
func Configure(level, path string) error {
	return Default.Configure(level, path)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
