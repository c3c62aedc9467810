// Package log is termfm's structured logger. It keeps a small package-level
// API (Info, Debugf, LogWithFields, ...) over a logrus backend so call sites
// never import logrus directly.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"termfm/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*logrus.Logger) error

// WithOutput sends log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) error {
		l.SetOutput(w)
		return nil
	}
}

// WithFile appends log output to the file at path, creating parent
// directories as needed.
func WithFile(path string) Option {
	return func(l *logrus.Logger) error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.SetOutput(f)
		return nil
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *logrus.Logger) error {
		l.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
		return nil
	}
}

// WithLevel sets the minimum level by name (debug, info, warn, error).
func WithLevel(level string) Option {
	return func(l *logrus.Logger) error {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(lvl)
		return nil
	}
}

// Logger writes structured entries. The zero value is not usable; build one
// with NewLogger.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger builds a Logger writing text to stdout, then applies opts.
// Options that fail are skipped and reported on stderr.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
	})

	for _, opt := range opts {
		if err := opt(l); err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
		}
	}

	return &Logger{entry: logrus.NewEntry(l)}
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles Debug and Debugf output for every Logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data)}
}

func (l *Logger) log(level logrus.Level, msg string) {
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func (l *Logger) Info(msg string) { l.log(logrus.InfoLevel, msg) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string) { l.log(logrus.WarnLevel, msg) }

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) { l.log(logrus.ErrorLevel, msg) }

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs only when SetDebug(true) is in effect.
func (l *Logger) Debug(msg string) {
	if isDebug {
		l.log(logrus.DebugLevel, msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func Info(msg string) { logger.log(logrus.InfoLevel, msg) }

func Infof(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Warn(msg string) { logger.log(logrus.WarnLevel, msg) }

func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func Error(msg string) { logger.log(logrus.ErrorLevel, msg) }

func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func Debug(msg string) {
	if isDebug {
		logger.log(logrus.DebugLevel, msg)
	}
}

func Debugf(format string, args ...interface{}) {
	if isDebug {
		logger.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with the error and, for termfm
// error types, its kind and context attached as fields.
func LogWithError(err error) *Logger {
	return logger.With(errorFields(err)...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.With(errorFields(err)...).log(logrus.ErrorLevel, msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return nil
	}
	fields := []Field{F("error", err.Error())}

	var parseErr *errors.ParseError
	var execErr *errors.ExecError
	var configErr *errors.ConfigError
	var appErr *errors.ApplicationError
	switch {
	case errors.As(err, &parseErr):
		fields = append(fields, F("error_kind", int(parseErr.Kind())))
		if parseErr.Op() != 0 {
			fields = append(fields, F("op", string(parseErr.Op())))
		}
	case errors.As(err, &execErr):
		fields = append(fields, F("error_kind", int(execErr.Kind())), F("op", execErr.Op()))
		if execErr.Path() != "" {
			fields = append(fields, F("path", execErr.Path()))
		}
	case errors.As(err, &configErr):
		fields = append(fields, F("error_kind", int(configErr.Kind())))
		if configErr.Param() != "" {
			fields = append(fields, F("param", configErr.Param()))
		}
	case errors.As(err, &appErr):
		fields = append(fields, F("error_kind", int(appErr.Kind())))
	}
	return fields
}
