package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	serr "codextract/internal/errors"
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

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out   io.Writer
	json  bool
	file  string
	level logrus.Level
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches the formatter to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log output to the file at path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithLevel sets the minimum level that is emitted. Unknown names are ignored.
func WithLevel(name string) Option {
	return func(o *options) {
		if lvl, err := logrus.ParseLevel(strings.ToLower(name)); err == nil {
			o.level = lvl
		}
	}
}

// Logger is a structured logger backed by logrus.
type Logger struct {
	base   *logrus.Logger
	level  logrus.Level
	fields logrus.Fields
	file   *os.File
}

// NewLogger creates a Logger. Without options it writes text at info level to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Logger{fields: logrus.Fields{}, level: o.level}

	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}

	base := logrus.New()
	base.SetOutput(out)
	// Gating happens in Logger.log so SetDebug can lift debug output at runtime.
	base.SetLevel(logrus.TraceLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	l.base = base
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	if logger != nil && logger.file != nil {
		logger.file.Close()
	}
	logger = NewLogger(opts...)
}

// SetDebug enables or disables debug output on every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, level: l.level, fields: merged, file: l.file}
}

// WithError returns a child logger describing err.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) log(level logrus.Level, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.base.WithFields(l.fields).Log(level, args...)
}

func (l *Logger) logf(level logrus.Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.base.WithFields(l.fields).Logf(level, format, args...)
}

func (l *Logger) enabled(level logrus.Level) bool {
	if level == logrus.DebugLevel {
		return isDebug || l.level >= logrus.DebugLevel
	}
	return level <= l.level || isDebug
}

func (l *Logger) Debug(msg string)                          { l.log(logrus.DebugLevel, msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(logrus.DebugLevel, format, args...) }
func (l *Logger) Info(msg string)                           { l.log(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(logrus.InfoLevel, format, args...) }
func (l *Logger) Warn(msg string)                           { l.log(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(logrus.WarnLevel, format, args...) }
func (l *Logger) Error(msg string)                          { l.log(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(logrus.ErrorLevel, format, args...) }

// errorFields flattens an error and, for application errors, its kind and subject.
func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{F("error", err.Error())}

	if kind, ok := errorKind(err); ok {
		fields = append(fields, F("error_kind", int(kind)))
	}
	if class := errorClass(err); class != "" {
		fields = append(fields, F("error_class", class))
	}

	var fileErr *serr.FileError
	if serr.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}

	var configErr *serr.ConfigError
	if serr.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}

	return fields
}

// errorClass names the family an error belongs to, or "" for plain errors.
func errorClass(err error) string {
	switch {
	case serr.IsAccessError(err):
		return "access"
	case serr.IsWriteError(err):
		return "write"
	case serr.IsInvalidConfig(err):
		return "config"
	case serr.IsInvalidInputError(err):
		return "input"
	}
	return ""
}

// errorKind returns the most specific kind found in err's chain. Generic
// wrappers report Unknown, so a deeper known kind wins over them.
func errorKind(err error) (serr.ErrorKind, bool) {
	found := false
	kind := serr.Unknown
	for e := err; e != nil; e = serr.Unwrap(e) {
		k, ok := e.(interface{ Kind() serr.ErrorKind })
		if !ok {
			continue
		}
		found = true
		if k.Kind() != serr.Unknown {
			return k.Kind(), true
		}
	}
	return kind, found
}

// Package-level helpers write through the configured logger.

func Debug(msg string)                          { logger.Debug(msg) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Info(msg string)                           { logger.Info(msg) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(msg string)                           { logger.Warn(msg) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(msg string)                          { logger.Error(msg) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger annotated with err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}
