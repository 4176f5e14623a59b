package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
	// Output defaults to stdout
	Output io.Writer
}

type structuredLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// NewStructuredLogger builds a logrus-backed Logger. Unknown levels fall back to info
// and any format other than "json" uses the text formatter.
func NewStructuredLogger(config LoggerConfig) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(config.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano, FullTimestamp: true})
	}

	if config.Output != nil {
		l.SetOutput(config.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	return &structuredLogger{
		logger: l,
		fields: logrus.Fields{"service": config.ServiceName},
	}
}

func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, logrus.InfoLevel, message, nil, fields)
}

func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.log(ctx, logrus.ErrorLevel, message, err, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, logrus.WarnLevel, message, nil, fields)
}

func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, logrus.DebugLevel, message, nil, fields)
}

// WithFields returns a child logger; the receiver is left untouched.
func (l *structuredLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &structuredLogger{logger: l.logger, fields: merged}
}

func (l *structuredLogger) log(ctx context.Context, level logrus.Level, message string, err error, fields map[string]interface{}) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}

	entry := make(logrus.Fields, len(l.fields)+len(fields)+3)
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	if cid := CorrelationID(ctx); cid != "" {
		entry["correlation_id"] = cid
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	// log <- Info/Error/... <- caller
	if _, file, line, ok := runtime.Caller(2); ok {
		entry["caller"] = fmt.Sprintf("%s:%d", file, line)
	}

	l.logger.WithFields(entry).Log(level, message)
}
