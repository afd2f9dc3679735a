package common

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Fields are structured key/value pairs attached to a log entry.
type Fields = logrus.Fields

type Logger interface {
	Log(message string)
	Error(err error, message string)
	WithFields(fields Fields) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewFileLogger logs JSON lines to the file specified by `path`. If the file is unavailable, writes to the console.
// `level` is a logrus level name ("debug", "info", "warn", ...); unknown names fall back to "info".
func NewFileLogger(path, level string) Logger {
	var out io.Writer = os.Stdout
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error: %s. Logging switched to console.\n", err.Error())
	} else {
		out = file
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		parsedLevel = logrus.InfoLevel
	}
	logger.SetLevel(parsedLevel)
	return NewLogrusLogger(logger)
}

// NewLogrusLogger adapts an already configured logrus logger (tests pass a null logger with a hook here).
func NewLogrusLogger(logger *logrus.Logger) Logger {
	return &logrusLogger{entry: logrus.NewEntry(logger)}
}

func (l *logrusLogger) Log(message string) {
	l.entry.Info(message)
}

func (l *logrusLogger) Error(err error, message string) {
	l.entry.WithError(err).Error(message)
}

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{entry: l.entry.WithFields(fields)}
}
