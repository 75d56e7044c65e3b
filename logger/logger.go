package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type LogrusLogger struct {
	internalLogger *logrus.Logger
}

// New returns a Logger writing text records to stderr at info level.
func New() Logger {
	return NewWithOutput(os.Stderr, logrus.InfoLevel)
}

// NewWithOutput returns a Logger writing to out at the given level.
func NewWithOutput(out io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return &LogrusLogger{internalLogger: l}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return NewWithOutput(io.Discard, logrus.PanicLevel)
}

// ParseLevel maps a config string like "debug" onto a logrus level,
// falling back to info for unknown values.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Info(msg)
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Debug(msg)
}

func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Error(msg)
}

// fields turns alternating key/value args into logrus fields. A trailing key
// without a value is recorded under "!BADKEY".
func fields(args []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		f[key] = args[i+1]
	}
	return f
}
