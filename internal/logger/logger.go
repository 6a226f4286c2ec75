package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. Logs go to stderr so that
// search output on stdout stays clean.
func Setup(level string, format string) {
	configure(logrus.StandardLogger(), os.Stderr, level, format)
}

// New returns a logger configured like Setup but writing to w.
func New(w io.Writer, level string, format string) *logrus.Logger {
	l := logrus.New()
	configure(l, w, level, format)
	return l
}

// WithComponent tags entries from the standard logger with a component name.
func WithComponent(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

func configure(l *logrus.Logger, w io.Writer, level string, format string) {
	l.SetOutput(w)
	l.SetLevel(parseLevel(level))
	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
