// Package logging builds the logrus loggers used by the client, the sandbox,
// and the boxctl CLI.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", ...) in the given format. Empty level means info and empty format
// means text.
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	l.SetLevel(lvl)

	switch format {
	case "", FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}

// Discard returns a logger that drops everything. It is the default for
// library callers that do not supply their own.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
