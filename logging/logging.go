// Package logging owns the process-wide logger shared by fixture readers,
// schema generators and the CLI.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// Log is the default logger for the application.
	Log = logrus.New()
)

// Init sets the level of Log and points it at stderr.
func Init(level string) error {
	return Configure(Log, level, os.Stderr)
}

// Configure applies the given level, output and the text formatter to l.
func Configure(l *logrus.Logger, level string, w io.Writer) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	l.SetLevel(logLevel)
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return nil
}

// Component returns an entry of Log tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
