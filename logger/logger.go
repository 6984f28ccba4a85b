// file: logger/logger.go

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init is called.
var Log = logrus.New()

// Options controls where and how Log writes.
type Options struct {
	Level  string
	Format string
	File   string
}

// Init configures Log with defaults: JSON lines at info level on stderr.
// Stdout is left to the console menu.
func Init() {
	Configure(Options{})
}

// Configure applies opts to Log. An unknown level falls back to info and an
// unopenable file falls back to stderr; both are reported on the logger itself.
func Configure(opts Options) {
	Log.SetOutput(os.Stderr)

	switch strings.ToLower(opts.Format) {
	case "text":
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		Log.SetFormatter(&logrus.JSONFormatter{})
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			Log.WithError(err).Warn("Unknown log level, using info")
		} else {
			level = parsed
		}
	}
	Log.SetLevel(level)

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Log.WithError(err).WithField("file", opts.File).Warn("Cannot open log file, logging to stderr")
			return
		}
		Log.SetOutput(f)
	}
}

// Discard silences Log. Used by tests that drive the console.
func Discard() {
	Log.SetOutput(io.Discard)
}
