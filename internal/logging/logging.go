// Package logging wires the six verbosity levels the configuration
// surface accepts (off/error/warn/info/debug/trace) onto
// github.com/sirupsen/logrus, grounded on nabbar-golib/logger's level
// mapping. The core never reaches for a package-level logger; every
// component that logs takes a *logrus.Logger or *logrus.Entry through
// its constructor.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level names accepted on the CLI / in Configuration.
const (
	LevelOff   = "off"
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelTrace = "trace"
)

// New builds a *logrus.Logger at the named level. An unrecognized
// level falls back to "info". "off" discards all output rather than
// special-casing a nil logger throughout the core.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == LevelOff {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(os.Stderr)

	switch level {
	case LevelError:
		log.SetLevel(logrus.ErrorLevel)
	case LevelWarn:
		log.SetLevel(logrus.WarnLevel)
	case LevelInfo:
		log.SetLevel(logrus.InfoLevel)
	case LevelDebug:
		log.SetLevel(logrus.DebugLevel)
	case LevelTrace:
		log.SetLevel(logrus.TraceLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// ValidLevel reports whether level is one of the six accepted names.
func ValidLevel(level string) bool {
	switch level {
	case LevelOff, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace:
		return true
	default:
		return false
	}
}
