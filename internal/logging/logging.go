// Package logging builds the process logger. Diagnostics go to stderr so
// they never mix with generated output or prompts on stdout.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cproject-labs/cproject/internal/branding"
	"github.com/sirupsen/logrus"
)

// DefaultLevel applies when neither --verbose nor $CPROJECT_LOG is set.
const DefaultLevel = logrus.WarnLevel

// New returns a logger writing text records to w. verbose raises the level
// to debug; a valid $CPROJECT_LOG overrides both.
func New(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !isTerminal(w),
	})
	logger.SetLevel(Level(verbose, os.Getenv(branding.EnvVar("LOG"))))
	return logger
}

// Level picks the log level from the verbose flag and an override string.
// Unknown overrides are ignored.
func Level(verbose bool, override string) logrus.Level {
	if override = strings.TrimSpace(override); override != "" {
		if lvl, err := logrus.ParseLevel(override); err == nil {
			return lvl
		}
	}
	if verbose {
		return logrus.DebugLevel
	}
	return DefaultLevel
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
