package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a prefixed logger without timestamps, used by the CLI.
func Default(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), false, false, log.TextFormatter)
}

// SetDebug switches the global logger between debug and warn levels.
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
}
