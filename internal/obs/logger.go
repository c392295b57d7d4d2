// Package obs carries the system's ambient observability surface: logger
// construction, the stats key=value writer, and the coverage-trace writer
// spec.md §6.2 describes. Every run gets a google/uuid run id stamped into
// both output files so separate invocations against the same paths (e.g.
// -os results.txt across a sweep) can be told apart after the fact.
package obs

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a console logger in the teacher's style
// (pkg/scar/config.go's CreateLogger): human-readable timestamps, one
// structured "component" field identifying the subsystem. suppressProgress
// maps spec.md §6.1's -v flag (which, despite its name, *suppresses*
// progress output rather than enabling verbose logging) down to a log
// level: Info normally, Warn when progress output is suppressed, so seed
// selection and preprocessing progress lines are dropped but warnings and
// errors still surface.
func NewLogger(component string, suppressProgress bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if suppressProgress {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("component", component).Logger()
}
