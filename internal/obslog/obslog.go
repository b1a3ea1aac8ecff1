// Package obslog centralizes structured logging for the module's internal
// machinery (calibration, warm-up, dispatch rejections). It is the one
// place zerolog is configured; every other package logs through the
// package-level Logger rather than constructing its own.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the shared structured logger. Components that run before or
// outside of any user-supplied configuration (calibration, warm-up) log
// through this value directly.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetLevel adjusts the minimum logged level, letting a hosting
// application (cmd/fibcalc, or any other collaborator) quiet or enrich
// this module's diagnostic output without touching its own logger.
func SetLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}
