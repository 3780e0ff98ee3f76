// Package logging sets up the line-oriented log file every scan and
// install outcome is reported through. The only observable failure mode
// of the whole system is "the feature did not activate", and this file
// is where that shows up.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewFile creates a logger writing to the named file, truncating any
// previous run's output. The returned closer flushes the file on
// shutdown; hooks outlive any shutdown path, so callers typically never
// invoke it.
func NewFile(path string) (zerolog.Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return newLogger(f), f, nil
}

// New creates a logger on an arbitrary writer; tests capture output
// this way.
func New(w io.Writer) zerolog.Logger {
	return newLogger(w)
}

func newLogger(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
