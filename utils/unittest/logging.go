package unittest

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

// Logger returns a debug level logger for tests. Its output is discarded
// unless the -vv flag is set.
func Logger() zerolog.Logger {
	if *verbose {
		return LoggerWithWriter(os.Stderr)
	}
	return LoggerWithWriter(io.Discard)
}

// LoggerWithWriter returns a debug level logger writing JSON lines to w.
func LoggerWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
