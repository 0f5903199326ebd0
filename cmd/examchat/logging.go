package main

import (
	"fmt"
	"io"
	"os"

	"pkt.systems/pslog"
)

// newLogger builds the diagnostic logger. The TUI owns the terminal, so
// logs go to --log-file when set, to stderr only with --verbose, and are
// discarded otherwise. The returned closer may be nil.
func newLogger(opts options, stderr io.Writer) (pslog.Logger, io.Closer, error) {
	level := pslog.InfoLevel
	if opts.verbose {
		level = pslog.DebugLevel
	}

	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return pslog.NewWithOptions(f, pslog.Options{
			Mode:     pslog.ModeStructured,
			NoColor:  true,
			MinLevel: level,
		}), f, nil
	case opts.verbose:
		return pslog.NewWithOptions(stderr, pslog.Options{
			Mode:     pslog.ModeConsole,
			MinLevel: level,
		}), nil, nil
	default:
		return pslog.NewWithOptions(io.Discard, pslog.Options{}), nil, nil
	}
}
