package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger for a command. With --log-file the output
// goes to that file; otherwise interactive commands discard it (the
// terminal belongs to the game) and servers log to stderr.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
