package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/dshills/steepleherder/internal/report"
)

const (
	exitFailOn     = 2
	exitInput      = 3
	exitTransport  = 4
	exitValidation = 5
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// resultsExitCode separates unreadable results files from malformed ones.
func resultsExitCode(err error) int {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return exitInput
	}
	return exitValidation
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// parseFailOn validates a --fail-on value. An empty value disables the check.
func parseFailOn(failOn string) (report.Verdict, error) {
	if failOn == "" {
		return "", nil
	}
	v, ok := report.ParseVerdict(failOn)
	if !ok || v == report.VerdictSuccess {
		return "", fmt.Errorf("unrecognized --fail-on value %q (use busted or testfailed)", failOn)
	}
	return v, nil
}

// verdictMeetsThreshold reports whether verdict is at least as bad as threshold.
// testfailed is the lower level; busted also meets it.
func verdictMeetsThreshold(verdict, threshold report.Verdict) bool {
	level := map[report.Verdict]int{
		report.VerdictSuccess:    0,
		report.VerdictTestFailed: 1,
		report.VerdictBusted:     2,
	}
	vl, ok := level[verdict]
	if !ok {
		return false
	}
	tl, ok := level[threshold]
	if !ok {
		return false
	}
	return vl >= tl
}
