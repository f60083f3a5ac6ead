package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/steepleherder/internal/render"
	"github.com/dshills/steepleherder/internal/report"
	"github.com/dshills/steepleherder/internal/results"
)

type classifyFlags struct {
	format  string
	out     string
	failOn  string
	verbose bool
}

func newClassifyCmd() *cobra.Command {
	f := &classifyFlags{}

	cmd := &cobra.Command{
		Use:   "classify <results-file>",
		Short: "Print the verdict and summary of a parsed results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args[0], f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if the verdict is at least: testfailed or busted")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runClassify(path string, f *classifyFlags, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, f.verbose)

	threshold, err := parseFailOn(f.failOn)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}

	logger.Debug().Str("path", path).Msg("loading results")
	rf, err := results.Load(path)
	if err != nil {
		return exitError(resultsExitCode(err), "failed to load results: %v", err)
	}

	c := render.Classification{
		File:    filepath.Base(rf.FilePath),
		Hash:    rf.Hash,
		Verdict: report.Classify(&rf.Results),
	}
	if c.Verdict != report.VerdictBusted {
		c.Summary = report.BuildSummary(&rf.Results)
	}
	logger.Debug().Str("verdict", string(c.Verdict)).Int("details", len(c.Summary)).Msg("classified")

	var output string
	switch f.format {
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(&c)
	default:
		return exitError(exitInput, "unknown format: %s", f.format)
	}

	if f.out != "" {
		logger.Debug().Str("path", f.out).Msg("writing output")
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	if threshold != "" && verdictMeetsThreshold(c.Verdict, threshold) {
		return exitError(exitFailOn, "verdict %s meets fail threshold %s", c.Verdict, threshold)
	}
	return nil
}
