package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/steepleherder/internal/build"
	"github.com/dshills/steepleherder/internal/config"
	"github.com/dshills/steepleherder/internal/payload"
	"github.com/dshills/steepleherder/internal/profile"
	"github.com/dshills/steepleherder/internal/render"
	"github.com/dshills/steepleherder/internal/results"
	"github.com/dshills/steepleherder/internal/submission"
	"github.com/dshills/steepleherder/internal/treeherder"
)

type submitFlags struct {
	configPath  string
	resultsPath string
	profileName string
	outDir      string
	failOn      string
	timeout     time.Duration
	dryRun      bool
	verbose     bool

	// Test hooks.
	client   treeherder.Client
	hostname func() (string, error)
}

func newSubmitCmd() *cobra.Command {
	f := &submitFlags{}

	cmd := &cobra.Command{
		Use:   "submit <submit-time> <start-time> <end-time>",
		Short: "Classify the run's results and post them to Treeherder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(args, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Path to steepleherder.ini (default: next to the executable)")
	flags.StringVar(&f.resultsPath, "results", "", "Parsed results JSON (default: <System.logfile>.json)")
	flags.StringVar(&f.profileName, "profile", "endurance", "Job profile name")
	flags.StringVar(&f.outDir, "out-dir", "", "Also write resultset.json and jobs.json to this directory")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if the verdict is at least: testfailed or busted")
	flags.DurationVar(&f.timeout, "timeout", 2*time.Minute, "Timeout for posting to Treeherder")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Build and print the submission without posting it")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runSubmit(args []string, f *submitFlags, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, f.verbose)
	submitTime, startTime, endTime := args[0], args[1], args[2]

	threshold, err := parseFailOn(f.failOn)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}

	// 1. Load config
	cfgPath := f.configPath
	if cfgPath == "" {
		if cfgPath, err = config.DefaultPath(); err != nil {
			return exitError(exitInput, "failed to locate config: %v", err)
		}
	}
	logger.Debug().Str("path", cfgPath).Msg("loading config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return exitError(exitInput, "failed to load config: %v", err)
	}

	// 2. Build under test
	app, err := config.LoadAppInfo(cfg.System.AUTDir)
	if err != nil {
		return exitError(exitInput, "failed to read application info: %v", err)
	}
	files, err := build.Find(cfg.System.AUTDir, cfg.System.TestsDir)
	if err != nil {
		return exitError(exitInput, "failed to find build files: %v", err)
	}
	pushTime, err := build.PushTime(files[0])
	if err != nil {
		return exitError(exitInput, "failed to read push time: %v", err)
	}
	logger.Debug().
		Str("revision", app.SourceStamp).
		Strs("files", files.Basenames()).
		Int64("push_time", pushTime).
		Msg("found build")

	// 3. Results
	resultsPath := f.resultsPath
	if resultsPath == "" {
		if resultsPath, err = cfg.ResultsPath(); err != nil {
			return exitError(exitInput, "no results file: %v", err)
		}
	}
	logger.Debug().Str("path", resultsPath).Msg("loading results")
	rf, err := results.Load(resultsPath)
	if err != nil {
		return exitError(resultsExitCode(err), "failed to load results: %v", err)
	}

	// 4. Profile
	prof, err := profile.LoadBuiltin(f.profileName)
	if err != nil {
		return exitError(exitInput, "failed to load profile: %v", err)
	}

	hostname := f.hostname
	if hostname == nil {
		hostname = os.Hostname
	}
	machine, err := hostname()
	if err != nil {
		return exitError(exitInput, "failed to read hostname: %v", err)
	}

	// 5. Assemble
	sub, err := submission.Build(submission.Input{
		Project:      cfg.Repo.Project,
		App:          *app,
		Files:        files,
		PushTime:     pushTime,
		Results:      rf,
		Profile:      prof,
		SubmitTime:   submitTime,
		StartTime:    startTime,
		EndTime:      endTime,
		Machine:      machine,
		RevisionHash: build.RevisionHash(),
		JobGUID:      build.JobGUID(),
	})
	if err != nil {
		var inv *submission.InvalidError
		if errors.As(err, &inv) {
			for _, e := range inv.Errors {
				logger.Error().Str("path", e.Path).Msg(e.Message)
			}
			return exitError(exitValidation, "submission failed validation")
		}
		return exitError(exitInput, "failed to assemble submission: %v", err)
	}
	logger.Info().
		Str("verdict", string(sub.Verdict)).
		Int("clients", len(rf.Results.Clients)).
		Str("results", rf.Hash).
		Msg("classified run")

	// 6. Output
	if err := printCollections(stdout, sub); err != nil {
		return err
	}
	if err := payload.WriteFiles(f.outDir, sub.ResultSets, sub.Jobs); err != nil {
		return fmt.Errorf("failed to write payloads: %w", err)
	}

	// 7. Post
	if f.dryRun {
		logger.Info().Msg("dry run, not posting")
	} else {
		client := f.client
		if client == nil {
			hc, err := treeherder.New(treeherder.Options{
				Protocol: cfg.Repo.Protocol,
				Host:     cfg.Repo.Host,
				Project:  cfg.Repo.Project,
				Key:      cfg.Credentials.Key,
				Secret:   cfg.Credentials.Secret,
			})
			if err != nil {
				return exitError(exitTransport, "treeherder client: %v", err)
			}
			client = hc
		}

		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()
		logger.Debug().Str("client", client.Name()).Str("host", cfg.Repo.Host).Msg("posting")
		if err := sub.Post(ctx, client); err != nil {
			return exitError(exitTransport, "submission failed: %v", err)
		}
		logger.Info().Str("project", cfg.Repo.Project).Msg("submitted")
	}

	// 8. Exit code based on --fail-on
	if threshold != "" && verdictMeetsThreshold(sub.Verdict, threshold) {
		return exitError(exitFailOn, "verdict %s meets fail threshold %s", sub.Verdict, threshold)
	}
	return nil
}

func printCollections(w io.Writer, sub *submission.Submission) error {
	for _, c := range []struct {
		label string
		v     any
	}{
		{"trsc", sub.ResultSets},
		{"tjc", sub.Jobs},
	} {
		out, err := render.JSON(c.v)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", c.label, err)
		}
		fmt.Fprintf(w, "%s = %s\n", c.label, out)
	}
	return nil
}
