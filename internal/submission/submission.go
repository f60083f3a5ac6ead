// Package submission assembles the result set and job for one endurance run.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/steepleherder/internal/build"
	"github.com/dshills/steepleherder/internal/config"
	"github.com/dshills/steepleherder/internal/profile"
	"github.com/dshills/steepleherder/internal/report"
	"github.com/dshills/steepleherder/internal/results"
	"github.com/dshills/steepleherder/internal/schema"
	"github.com/dshills/steepleherder/internal/treeherder"
)

// Input is everything gathered by the caller before a run is assembled.
type Input struct {
	Project      string
	App          config.AppInfo
	Files        build.Files
	PushTime     int64
	Results      *results.File
	Profile      *profile.Profile
	SubmitTime   string
	StartTime    string
	EndTime      string
	Machine      string
	RevisionHash string
	JobGUID      string
}

// Submission is an assembled, validated run ready to post.
type Submission struct {
	Verdict    report.Verdict
	Summary    report.Summary
	ResultSets treeherder.ResultSetCollection
	Jobs       treeherder.JobCollection
}

// InvalidError is returned when the assembled collections fail structural validation.
type InvalidError struct {
	Errors []schema.ValidationError
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Error())
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

// Build classifies the results and assembles the result set and job.
// The summary artifact is attached only when the run is not busted;
// the raw results are always attached.
func Build(in Input) (*Submission, error) {
	if in.Results == nil {
		return nil, fmt.Errorf("submission.Build: no results")
	}
	if in.Profile == nil {
		return nil, fmt.Errorf("submission.Build: no profile")
	}
	if len(in.Files) == 0 {
		return nil, fmt.Errorf("submission.Build: %w", build.ErrNoFiles)
	}

	s := &Submission{Verdict: report.Classify(&in.Results.Results)}
	p := in.Profile

	s.ResultSets = treeherder.ResultSetCollection{{
		RevisionHash:  in.RevisionHash,
		Author:        p.Author,
		PushTimestamp: in.PushTime,
		Type:          "push",
		Revisions: []treeherder.Revision{{
			Revision:   in.App.SourceStamp,
			Author:     p.Author,
			Comment:    build.Version(filepath.Base(in.Files[0])),
			Files:      in.Files.Basenames(),
			Repository: in.App.SourceRepository,
		}},
	}}

	platform := treeherder.Platform{
		OSName:       p.Platform.OSName,
		Platform:     p.Platform.Platform,
		Architecture: p.Platform.Architecture,
	}
	job := treeherder.Job{
		JobGUID:          in.JobGUID,
		Name:             p.Job.Name,
		JobSymbol:        p.Job.Symbol,
		GroupName:        p.Job.GroupName,
		GroupSymbol:      p.Job.GroupSymbol,
		Description:      p.Job.Description,
		State:            "completed",
		Result:           p.ResultString(string(s.Verdict)),
		Reason:           p.Job.Reason,
		Who:              p.Job.Who,
		SubmitTimestamp:  in.SubmitTime,
		StartTimestamp:   in.StartTime,
		EndTimestamp:     in.EndTime,
		Machine:          in.Machine,
		BuildPlatform:    platform,
		MachinePlatform:  platform,
		OptionCollection: p.OptionCollection,
		LogReferences:    []treeherder.LogReference{},
	}

	if s.Verdict != report.VerdictBusted {
		s.Summary = report.BuildSummary(&in.Results.Results)
		job.AddArtifact(p.Artifacts.Summary, "json", s.Summary.JobInfo())
	}
	job.AddArtifact(p.Artifacts.Results, "json", json.RawMessage(in.Results.Raw))

	s.Jobs = treeherder.JobCollection{{
		Project:      in.Project,
		RevisionHash: in.RevisionHash,
		Job:          job,
	}}

	errs := append(schema.ValidateResultSets(s.ResultSets), schema.ValidateJobs(s.Jobs)...)
	if len(errs) > 0 {
		return s, &InvalidError{Errors: errs}
	}
	return s, nil
}

// Post sends the result set collection, then the job collection.
func (s *Submission) Post(ctx context.Context, c treeherder.Client) error {
	if err := c.Post(ctx, s.ResultSets); err != nil {
		return fmt.Errorf("post result set: %w", err)
	}
	if err := c.Post(ctx, s.Jobs); err != nil {
		return fmt.Errorf("post job: %w", err)
	}
	return nil
}
