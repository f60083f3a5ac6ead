package submission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dshills/steepleherder/internal/build"
	"github.com/dshills/steepleherder/internal/config"
	"github.com/dshills/steepleherder/internal/profile"
	"github.com/dshills/steepleherder/internal/report"
	"github.com/dshills/steepleherder/internal/results"
	"github.com/dshills/steepleherder/internal/treeherder"
)

const passingRun = `{"total failed": 1, "total passed": 239, "session runtime": 3600000, "clients": [
	{"name": "Firefox 1", "blocks": 120, "failed blocks": [4], "longest pass": 90, "session runtime": 3600000,
	 "session failures": [], "setup failures": [], "cleanup failures": []},
	{"name": "Firefox 2", "blocks": 120, "failed blocks": [], "longest pass": 120, "session runtime": 3599000,
	 "session failures": [], "setup failures": [], "cleanup failures": []}]}`

const crashedRun = `{"total failed": null, "total passed": null, "session runtime": null, "clients": []}`

func input(t *testing.T, raw string) Input {
	t.Helper()
	agg, err := results.Parse([]byte(raw))
	require.NoError(t, err)
	p, err := profile.LoadBuiltin("endurance")
	require.NoError(t, err)
	return Input{
		Project:  "webrtc",
		App:      config.AppInfo{SourceStamp: "3ae6d6f1e8d4", SourceRepository: "https://hg.mozilla.org/mozilla-central"},
		Files:    build.Files{"/aut/firefox-30.0a1.en-US.linux-x86_64.tar.bz2", "/tests/firefox-30.0a1.en-US.linux-x86_64.tests.zip"},
		PushTime: 1395100000,
		Results:  &results.File{FilePath: "/logs/steeplechase.log.json", Raw: []byte(raw), Results: *agg},
		Profile:  p,

		SubmitTime:   "1395140000",
		StartTime:    "1395136400",
		EndTime:      "1395140000",
		Machine:      "qa-webrtc-01",
		RevisionHash: "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3",
		JobGUID:      "0b6e8a5c-0f0e-4a3c-9d8a-5b0f1f7c2e11",
	}
}

func TestBuildSuccess(t *testing.T) {
	s, err := Build(input(t, passingRun))
	require.NoError(t, err)
	require.Equal(t, report.VerdictSuccess, s.Verdict)
	require.Len(t, s.Summary, 17)

	want := treeherder.ResultSetCollection{{
		RevisionHash:  "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3",
		Author:        "Firefox Nightly",
		PushTimestamp: 1395100000,
		Type:          "push",
		Revisions: []treeherder.Revision{{
			Revision:   "3ae6d6f1e8d4",
			Author:     "Firefox Nightly",
			Comment:    "firefox-30.0a1.en-US.linux-x86_64",
			Files:      []string{"firefox-30.0a1.en-US.linux-x86_64.tar.bz2", "firefox-30.0a1.en-US.linux-x86_64.tests.zip"},
			Repository: "https://hg.mozilla.org/mozilla-central",
		}},
	}}
	if diff := cmp.Diff(want, s.ResultSets); diff != "" {
		t.Errorf("result sets mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, s.Jobs, 1)
	e := s.Jobs[0]
	require.Equal(t, "webrtc", e.Project)
	require.Equal(t, "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3", e.RevisionHash)

	j := e.Job
	require.Equal(t, "success", j.Result)
	require.Equal(t, "completed", j.State)
	require.Equal(t, "Endurance", j.Name)
	require.Equal(t, "end", j.JobSymbol)
	require.Equal(t, "WebRTC QA Tests", j.GroupName)
	require.Equal(t, "WebRTC", j.GroupSymbol)
	require.Equal(t, "WebRTC Sunny Day", j.Description)
	require.Equal(t, "testing", j.Reason)
	require.Equal(t, "Mozilla Platform QA", j.Who)
	require.Equal(t, "qa-webrtc-01", j.Machine)
	require.Equal(t, map[string]bool{"opt": true}, j.OptionCollection)
	require.Equal(t, treeherder.Platform{OSName: "linux", Platform: "linux64", Architecture: "x86_64"}, j.BuildPlatform)
	require.Equal(t, j.BuildPlatform, j.MachinePlatform)

	require.Len(t, j.Artifacts, 2)
	require.Equal(t, "Job Info", j.Artifacts[0].Name)
	require.Equal(t, s.Summary.JobInfo(), j.Artifacts[0].Blob)
	require.Equal(t, "Results", j.Artifacts[1].Name)
	for _, a := range j.Artifacts {
		require.Equal(t, "json", a.Type)
		require.Equal(t, j.JobGUID, a.JobGUID)
	}

	blob, err := json.Marshal(j.Artifacts[1].Blob)
	require.NoError(t, err)
	require.JSONEq(t, passingRun, string(blob))
}

func TestBuildBustedOmitsSummary(t *testing.T) {
	s, err := Build(input(t, crashedRun))
	require.NoError(t, err)
	require.Equal(t, report.VerdictBusted, s.Verdict)
	require.Nil(t, s.Summary)

	j := s.Jobs[0].Job
	require.Equal(t, "busted", j.Result)
	require.Len(t, j.Artifacts, 1)
	require.Equal(t, "Results", j.Artifacts[0].Name)
}

func TestBuildTestFailed(t *testing.T) {
	in := input(t, passingRun)
	in.Results.Results.Clients[1].SessionRuntime = 5000
	s, err := Build(in)
	require.NoError(t, err)
	require.Equal(t, report.VerdictTestFailed, s.Verdict)
	require.Equal(t, "testfailed", s.Jobs[0].Job.Result)
	require.Len(t, s.Jobs[0].Job.Artifacts, 2)
}

func TestBuildProfileResultMapping(t *testing.T) {
	in := input(t, crashedRun)
	in.Profile.Results = map[string]string{"busted": "exception"}
	s, err := Build(in)
	require.NoError(t, err)
	require.Equal(t, report.VerdictBusted, s.Verdict)
	require.Equal(t, "exception", s.Jobs[0].Job.Result)
}

func TestBuildInvalid(t *testing.T) {
	in := input(t, passingRun)
	in.StartTime = "soon"
	in.JobGUID = ""
	s, err := Build(in)
	require.Error(t, err)
	require.NotNil(t, s)

	var inv *InvalidError
	require.True(t, errors.As(err, &inv))
	paths := map[string]bool{}
	for _, e := range inv.Errors {
		paths[e.Path] = true
	}
	require.True(t, paths["jobs[0].job.start_timestamp"])
	require.True(t, paths["jobs[0].job.job_guid"])
	require.Contains(t, err.Error(), "invalid submission")
}

func TestBuildMissingInputs(t *testing.T) {
	in := input(t, passingRun)
	in.Files = nil
	_, err := Build(in)
	require.ErrorIs(t, err, build.ErrNoFiles)

	in = input(t, passingRun)
	in.Results = nil
	_, err = Build(in)
	require.Error(t, err)

	in = input(t, passingRun)
	in.Profile = nil
	_, err = Build(in)
	require.Error(t, err)
}

func TestPostOrder(t *testing.T) {
	s, err := Build(input(t, passingRun))
	require.NoError(t, err)

	m := &treeherder.MockClient{}
	require.NoError(t, s.Post(context.Background(), m))
	require.Len(t, m.Posted, 2)
	require.Equal(t, "resultset", m.Posted[0].Endpoint())
	require.Equal(t, "objectstore", m.Posted[1].Endpoint())
}

func TestPostError(t *testing.T) {
	s, err := Build(input(t, passingRun))
	require.NoError(t, err)

	m := &treeherder.MockClient{Err: errors.New("connection refused")}
	err = s.Post(context.Background(), m)
	require.ErrorContains(t, err, "post result set")
	require.Empty(t, m.Posted)
}
