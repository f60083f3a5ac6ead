// Package schema validates the results file and the submissions built from it.
package schema

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dshills/steepleherder/internal/treeherder"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

var jobResults = map[string]bool{
	"success":    true,
	"testfailed": true,
	"busted":     true,
	"exception":  true,
	"retry":      true,
	"usercancel": true,
}

// ValidateJobs checks a job collection for structural validity.
func ValidateJobs(jobs treeherder.JobCollection) []ValidationError {
	var errs []ValidationError
	if len(jobs) == 0 {
		errs = append(errs, ValidationError{"jobs", "at least one job required"})
	}
	guids := make(map[string]bool)
	for i, e := range jobs {
		prefix := fmt.Sprintf("jobs[%d]", i)
		if e.Project == "" {
			errs = append(errs, ValidationError{prefix + ".project", "required"})
		}
		if e.RevisionHash == "" {
			errs = append(errs, ValidationError{prefix + ".revision_hash", "required"})
		}

		j := e.Job
		if j.JobGUID == "" {
			errs = append(errs, ValidationError{prefix + ".job.job_guid", "required"})
		} else if guids[j.JobGUID] {
			errs = append(errs, ValidationError{prefix + ".job.job_guid", fmt.Sprintf("duplicate GUID: %q", j.JobGUID)})
		} else {
			guids[j.JobGUID] = true
		}
		for field, v := range map[string]string{
			"name":         j.Name,
			"job_symbol":   j.JobSymbol,
			"group_name":   j.GroupName,
			"group_symbol": j.GroupSymbol,
			"state":        j.State,
			"machine":      j.Machine,
		} {
			if v == "" {
				errs = append(errs, ValidationError{prefix + ".job." + field, "required"})
			}
		}
		if !jobResults[j.Result] {
			errs = append(errs, ValidationError{prefix + ".job.result", fmt.Sprintf("invalid result: %q", j.Result)})
		}
		if len(j.OptionCollection) == 0 {
			errs = append(errs, ValidationError{prefix + ".job.option_collection", "must not be empty"})
		}
		for field, ts := range map[string]string{
			"submit_timestamp": j.SubmitTimestamp,
			"start_timestamp":  j.StartTimestamp,
			"end_timestamp":    j.EndTimestamp,
		} {
			if _, err := strconv.ParseInt(ts, 10, 64); err != nil {
				errs = append(errs, ValidationError{prefix + ".job." + field, fmt.Sprintf("must be unix seconds, got %q", ts)})
			}
		}
		errs = append(errs, validatePlatform(prefix+".job.build_platform", j.BuildPlatform)...)
		errs = append(errs, validatePlatform(prefix+".job.machine_platform", j.MachinePlatform)...)

		names := make(map[string]bool)
		for k, a := range j.Artifacts {
			ap := fmt.Sprintf("%s.job.artifacts[%d]", prefix, k)
			if a.Name == "" {
				errs = append(errs, ValidationError{ap + ".name", "required"})
			} else if names[a.Name] {
				errs = append(errs, ValidationError{ap + ".name", fmt.Sprintf("duplicate artifact: %q", a.Name)})
			} else {
				names[a.Name] = true
			}
			if a.Type == "" {
				errs = append(errs, ValidationError{ap + ".type", "required"})
			}
			if a.JobGUID != j.JobGUID {
				errs = append(errs, ValidationError{ap + ".job_guid", "does not match job"})
			}
		}
	}
	sortErrors(errs)
	return errs
}

// ValidateResultSets checks a result set collection for structural validity.
func ValidateResultSets(sets treeherder.ResultSetCollection) []ValidationError {
	var errs []ValidationError
	if len(sets) == 0 {
		errs = append(errs, ValidationError{"resultsets", "at least one result set required"})
	}
	for i, rs := range sets {
		prefix := fmt.Sprintf("resultsets[%d]", i)
		if rs.RevisionHash == "" {
			errs = append(errs, ValidationError{prefix + ".revision_hash", "required"})
		}
		if rs.PushTimestamp <= 0 {
			errs = append(errs, ValidationError{prefix + ".push_timestamp", "must be positive"})
		}
		if len(rs.Revisions) == 0 {
			errs = append(errs, ValidationError{prefix + ".revisions", "at least one revision required"})
		}
		for k, rev := range rs.Revisions {
			rp := fmt.Sprintf("%s.revisions[%d]", prefix, k)
			if rev.Revision == "" {
				errs = append(errs, ValidationError{rp + ".revision", "required"})
			}
			if rev.Repository == "" {
				errs = append(errs, ValidationError{rp + ".repository", "required"})
			}
		}
	}
	return errs
}

func validatePlatform(prefix string, p treeherder.Platform) []ValidationError {
	var errs []ValidationError
	if p.OSName == "" {
		errs = append(errs, ValidationError{prefix + ".os_name", "required"})
	}
	if p.Platform == "" {
		errs = append(errs, ValidationError{prefix + ".platform", "required"})
	}
	if p.Architecture == "" {
		errs = append(errs, ValidationError{prefix + ".architecture", "required"})
	}
	return errs
}

// sortErrors orders errors by path so output does not depend on map iteration.
func sortErrors(errs []ValidationError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Path < errs[j].Path
	})
}
