package report

import (
	"strconv"

	"github.com/dshills/steepleherder/internal/results"
)

// NullValue is the display form of a counter the parser could not determine.
const NullValue = "None"

// BuildSummary dumps the run and per-client counters in a fixed order:
// three run-level lines, then seven lines per client.
func BuildSummary(r *results.Aggregated) Summary {
	if r == nil {
		r = &results.Aggregated{}
	}
	s := make(Summary, 0, 3+7*len(r.Clients))
	add := func(title, value string) {
		s = append(s, Detail{Title: title, Value: value})
	}

	add("Total Failed", optional(r.TotalFailed))
	add("Total Passed", optional(r.TotalPassed))
	add("Session Runtime", optional(r.SessionRuntime))

	for _, c := range r.Clients {
		add(c.Name+" Total Blocks", itoa(c.Blocks))
		add(c.Name+" Failed Blocks", strconv.Itoa(len(c.FailedBlocks)))
		add(c.Name+" Pass Streak", itoa(c.LongestPass))
		add(c.Name+" Session Time", itoa(c.SessionRuntime))
		add(c.Name+" Session Failures", strconv.Itoa(len(c.SessionFailures)))
		add(c.Name+" Setup Failures", strconv.Itoa(len(c.SetupFailures)))
		add(c.Name+" Cleanup Failures", strconv.Itoa(len(c.CleanupFailures)))
	}
	return s
}

func optional(v *int64) string {
	if v == nil {
		return NullValue
	}
	return itoa(*v)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
