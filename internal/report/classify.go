package report

import "github.com/dshills/steepleherder/internal/results"

const (
	// minClients is the smallest client count that makes a real multi-party exchange.
	minClients = 2
	// minSessionRuntime is the client runtime, in milliseconds, that must be exceeded.
	minSessionRuntime = 10000
	// maxFailedBlocks is the exclusive limit on failed blocks tolerated as noise.
	maxFailedBlocks = 20
)

// Classify derives the verdict of a run.
// Incomplete run-level data or fewer than two clients yields VerdictBusted;
// otherwise the run succeeds only if every client passed.
func Classify(r *results.Aggregated) Verdict {
	if r == nil || r.TotalFailed == nil || r.TotalPassed == nil || r.SessionRuntime == nil ||
		len(r.Clients) < minClients {
		return VerdictBusted
	}
	for _, c := range r.Clients {
		if !ClientPassed(c) {
			return VerdictTestFailed
		}
	}
	return VerdictSuccess
}

// ClientPassed reports whether one client ran long enough without setup, session
// or cleanup failures and with fewer than 20 failed blocks.
func ClientPassed(c results.Client) bool {
	return c.SessionRuntime > minSessionRuntime &&
		len(c.SetupFailures) == 0 &&
		len(c.CleanupFailures) == 0 &&
		len(c.SessionFailures) == 0 &&
		len(c.FailedBlocks) < maxFailedBlocks
}
