package report

import "strings"

// Verdict is the overall outcome of an endurance run.
type Verdict string

const (
	// VerdictBusted means the harness did not produce a usable multi-client result.
	VerdictBusted     Verdict = "busted"
	VerdictSuccess    Verdict = "success"
	VerdictTestFailed Verdict = "testfailed"
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictBusted, VerdictSuccess, VerdictTestFailed:
		return true
	}
	return false
}

// ParseVerdict accepts a verdict name case-insensitively.
func ParseVerdict(s string) (Verdict, bool) {
	v := Verdict(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}
