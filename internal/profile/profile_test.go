package profile

import (
	"strings"
	"testing"
)

func TestLoadBuiltinAll(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("no built-in profiles")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", name, err)
			}
			if p.Name != name {
				t.Errorf("profile name = %q, want %q", p.Name, name)
			}
			for _, v := range []string{"busted", "success", "testfailed"} {
				if p.ResultString(v) == "" {
					t.Errorf("no result string for %s", v)
				}
			}
		})
	}
}

func TestLoadBuiltinEndurance(t *testing.T) {
	p, err := LoadBuiltin("endurance")
	if err != nil {
		t.Fatal(err)
	}
	if p.Job.GroupName != "WebRTC QA Tests" || p.Job.GroupSymbol != "WebRTC" {
		t.Errorf("unexpected group: %+v", p.Job)
	}
	if p.Job.Name != "Endurance" || p.Job.Symbol != "end" {
		t.Errorf("unexpected job: %+v", p.Job)
	}
	if p.Author != "Firefox Nightly" {
		t.Errorf("author = %q", p.Author)
	}
	if !p.OptionCollection["opt"] {
		t.Error("expected opt option")
	}
	if p.Artifacts.Summary != "Job Info" || p.Artifacts.Results != "Results" {
		t.Errorf("unexpected artifacts: %+v", p.Artifacts)
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	_, err := LoadBuiltin("nonexistent")
	if err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestParseMissingFields(t *testing.T) {
	_, err := Parse([]byte("name: x\njob:\n  name: Endurance\n"))
	if err == nil {
		t.Fatal("expected error for incomplete profile")
	}
	for _, field := range []string{"job.group_name", "job.symbol", "artifacts.summary", "option_collection"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s: %v", field, err)
		}
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("name: [unclosed")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestResultStringFallback(t *testing.T) {
	p := &Profile{Results: map[string]string{"busted": "exception", "success": ""}}
	if got := p.ResultString("busted"); got != "exception" {
		t.Errorf("ResultString(busted) = %q", got)
	}
	if got := p.ResultString("success"); got != "success" {
		t.Errorf("ResultString(success) = %q", got)
	}
	if got := p.ResultString("testfailed"); got != "testfailed" {
		t.Errorf("ResultString(testfailed) = %q", got)
	}
}

func TestFormat(t *testing.T) {
	p, err := LoadBuiltin("endurance")
	if err != nil {
		t.Fatal(err)
	}
	out := Format(p)
	for _, want := range []string{"endurance (v1)", "WebRTC QA Tests / Endurance", "linux linux64 x86_64", "options:  opt"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}
