// Package profile loads the built-in job profiles that describe how a run is reported.
package profile

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Profile names the dashboard job a run is reported as.
type Profile struct {
	Name             string            `yaml:"name"`
	Version          int               `yaml:"version"`
	Description      string            `yaml:"description"`
	Author           string            `yaml:"author"`
	Job              Job               `yaml:"job"`
	Platform         Platform          `yaml:"platform"`
	OptionCollection map[string]bool   `yaml:"option_collection"`
	Artifacts        Artifacts         `yaml:"artifacts"`
	Results          map[string]string `yaml:"results"`
}

// Job holds the job's display names and symbols.
type Job struct {
	GroupName   string `yaml:"group_name"`
	GroupSymbol string `yaml:"group_symbol"`
	Name        string `yaml:"name"`
	Symbol      string `yaml:"symbol"`
	Description string `yaml:"description"`
	Reason      string `yaml:"reason"`
	Who         string `yaml:"who"`
}

// Platform is used for both the build and the machine platform.
type Platform struct {
	OSName       string `yaml:"os_name"`
	Platform     string `yaml:"platform"`
	Architecture string `yaml:"architecture"`
}

// Artifacts holds the names of the attached artifacts.
type Artifacts struct {
	Summary string `yaml:"summary"`
	Results string `yaml:"results"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	return p, nil
}

// Parse decodes and checks a profile document.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) check() error {
	var missing []string
	for field, v := range map[string]string{
		"name":              p.Name,
		"job.group_name":    p.Job.GroupName,
		"job.group_symbol":  p.Job.GroupSymbol,
		"job.name":          p.Job.Name,
		"job.symbol":        p.Job.Symbol,
		"artifacts.summary": p.Artifacts.Summary,
		"artifacts.results": p.Artifacts.Results,
	} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(p.OptionCollection) == 0 {
		missing = append(missing, "option_collection")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// ResultString maps a verdict to the dashboard's result string.
// Verdicts without a mapping are reported under their own name.
func (p *Profile) ResultString(verdict string) string {
	if s, ok := p.Results[verdict]; ok && s != "" {
		return s
	}
	return verdict
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Format renders a profile as a short human-readable description.
func Format(p *Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (v%d)\n", p.Name, p.Version)
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(p.Description))
	}
	fmt.Fprintf(&b, "  job:      %s / %s (%s / %s)\n", p.Job.GroupName, p.Job.Name, p.Job.GroupSymbol, p.Job.Symbol)
	fmt.Fprintf(&b, "  platform: %s %s %s\n", p.Platform.OSName, p.Platform.Platform, p.Platform.Architecture)

	opts := make([]string, 0, len(p.OptionCollection))
	for k := range p.OptionCollection {
		opts = append(opts, k)
	}
	sort.Strings(opts)
	fmt.Fprintf(&b, "  options:  %s\n", strings.Join(opts, ", "))
	return b.String()
}
