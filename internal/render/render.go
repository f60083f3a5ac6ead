// Package render produces Markdown and JSON output for a classified run.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/steepleherder/internal/report"
)

// Classification is what the classify command reports for one results file.
type Classification struct {
	File    string         `json:"file"`
	Hash    string         `json:"hash"`
	Verdict report.Verdict `json:"verdict"`
	Summary report.Summary `json:"summary,omitempty"`
}

var title = cases.Title(language.English)

// Markdown renders a classification as a Markdown report.
func Markdown(c *Classification) string {
	var b strings.Builder

	b.WriteString("# Steeplechase Endurance Results\n\n")
	fmt.Fprintf(&b, "**Verdict:** %s\n", title.String(string(c.Verdict)))
	if c.File != "" {
		fmt.Fprintf(&b, "**Results:** %s\n", c.File)
	}
	b.WriteString("\n")

	if c.Verdict == report.VerdictBusted {
		b.WriteString("The harness did not produce a complete multi-client run; no summary is available.\n")
		return b.String()
	}

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|---|\n")
	for _, d := range c.Summary {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(d.Title), escapeCell(d.Value))
	}
	b.WriteString("\n")
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// JSON renders v with sorted object keys and four-space indentation.
func JSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("render.JSON: %w", err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("render.JSON: %w", err)
	}
	out, err := json.MarshalIndent(generic, "", "    ")
	if err != nil {
		return "", fmt.Errorf("render.JSON: %w", err)
	}
	return string(out), nil
}
