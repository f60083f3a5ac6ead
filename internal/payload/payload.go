// Package payload writes the collections of a submission to disk.
package payload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/steepleherder/internal/render"
	"github.com/dshills/steepleherder/internal/treeherder"
)

const (
	ResultSetFile = "resultset.json"
	JobsFile      = "jobs.json"
)

// WriteFiles writes both collections into dir as sorted, indented JSON.
// If dir is empty, nothing is written.
func WriteFiles(dir string, sets treeherder.ResultSetCollection, jobs treeherder.JobCollection) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("payload.WriteFiles: %w", err)
	}
	for _, f := range []struct {
		name string
		v    any
	}{
		{ResultSetFile, sets},
		{JobsFile, jobs},
	} {
		out, err := render.JSON(f.v)
		if err != nil {
			return fmt.Errorf("payload.WriteFiles: %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(out+"\n"), 0644); err != nil {
			return fmt.Errorf("payload.WriteFiles: %w", err)
		}
	}
	return nil
}
