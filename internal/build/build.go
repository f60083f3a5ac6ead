// Package build locates the Firefox build under test and derives its identifiers.
package build

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrNoFiles is returned when no build archives match.
var ErrNoFiles = errors.New("no build files found")

const (
	autPattern   = "firefox*bz2"
	testsPattern = "firefox*zip"
)

// Files is the ordered list of build archives: application first, then tests.
type Files []string

// Find globs the application archives in autDir followed by the test archives in testsDir.
func Find(autDir, testsDir string) (Files, error) {
	var files Files
	for _, pattern := range []string{
		filepath.Join(autDir, autPattern),
		filepath.Join(testsDir, testsPattern),
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("build.Find: %w", err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("build.Find: %s, %s: %w", autDir, testsDir, ErrNoFiles)
	}
	return files, nil
}

// Basenames returns the file names without their directories.
func (f Files) Basenames() []string {
	names := make([]string, 0, len(f))
	for _, p := range f {
		names = append(names, filepath.Base(p))
	}
	return names
}

// Version strips the last two dot-separated parts (the archive extensions) from a file name.
//
//	firefox-30.0a1.en-US.linux-x86_64.tar.bz2 -> firefox-30.0a1.en-US.linux-x86_64
func Version(filename string) string {
	parts := strings.Split(filename, ".")
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], ".")
}

// PushTime returns the modification time of a build file in unix seconds.
func PushTime(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("build.PushTime: %w", err)
	}
	return fi.ModTime().Unix(), nil
}

// RevisionHash returns a random 40 character hex identifier for a result set.
func RevisionHash() string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(uuid.NewString())))
}

// JobGUID returns a random job identifier.
func JobGUID() string {
	return uuid.NewString()
}
