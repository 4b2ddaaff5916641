package codeql

import (
	"fmt"
	"io"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/zip"
)

// SourceArchive reads source files out of a database's src.zip. Each entry
// is the full text of one source file, keyed by its path after the leading
// marker character is stripped from the table's file field.
type SourceArchive struct {
	path string
}

// Path returns the archive location on disk.
func (a SourceArchive) Path() string { return a.path }

// ReadFile returns the full text of one archive entry.
func (a SourceArchive) ReadFile(name string) (string, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return "", newAccessError(err, sourceArchiveLabel, a.path)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s in %s: %w", name, a.path, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("failed to read %s in %s: %w", name, a.path, err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("file %s not found in source archive %s", name, a.path)
}

// List returns archive entry paths in archive order, optionally filtered by
// a glob pattern. An empty pattern lists everything.
func (a SourceArchive) List(pattern string) ([]string, error) {
	var matcher glob.Glob
	if pattern != "" {
		var err error
		matcher, err = glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	}

	r, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, newAccessError(err, sourceArchiveLabel, a.path)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if matcher != nil && !matcher.Match(f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}
