package codeql

import (
	"errors"
	"fmt"
	"io/fs"
)

// AccessKind classifies why a table file or archive could not be read.
type AccessKind int

const (
	// AccessMissing means the file does not exist.
	AccessMissing AccessKind = iota
	// AccessPermission means the file exists but could not be opened.
	AccessPermission
	// AccessOther covers any other OS-level read failure.
	AccessOther
)

// AccessError reports an I/O-level failure while reading a database file.
// It carries the descriptive file-type label and the path so every table
// produces uniform diagnostics. Logical "not found" lookup misses are never
// AccessErrors; they are returned as Result values.
type AccessError struct {
	Kind  AccessKind
	Label string
	Path  string
	Err   error
}

func (e *AccessError) Error() string {
	switch e.Kind {
	case AccessMissing:
		return fmt.Sprintf("%s not found: %s", e.Label, e.Path)
	case AccessPermission:
		return fmt.Sprintf("Permission denied reading %s: %s", e.Label, e.Path)
	default:
		return fmt.Sprintf("OS error while reading %s: %s", e.Label, e.Path)
	}
}

func (e *AccessError) Unwrap() error { return e.Err }

// newAccessError converts an OS error into an AccessError for the given
// file-type label and path.
func newAccessError(err error, label, path string) *AccessError {
	kind := AccessOther
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = AccessMissing
	case errors.Is(err, fs.ErrPermission):
		kind = AccessPermission
	}
	return &AccessError{Kind: kind, Label: label, Path: path, Err: err}
}
