package codeql

import (
	"fmt"
	"strings"
)

// Extract is the raw material for a code snippet: the resolved source path
// inside the archive, the function's line range, and the full line sequence
// of the file. Lines are deliberately not pre-sliced to the range; slicing
// is the caller's responsibility (see SliceLines).
type Extract struct {
	FilePath  string
	StartLine int
	EndLine   int
	Lines     []string
}

// ExtractFunctionLines reads the source file containing fn from the
// database's src.zip. The function's file field is quote-stripped and loses
// its leading marker character to form the archive entry path; the entry is
// split into lines on line-feed boundaries.
func (l *Lookup) ExtractFunctionLines(db Database, fn FunctionRow) (Extract, error) {
	filePath := StripQuotes(fn.File)
	if filePath == "" {
		return Extract{}, fmt.Errorf("function %s has no source file", StripQuotes(fn.Name))
	}
	filePath = filePath[1:]

	content, err := db.SourceArchive().ReadFile(filePath)
	if err != nil {
		return Extract{}, err
	}

	start, end, err := fn.LineRange()
	if err != nil {
		return Extract{}, fmt.Errorf("function %s: %w", StripQuotes(fn.Name), err)
	}

	return Extract{
		FilePath:  filePath,
		StartLine: start,
		EndLine:   end,
		Lines:     strings.Split(content, "\n"),
	}, nil
}

// SliceLines cuts whole-file lines down to the inclusive 1-based range
// [start, end], clamped to the file's bounds. This is the slicing step the
// extract contract leaves to the caller.
func SliceLines(lines []string, start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return nil
	}
	return lines[start-1 : end]
}

// FormatNumberedSnippet renders lines prefixed with absolute line numbers
// counted from startLine, under a "file:" header. Pure formatting, no I/O.
func FormatNumberedSnippet(filePath string, startLine int, snippetLines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "file: %s", filePath)
	for i, text := range snippetLines {
		fmt.Fprintf(&b, "\n%d: %s", startLine+i, text)
	}
	return b.String()
}
