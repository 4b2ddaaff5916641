// Package codeql resolves symbols and extracts source text from the flat
// CSV exports and src.zip archive that a CodeQL database directory carries.
//
// All lookups are full linear scans over the table files. Nothing is cached
// between calls and no call mutates shared state, so concurrent lookups over
// the same database are safe. The first row in file order that satisfies the
// active predicate always wins.
package codeql

import "path/filepath"

// Table file names inside a database directory. These are fixed by the
// export convention, not configurable.
const (
	functionTreeFile = "FunctionTree.csv"
	macrosFile       = "Macros.csv"
	globalVarsFile   = "GlobalVars.csv"
	classesFile      = "Classes.csv"
	sourceArchive    = "src.zip"
)

// Descriptive labels used in access errors so diagnostics read the same
// regardless of which table failed.
const (
	functionTreeLabel  = "Function tree file"
	macrosLabel        = "Macros CSV"
	globalVarsLabel    = "GlobalVars CSV"
	classesLabel       = "Classes CSV"
	sourceArchiveLabel = "Source archive"
)

// Database locates the table files and source archive of one analyzed
// database directory. It is a plain value; it opens nothing itself.
type Database struct {
	dir string
}

// NewDatabase returns a Database rooted at dir.
func NewDatabase(dir string) Database {
	return Database{dir: dir}
}

// Dir returns the database directory.
func (d Database) Dir() string { return d.dir }

// FunctionTreePath returns the path to FunctionTree.csv.
func (d Database) FunctionTreePath() string { return filepath.Join(d.dir, functionTreeFile) }

// MacrosPath returns the path to Macros.csv.
func (d Database) MacrosPath() string { return filepath.Join(d.dir, macrosFile) }

// GlobalVarsPath returns the path to GlobalVars.csv.
func (d Database) GlobalVarsPath() string { return filepath.Join(d.dir, globalVarsFile) }

// ClassesPath returns the path to Classes.csv.
func (d Database) ClassesPath() string { return filepath.Join(d.dir, classesFile) }

// SourceArchivePath returns the path to the src.zip source archive.
func (d Database) SourceArchivePath() string { return filepath.Join(d.dir, sourceArchive) }

// SourceArchive returns a reader over the database's src.zip.
func (d Database) SourceArchive() SourceArchive {
	return SourceArchive{path: d.SourceArchivePath()}
}
