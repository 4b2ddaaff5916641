package codeql

import (
	"fmt"
	"strings"
)

// Lookup resolves symbols against a database's table files. Every call is
// an isolated linear scan; Lookup itself holds only the row parser and is
// safe for concurrent use.
type Lookup struct {
	parse RowParser
}

// NewLookup returns a Lookup that reads rows through parse.
func NewLookup(parse RowParser) *Lookup {
	return &Lookup{parse: parse}
}

// FunctionByLine returns the first function row whose file field contains
// file and whose [start_line, end_line] range contains line. This lookup is
// containment-based, so there is no fallback pass. A nil row with nil error
// means no function covers that location.
func (l *Lookup) FunctionByLine(treeFile, file string, line int) (*FunctionRow, error) {
	var match *FunctionRow
	err := scanTable(treeFile, functionTreeLabel, func(raw string) bool {
		if !strings.Contains(raw, file) {
			return true
		}
		fields, ok := l.parse(raw, functionKeys)
		if !ok {
			return true
		}
		row := functionFromFields(fields)
		start, end, err := row.LineRange()
		if err != nil {
			// Unparsable range, treat as malformed and keep scanning.
			return true
		}
		if start <= line && line <= end {
			match = &row
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// FunctionByName resolves name against the function table, restricted to
// rows that reference one of the already-known functions by id. For each
// known function, the whole table is rescanned; the known function that led
// to the match is returned alongside it so the caller can reconstruct the
// relationship.
//
// With lessStrict false the strict pass (exact name equality) runs first
// and a substring pass follows only on a miss. Passing lessStrict true
// requests the substring pass directly, so at most two passes ever happen.
func (l *Lookup) FunctionByName(treeFile, name string, known []FunctionRow, lessStrict bool) (Result[FunctionRow], *FunctionRow, error) {
	target := SimpleName(name)

	passes := []bool{false, true}
	if lessStrict {
		passes = []bool{true}
	}
	for _, relaxed := range passes {
		for i := range known {
			var found *FunctionRow
			err := scanTable(treeFile, functionTreeLabel, func(raw string) bool {
				if !strings.Contains(raw, known[i].FunctionID) {
					return true
				}
				fields, ok := l.parse(raw, functionKeys)
				if !ok {
					return true
				}
				row := functionFromFields(fields)
				candidate := StripQuotes(row.Name)
				if candidate == target || (relaxed && strings.Contains(candidate, target)) {
					found = &row
					return false
				}
				return true
			})
			if err != nil {
				return Result[FunctionRow]{}, nil, err
			}
			if found != nil {
				return Found(*found), &known[i], nil
			}
		}
	}

	msg := fmt.Sprintf("Function '%s' not found. Make sure you're using the correct tool and args.", name)
	return NotFound[FunctionRow](msg), nil, nil
}

// Macro resolves a macro by name from Macros.csv.
func (l *Lookup) Macro(db Database, name string) (Result[MacroRow], error) {
	msg := fmt.Sprintf("Macro '%s' not found. Make sure you're using the correct tool with correct args.", name)
	return resolveByName(l, db.MacrosPath(), macrosLabel, name, macroKeys, macroFromFields,
		func(r MacroRow) []string { return []string{r.Name} }, msg)
}

// GlobalVar resolves a global variable by name from GlobalVars.csv.
func (l *Lookup) GlobalVar(db Database, name string) (Result[GlobalVarRow], error) {
	msg := fmt.Sprintf("Global var '%s' not found. Could it be a macro or should you use another tool?", name)
	return resolveByName(l, db.GlobalVarsPath(), globalVarsLabel, name, globalVarKeys, globalVarFromFields,
		func(r GlobalVarRow) []string { return []string{r.Name} }, msg)
}

// Class resolves a class, struct or union by name from Classes.csv. Both
// the fully qualified class name and the simple name are matched on both
// passes.
func (l *Lookup) Class(db Database, name string) (Result[ClassRow], error) {
	msg := fmt.Sprintf("Class '%s' not found. Could it be a Namespace?", name)
	return resolveByName(l, db.ClassesPath(), classesLabel, name, classKeys, classFromFields,
		func(r ClassRow) []string { return []string{r.Name, r.SimpleName} }, msg)
}

// resolveByName is the shared two-phase name resolution protocol. The
// strict pass requires the quote-stripped candidate name to equal the
// namespace-stripped search term exactly; the fallback pass, run only after
// a strict miss, also accepts the term as a substring. Row order in the
// table decides ties: the first satisfying row wins and later duplicates
// are never considered.
func resolveByName[T any](
	l *Lookup,
	path, label, name string,
	keys []string,
	fromFields func(map[string]string) T,
	candidateNames func(T) []string,
	notFoundMsg string,
) (Result[T], error) {
	target := SimpleName(name)

	for _, relaxed := range []bool{false, true} {
		var found *T
		err := scanTable(path, label, func(raw string) bool {
			// Cheap raw-text pre-filter before parsing the row.
			if !strings.Contains(raw, target) {
				return true
			}
			fields, ok := l.parse(raw, keys)
			if !ok {
				return true
			}
			row := fromFields(fields)
			for _, candidate := range candidateNames(row) {
				candidate = StripQuotes(candidate)
				if candidate == target || (relaxed && strings.Contains(candidate, target)) {
					found = &row
					return false
				}
			}
			return true
		})
		if err != nil {
			return Result[T]{}, err
		}
		if found != nil {
			return Found(*found), nil
		}
	}

	return NotFound[T](notFoundMsg), nil
}

// Functions collects every well-formed row of the function table in file
// order. Malformed rows are skipped. This serves the search index, the
// call-graph builder and database validation; the resolvers themselves
// always rescan the file.
func (l *Lookup) Functions(treeFile string) ([]FunctionRow, error) {
	var rows []FunctionRow
	err := scanTable(treeFile, functionTreeLabel, func(raw string) bool {
		fields, ok := l.parse(raw, functionKeys)
		if !ok {
			return true
		}
		rows = append(rows, functionFromFields(fields))
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
