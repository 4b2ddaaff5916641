package codeql

import (
	"strconv"
	"strings"
)

const callerNotFoundMsg = "Caller function was not found. Make sure you are using the correct tool with the correct args."

// CallerFunction resolves the function that calls fn. The caller_id field
// is first treated as a function_id reference: the table is scanned for the
// row whose id equals it exactly. When no row matches, the id is decoded as
// the secondary "<quote><file>:<line>" form and resolved by line
// containment instead.
//
// fn must carry a caller_id; the root of a caller chain has nothing to
// resolve here.
func (l *Lookup) CallerFunction(treeFile string, fn FunctionRow) (Result[FunctionRow], error) {
	callerID := normalizeID(fn.CallerID)

	var found *FunctionRow
	err := scanTable(treeFile, functionTreeLabel, func(raw string) bool {
		if !strings.Contains(raw, callerID) {
			return true
		}
		fields, ok := l.parse(raw, functionKeys)
		if !ok {
			return true
		}
		row := functionFromFields(fields)
		if normalizeID(row.FunctionID) == callerID {
			found = &row
			return false
		}
		return true
	})
	if err != nil {
		return Result[FunctionRow]{}, err
	}
	if found != nil {
		return Found(*found), nil
	}

	// Fallback: caller_id encoded as file:line. The file part carries the
	// export's leading marker character, dropped to form a real path.
	if file, line, ok := decodeCallerLocation(callerID); ok {
		match, err := l.FunctionByLine(treeFile, file, line)
		if err != nil {
			return Result[FunctionRow]{}, err
		}
		if match != nil {
			return Found(*match), nil
		}
	}

	return NotFound[FunctionRow](callerNotFoundMsg), nil
}

// decodeCallerLocation splits an encoded caller id into its file and line
// parts. The id must contain exactly one colon; the file part loses its
// first character.
func decodeCallerLocation(callerID string) (file string, line int, ok bool) {
	parts := strings.Split(callerID, ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false
	}
	line, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}
	return parts[0][1:], line, true
}
