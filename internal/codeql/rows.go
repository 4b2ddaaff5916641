package codeql

import (
	"fmt"
	"strconv"
)

// RowParser turns one raw table line into a fixed ordered field mapping
// given named keys. A false second return means the row is malformed and
// must be skipped; scanning continues. Field text is kept raw, including
// any literal quote characters.
type RowParser func(raw string, keys []string) (map[string]string, bool)

// Column key lists for each table, in the order the exports write them.
var (
	functionKeys  = []string{"function_name", "file", "start_line", "function_id", "end_line", "caller_id"}
	macroKeys     = []string{"macro_name", "body"}
	globalVarKeys = []string{"global_var_name", "file", "start_line", "end_line"}
	classKeys     = []string{"type", "class_name", "file", "start_line", "end_line", "simple_name"}
)

// FunctionRow is one FunctionTree.csv record. Fields hold the raw table
// text; quote stripping happens only at comparison sites.
type FunctionRow struct {
	Name       string `json:"function_name"`
	File       string `json:"file"`
	StartLine  string `json:"start_line"`
	FunctionID string `json:"function_id"`
	EndLine    string `json:"end_line"`
	CallerID   string `json:"caller_id"`
}

// LineRange parses the row's start and end line numbers.
func (r FunctionRow) LineRange() (start, end int, err error) {
	start, err = strconv.Atoi(StripQuotes(r.StartLine))
	if err != nil {
		return 0, 0, fmt.Errorf("bad start_line %q: %w", r.StartLine, err)
	}
	end, err = strconv.Atoi(StripQuotes(r.EndLine))
	if err != nil {
		return 0, 0, fmt.Errorf("bad end_line %q: %w", r.EndLine, err)
	}
	return start, end, nil
}

// MacroRow is one Macros.csv record.
type MacroRow struct {
	Name string `json:"macro_name"`
	Body string `json:"body"`
}

// GlobalVarRow is one GlobalVars.csv record.
type GlobalVarRow struct {
	Name      string `json:"global_var_name"`
	File      string `json:"file"`
	StartLine string `json:"start_line"`
	EndLine   string `json:"end_line"`
}

// ClassRow is one Classes.csv record.
type ClassRow struct {
	Type       string `json:"type"`
	Name       string `json:"class_name"`
	File       string `json:"file"`
	StartLine  string `json:"start_line"`
	EndLine    string `json:"end_line"`
	SimpleName string `json:"simple_name"`
}

func functionFromFields(m map[string]string) FunctionRow {
	return FunctionRow{
		Name:       m["function_name"],
		File:       m["file"],
		StartLine:  m["start_line"],
		FunctionID: m["function_id"],
		EndLine:    m["end_line"],
		CallerID:   m["caller_id"],
	}
}

func macroFromFields(m map[string]string) MacroRow {
	return MacroRow{Name: m["macro_name"], Body: m["body"]}
}

func globalVarFromFields(m map[string]string) GlobalVarRow {
	return GlobalVarRow{
		Name:      m["global_var_name"],
		File:      m["file"],
		StartLine: m["start_line"],
		EndLine:   m["end_line"],
	}
}

func classFromFields(m map[string]string) ClassRow {
	return ClassRow{
		Type:       m["type"],
		Name:       m["class_name"],
		File:       m["file"],
		StartLine:  m["start_line"],
		EndLine:    m["end_line"],
		SimpleName: m["simple_name"],
	}
}
