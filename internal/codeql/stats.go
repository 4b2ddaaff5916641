package codeql

// TableStats counts the rows of one table by parse outcome.
type TableStats struct {
	Rows      int `json:"rows"`
	Malformed int `json:"malformed"`
}

// tableSpec pairs a table path with its label and key list for validation.
type tableSpec struct {
	name  string
	path  string
	label string
	keys  []string
}

func (d Database) tables() []tableSpec {
	return []tableSpec{
		{functionTreeFile, d.FunctionTreePath(), functionTreeLabel, functionKeys},
		{macrosFile, d.MacrosPath(), macrosLabel, macroKeys},
		{globalVarsFile, d.GlobalVarsPath(), globalVarsLabel, globalVarKeys},
		{classesFile, d.ClassesPath(), classesLabel, classKeys},
	}
}

// TableNames returns the table file names in validation order.
func (d Database) TableNames() []string {
	specs := d.tables()
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.name
	}
	return names
}

// Stats scans every table once and reports row counts keyed by table file
// name. Malformed rows are counted, not surfaced, matching the lookups'
// skip-and-continue behavior. progress, if non-nil, is called with each
// table's file name as its scan completes.
func (l *Lookup) Stats(db Database, progress func(table string)) (map[string]TableStats, error) {
	out := make(map[string]TableStats, 4)
	for _, spec := range db.tables() {
		var stats TableStats
		err := scanTable(spec.path, spec.label, func(raw string) bool {
			if _, ok := l.parse(raw, spec.keys); ok {
				stats.Rows++
			} else {
				stats.Malformed++
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		out[spec.name] = stats
		if progress != nil {
			progress(spec.name)
		}
	}
	return out, nil
}
