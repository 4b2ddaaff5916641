package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quarrylabs/quarry/internal/codeql"
	"github.com/quarrylabs/quarry/internal/config"
	"github.com/quarrylabs/quarry/internal/rowcsv"
)

// lookupContext bundles what every lookup command needs.
type lookupContext struct {
	cfg    *config.Config
	db     codeql.Database
	lookup *codeql.Lookup
}

// newLookupContext loads config and wires the lookup with the standard row
// parser.
func newLookupContext() (*lookupContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return &lookupContext{
		cfg:    cfg,
		db:     codeql.NewDatabase(cfg.Database.Path),
		lookup: codeql.NewLookup(rowcsv.Parse),
	}, nil
}

// printRecord writes a record as indented JSON to stdout.
func printRecord(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}
