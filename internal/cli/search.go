package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/codeql"
	"github.com/quarrylabs/quarry/internal/search"
)

var searchLimit int

// searchCmd fuzzy-searches function names.
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Fuzzy-search function names in FunctionTree.csv",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	lc, err := newLookupContext()
	if err != nil {
		return err
	}

	rows, err := lc.lookup.Functions(lc.db.FunctionTreePath())
	if err != nil {
		return err
	}

	index, err := search.NewIndex(ctx, rows, lc.cfg.Search.Fuzziness)
	if err != nil {
		return err
	}
	defer index.Close()

	limit := searchLimit
	if limit <= 0 {
		limit = lc.cfg.Search.MaxResults
	}
	matches, err := index.Search(ctx, args[0], limit)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Printf("No functions match '%s'\n", args[0])
		return nil
	}
	for _, m := range matches {
		name := codeql.SimpleName(codeql.StripQuotes(m.Row.Name))
		file := codeql.StripQuotes(m.Row.File)
		fmt.Printf("%-40s %s:%s-%s (score %.3f)\n", name, file, codeql.StripQuotes(m.Row.StartLine), codeql.StripQuotes(m.Row.EndLine), m.Score)
	}
	return nil
}
