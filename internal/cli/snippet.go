package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/codeql"
)

var (
	snippetFile string
	snippetLine int
	wholeFile   bool
)

// snippetCmd prints the numbered source of the function at --file/--line.
var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Print the line-numbered source of the function at --file/--line",
	Long: `Resolve the function containing the given location, read its source file
from the database's src.zip, and print the function's range with absolute
line numbers. --whole-file prints the entire file instead of slicing to
the function's range.`,
	RunE: runSnippet,
}

func init() {
	snippetCmd.Flags().StringVar(&snippetFile, "file", "", "source file (or trailing fragment)")
	snippetCmd.Flags().IntVar(&snippetLine, "line", 0, "line number inside the function")
	snippetCmd.Flags().BoolVar(&wholeFile, "whole-file", false, "print the whole file, not just the function range")
	snippetCmd.MarkFlagRequired("file")
	snippetCmd.MarkFlagRequired("line")
	rootCmd.AddCommand(snippetCmd)
}

func runSnippet(cmd *cobra.Command, args []string) error {
	lc, err := newLookupContext()
	if err != nil {
		return err
	}

	fn, err := lc.lookup.FunctionByLine(lc.db.FunctionTreePath(), snippetFile, snippetLine)
	if err != nil {
		return err
	}
	if fn == nil {
		fmt.Printf("No function covers %s:%d\n", snippetFile, snippetLine)
		return nil
	}

	extract, err := lc.lookup.ExtractFunctionLines(lc.db, *fn)
	if err != nil {
		return err
	}

	lines := extract.Lines
	start := 1
	if !wholeFile {
		lines = codeql.SliceLines(extract.Lines, extract.StartLine, extract.EndLine)
		start = extract.StartLine
	}
	fmt.Println(codeql.FormatNumberedSnippet(extract.FilePath, start, lines))
	return nil
}
