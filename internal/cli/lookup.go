package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	functionFile string
	functionLine int
	lessStrict   bool
)

// functionCmd resolves a function by name or by file and line.
var functionCmd = &cobra.Command{
	Use:   "function [name]",
	Short: "Resolve a function by name or by --file/--line",
	Long: `Resolve a function record from FunctionTree.csv.

With --file and --line, the function containing that location is returned.
With a name argument, the whole table serves as the known-function set and
the name is matched exactly first, then by substring.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFunction,
}

func init() {
	functionCmd.Flags().StringVar(&functionFile, "file", "", "source file (or trailing fragment)")
	functionCmd.Flags().IntVar(&functionLine, "line", 0, "line number inside the function")
	functionCmd.Flags().BoolVar(&lessStrict, "less-strict", false, "match by substring immediately")
	rootCmd.AddCommand(functionCmd)
}

func runFunction(cmd *cobra.Command, args []string) error {
	lc, err := newLookupContext()
	if err != nil {
		return err
	}
	treeFile := lc.db.FunctionTreePath()

	if functionFile != "" || functionLine != 0 {
		if functionFile == "" || functionLine == 0 {
			return fmt.Errorf("--file and --line must be used together")
		}
		fn, err := lc.lookup.FunctionByLine(treeFile, functionFile, functionLine)
		if err != nil {
			return err
		}
		if fn == nil {
			fmt.Printf("No function covers %s:%d\n", functionFile, functionLine)
			return nil
		}
		return printRecord(fn)
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a function name or --file and --line")
	}

	// One-off CLI queries have no session history, so every table row is a
	// legitimate starting point.
	known, err := lc.lookup.Functions(treeFile)
	if err != nil {
		return err
	}
	result, via, err := lc.lookup.FunctionByName(treeFile, args[0], known, lessStrict)
	if err != nil {
		return err
	}
	if !result.Found() {
		fmt.Println(result.Message())
		return nil
	}
	if verbose && via != nil {
		fmt.Printf("matched via function id %s\n", via.FunctionID)
	}
	return printRecord(result.Record())
}

// macroCmd resolves a macro by name.
var macroCmd = &cobra.Command{
	Use:   "macro <name>",
	Short: "Resolve a macro from Macros.csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLookupContext()
		if err != nil {
			return err
		}
		res, err := lc.lookup.Macro(lc.db, args[0])
		if err != nil {
			return err
		}
		if !res.Found() {
			fmt.Println(res.Message())
			return nil
		}
		return printRecord(res.Record())
	},
}

// globalCmd resolves a global variable by name.
var globalCmd = &cobra.Command{
	Use:   "global <name>",
	Short: "Resolve a global variable from GlobalVars.csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLookupContext()
		if err != nil {
			return err
		}
		res, err := lc.lookup.GlobalVar(lc.db, args[0])
		if err != nil {
			return err
		}
		if !res.Found() {
			fmt.Println(res.Message())
			return nil
		}
		return printRecord(res.Record())
	},
}

// classCmd resolves a class, struct or union by name.
var classCmd = &cobra.Command{
	Use:   "class <name>",
	Short: "Resolve a class, struct or union from Classes.csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLookupContext()
		if err != nil {
			return err
		}
		res, err := lc.lookup.Class(lc.db, args[0])
		if err != nil {
			return err
		}
		if !res.Found() {
			fmt.Println(res.Message())
			return nil
		}
		return printRecord(res.Record())
	},
}

func init() {
	rootCmd.AddCommand(macroCmd)
	rootCmd.AddCommand(globalCmd)
	rootCmd.AddCommand(classCmd)
}
