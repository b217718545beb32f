package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pegc",
	Short: "Compile a PEG grammar AST into a Go recursive-descent parser",
	Long: `pegc provides three features:
- Compiles a grammar AST (JSON) into a standalone, packrat-memoized Go parser.
- Describes a grammar's rules and annotated stack depths.
- Runs end-to-end grammar-to-parse test cases against a compiled parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
