package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/passes"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar ast json path>",
		Short:   "Print a grammar's rules and annotated stack depths in readable form",
		Example: `  pegc describe grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	astJSON, err := readGrammarJSON(grmPath)
	if err != nil {
		return fmt.Errorf("cannot read the grammar AST: %w", err)
	}

	g := &ast.Grammar{}
	if err := json.Unmarshal(astJSON, g); err != nil {
		return fmt.Errorf("cannot parse the grammar AST: %w", err)
	}

	passes.Eliminate(g)
	passes.Annotate(g)

	return writeDescription(os.Stdout, g)
}

func writeDescription(w io.Writer, g *ast.Grammar) error {
	pterm.DefaultHeader.WithFullWidth().Println("Grammar")
	pterm.Println("start rule:", pterm.Bold.Sprint(g.StartRule))
	pterm.Println()

	rows := pterm.TableData{{"rule", "display name", "result depth", "pos depth"}}
	for _, name := range g.Rules.SortedNames() {
		r, _ := g.Rules.Get(name)
		rows = append(rows, []string{
			r.Name,
			r.DisplayName,
			fmt.Sprintf("%d", r.ResultStackDepth),
			fmt.Sprintf("%d", r.PosStackDepth),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(w).Render()
}
