package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/compile"
	"github.com/nihei9/pegc/scenario"
)

// testFile is the on-disk shape of a `pegc test` input: one grammar, the
// compile options to build it with, and the cases to run against the
// result, mirroring the teacher's directory-of-test-case-files idea
// (tester.ListTestCases) collapsed into one JSON document since this
// compiler's cases are scenario descriptions, not source/expected-tree
// file pairs.
type testFile struct {
	Name    string      `json:"name"`
	Grammar ast.Grammar `json:"grammar"`
	Options struct {
		StartRules  []string `json:"startRules"`
		SelfParsing bool     `json:"selfParsing"`
	} `json:"options"`
	Cases []struct {
		Name      string      `json:"name"`
		Input     string      `json:"input"`
		StartRule string      `json:"startRule"`
		WantValue interface{} `json:"wantValue"`
		WantErr   *struct {
			Line             int    `json:"line"`
			Column           int    `json:"column"`
			MessageSubstring string `json:"messageSubstring"`
		} `json:"wantErr"`
	} `json:"cases"`
}

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>...",
		Short:   "Run end-to-end grammar-to-parse test cases",
		Example: `  pegc test scenario.json`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	scenarios := make([]scenario.Scenario, 0, len(args))
	for _, path := range args {
		tf, err := readTestFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		scenarios = append(scenarios, tf)
	}

	results, err := scenario.Run(context.Background(), scenarios)
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(os.Stdout, "FAIL %s/%s: %v\n", r.Scenario, r.Case, r.Err)
		} else {
			fmt.Fprintf(os.Stdout, "ok   %s/%s\n", r.Scenario, r.Case)
		}
	}
	if failed {
		return errors.New("test failed")
	}
	return nil
}

func readTestFile(path string) (scenario.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return scenario.Scenario{}, err
	}

	var tf testFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return scenario.Scenario{}, err
	}

	sc := scenario.Scenario{
		Name:    tf.Name,
		Grammar: &tf.Grammar,
		Options: compile.Options{
			StartRules:  tf.Options.StartRules,
			SelfParsing: tf.Options.SelfParsing,
		},
	}
	for _, c := range tf.Cases {
		sc.Cases = append(sc.Cases, scenario.Case{
			Name:      c.Name,
			Input:     c.Input,
			StartRule: c.StartRule,
			WantValue: c.WantValue,
			WantErr: func() *scenario.ExpectedError {
				if c.WantErr == nil {
					return nil
				}
				return &scenario.ExpectedError{
					Line:             c.WantErr.Line,
					Column:           c.WantErr.Column,
					MessageSubstring: c.WantErr.MessageSubstring,
				}
			}(),
		})
	}
	return sc, nil
}
