package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/compile"
)

var buildFlags = struct {
	startRules  *[]string
	selfParsing *bool
	output      *string
	cacheDir    *string
	watch       *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build <grammar ast json path>",
		Short:   "Compile a grammar AST into a Go parser, optionally watching for changes",
		Example: `  pegc build grammar.json -o parser.go --watch`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBuild,
	}
	buildFlags.startRules = cmd.Flags().StringArray("start-rule", nil, "expose this rule as a parse entry point (repeatable; default: every rule)")
	buildFlags.selfParsing = cmd.Flags().Bool("self-parsing", false, "omit the generated quote/escape/padLeft helpers")
	buildFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	buildFlags.cacheDir = cmd.Flags().String("cache-dir", "", "build-cache directory")
	buildFlags.watch = cmd.Flags().Bool("watch", false, "re-run the build whenever the grammar file changes")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	grmPath := args[0]
	opts := compile.Options{
		StartRules:  *buildFlags.startRules,
		SelfParsing: *buildFlags.selfParsing,
	}

	buildOnce := func() error {
		astJSON, err := readGrammarJSON(grmPath)
		if err != nil {
			return fmt.Errorf("cannot read the grammar AST: %w", err)
		}
		g := &ast.Grammar{}
		if err := json.Unmarshal(astJSON, g); err != nil {
			return fmt.Errorf("cannot parse the grammar AST: %w", err)
		}
		src, err := compileWithCache(astJSON, g, opts, *buildFlags.cacheDir)
		if err != nil {
			return err
		}
		return writeOutput(src, *buildFlags.output)
	}

	if err := buildOnce(); err != nil {
		return err
	}
	if !*buildFlags.watch {
		return nil
	}

	return watchAndRebuild(grmPath, buildOnce)
}

// watchAndRebuild re-runs build whenever grmPath changes, the way a
// development-mode file watcher commonly wraps a one-shot build step; it
// blocks until the watcher's event channel closes or an unrecoverable
// watcher error occurs.
func watchAndRebuild(grmPath string, build func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start the file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(grmPath); err != nil {
		return fmt.Errorf("cannot watch %s: %w", grmPath, err)
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", grmPath)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := build(); err != nil {
				fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "rebuilt %s\n", grmPath)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
