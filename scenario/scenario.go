// Package scenario runs the end-to-end grammar-to-parse scenarios of spec
// §8 against a real compiled parser: compile the grammar, drop the
// generated source into a throwaway module together with a tiny harness
// program, `go run` it once per case, and compare what the harness prints
// against the case's expectation. It plays the role the teacher's
// tester.Tester played for vartan's own grammar-to-parser-table pipeline,
// generalized from "run the generated LALR tables" to "run the generated
// recursive-descent parser".
package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/compile"
)

// ExpectedError describes a case's expected *parser.SyntaxError. A zero
// value for Line/Column means "don't check this field".
type ExpectedError struct {
	Line             int
	Column           int
	MessageSubstring string
}

// Case is one scenario input/expectation pair (spec §8 end-to-end
// scenarios a-f), e.g. a's two cases: `"hello"` succeeds, `"hell"` fails
// with a SyntaxError at line 1 column 1 mentioning `"hello"`.
type Case struct {
	Name      string
	Input     string
	StartRule string

	// WantValue, when WantErr is nil, is the JSON-decoded value the
	// harness's successful parse must deep-equal.
	WantValue interface{}
	WantErr   *ExpectedError
}

// Scenario is one named grammar and the cases to run against its compiled
// parser.
type Scenario struct {
	Name    string
	Grammar *ast.Grammar
	Options compile.Options
	Cases   []Case
}

// Result is one case's outcome.
type Result struct {
	Scenario string
	Case     string
	Err      error // non-nil means the case failed (mismatch or build/run error)
}

// harnessMain is the generated program that drives the compiled parser for
// exactly one case, reading its input on stdin and printing a one-line JSON
// {"value":...,"err":{"message":...,"line":...,"column":...}} record to
// stdout. Keeping the harness tiny and data-driven means one temp module
// serves every case in a scenario; each case is its own `go run`.
const harnessMain = `package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	parser "pegcscenario/parser"
)

type outcome struct {
	Value interface{} ` + "`json:\"value,omitempty\"`" + `
	Err   *errOut     ` + "`json:\"err,omitempty\"`" + `
}

type errOut struct {
	Message string ` + "`json:\"message\"`" + `
	Line    int    ` + "`json:\"line\"`" + `
	Column  int    ` + "`json:\"column\"`" + `
}

func main() {
	input, _ := io.ReadAll(bufio.NewReader(os.Stdin))
	startRule := os.Getenv("PEGC_START_RULE")
	v, err := parser.Parse(string(input), startRule)
	var out outcome
	if err != nil {
		se, _ := err.(*parser.SyntaxError)
		if se != nil {
			out.Err = &errOut{Message: se.Message, Line: se.Line, Column: se.Column}
		} else {
			out.Err = &errOut{Message: err.Error()}
		}
	} else {
		out.Value = v
	}
	json.NewEncoder(os.Stdout).Encode(out)
}
`

const harnessGoMod = `module pegcscenario

go 1.21

require github.com/cespare/xxhash/v2 v2.3.0
`

// Run compiles every scenario's grammar once, then runs its cases
// concurrently via an errgroup (SPEC_FULL §6/§9). A failing case does not
// cancel the others: each case's error is recorded in its own Result, and
// only a cancelled ctx stops the cases still running.
func Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	var results []Result
	for _, sc := range scenarios {
		r, err := runScenario(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		results = append(results, r...)
	}
	return results, nil
}

func runScenario(ctx context.Context, sc Scenario) ([]Result, error) {
	src, err := compile.Compile(sc.Grammar, sc.Options)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	dir, err := os.MkdirTemp("", "pegc-scenario-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(harnessGoMod), 0o644); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, "parser"), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "parser", "parser.go"), []byte(src), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(harnessMain), 0o644); err != nil {
		return nil, err
	}

	results := make([]Result, len(sc.Cases))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range sc.Cases {
		i, c := i, c
		g.Go(func() error {
			results[i] = Result{Scenario: sc.Name, Case: c.Name, Err: runCase(gctx, dir, c)}
			return nil
		})
	}
	_ = g.Wait() // per-case errors are carried in results, not propagated
	return results, nil
}

func runCase(ctx context.Context, dir string, c Case) error {
	cmd := exec.CommandContext(ctx, "go", "run", "-mod=mod", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PEGC_START_RULE="+c.StartRule)
	cmd.Stdin = bytes.NewBufferString(c.Input)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go run: %w (stderr: %s)", err, stderr.String())
	}

	var out struct {
		Value interface{} `json:"value,omitempty"`
		Err   *struct {
			Message string `json:"message"`
			Line    int    `json:"line"`
			Column  int    `json:"column"`
		} `json:"err,omitempty"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return fmt.Errorf("decode harness output %q: %w", stdout.String(), err)
	}

	if c.WantErr != nil {
		if out.Err == nil {
			return fmt.Errorf("want SyntaxError, got success with value %v", out.Value)
		}
		if c.WantErr.Line != 0 && out.Err.Line != c.WantErr.Line {
			return fmt.Errorf("error line = %d, want %d", out.Err.Line, c.WantErr.Line)
		}
		if c.WantErr.Column != 0 && out.Err.Column != c.WantErr.Column {
			return fmt.Errorf("error column = %d, want %d", out.Err.Column, c.WantErr.Column)
		}
		if c.WantErr.MessageSubstring != "" && !strings.Contains(out.Err.Message, c.WantErr.MessageSubstring) {
			return fmt.Errorf("error message %q does not contain %q", out.Err.Message, c.WantErr.MessageSubstring)
		}
		return nil
	}

	if out.Err != nil {
		return fmt.Errorf("want success, got SyntaxError: %s", out.Err.Message)
	}
	if c.WantValue != nil {
		if diff := cmp.Diff(c.WantValue, out.Value); diff != "" {
			return fmt.Errorf("value mismatch (-want +got):\n%s", diff)
		}
	}
	return nil
}
