// Package pegerr defines the compiler-side error kinds from spec §7:
// TemplateError, NoStartRule (whose message carries a "did you mean"
// suggestion), and a CompileError that aggregates several errors into one.
// It is the error-handling analogue of the
// teacher's error/error.go, which wraps a Cause with a source Row.
package pegerr

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// TemplateError is raised by the template formatter (spec §4.4) for an
// undefined variable or an unknown filter. It is always a compiler bug:
// a template string was written referencing a name the caller never
// supplied.
type TemplateError struct {
	Template string
	Name     string
	Filter   string
}

func (e *TemplateError) Error() string {
	if e.Filter != "" {
		return fmt.Sprintf("template: unknown filter %q for variable %q in %q", e.Filter, e.Name, e.Template)
	}
	return fmt.Sprintf("template: undefined variable %q in %q", e.Name, e.Template)
}

// NoStartRule is raised when Options.StartRules (spec §6.1) is non-empty
// but names no rule present in the grammar.
type NoStartRule struct {
	Requested []string
	Known     []string
}

func (e *NoStartRule) Error() string {
	msg := fmt.Sprintf("no requested start rule exists in the grammar: %v", e.Requested)
	if s := suggest(e.Requested, e.Known); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}

// suggest returns the known name with the smallest Levenshtein distance
// to any requested name, the way open-policy-agent/opa's own diagnostics
// lean on github.com/agnivade/levenshtein to propose a correction instead
// of just reporting "not found" (spec §4.11 / SPEC_FULL §4.11).
func suggest(requested, known []string) string {
	best := ""
	bestDist := -1
	for _, r := range requested {
		for _, k := range known {
			d := levenshtein.ComputeDistance(r, k)
			if bestDist == -1 || d < bestDist {
				bestDist = d
				best = k
			}
		}
	}
	// A distance this large isn't a typo, it's a different name; don't
	// offer a misleading suggestion.
	if bestDist < 0 || bestDist > 4 {
		return ""
	}
	return best
}

// Suggest exposes the same nearest-name heuristic NoStartRule uses, for
// callers that want to enrich their own error message.
func Suggest(requested string, known []string) string {
	return suggest([]string{requested}, known)
}

// CompileError aggregates one or more underlying errors into one error
// value (compile.Compile itself returns its errors unwrapped), mirroring the teacher's
// error.SpecError / verr.SpecErrors pattern of carrying multiple problems
// out of one pass instead of stopping at the first.
type CompileError struct {
	Errs []error
}

func (e *CompileError) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	msg := fmt.Sprintf("%d compile errors:", len(e.Errs))
	for _, err := range e.Errs {
		msg += fmt.Sprintf("\n  - %v", err)
	}
	return msg
}

func (e *CompileError) Unwrap() []error {
	return e.Errs
}
