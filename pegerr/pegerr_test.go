package pegerr

import (
	"strings"
	"testing"
)

func TestTemplateErrorMessage(t *testing.T) {
	err := &TemplateError{Template: "${x}", Name: "x"}
	if !strings.Contains(err.Error(), "undefined variable") {
		t.Errorf("unexpected message: %v", err.Error())
	}

	withFilter := &TemplateError{Template: "${x|bogus}", Name: "x", Filter: "bogus"}
	if !strings.Contains(withFilter.Error(), "unknown filter") {
		t.Errorf("unexpected message: %v", withFilter.Error())
	}
}

func TestNoStartRuleSuggestsNearestName(t *testing.T) {
	err := &NoStartRule{Requested: []string{"strat"}, Known: []string{"start", "statement"}}
	if !strings.Contains(err.Error(), `did you mean "start"?`) {
		t.Errorf("expected a suggestion for the nearest known name, got: %v", err.Error())
	}
}

func TestNoStartRuleOmitsSuggestionWhenTooFar(t *testing.T) {
	err := &NoStartRule{Requested: []string{"zzzzzzzzzz"}, Known: []string{"start"}}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("should not suggest a name this far away, got: %v", err.Error())
	}
}

func TestSuggest(t *testing.T) {
	if got := Suggest("strat", []string{"start", "statement"}); got != "start" {
		t.Errorf("Suggest() = %q, want %q", got, "start")
	}
	if got := Suggest("zzzzzzzzzz", []string{"start"}); got != "" {
		t.Errorf("Suggest() = %q, want empty", got)
	}
}

func TestCompileErrorAggregatesMultiple(t *testing.T) {
	err := &CompileError{Errs: []error{&NoStartRule{Requested: []string{"a"}}, &TemplateError{Template: "t", Name: "x"}}}
	msg := err.Error()
	if !strings.Contains(msg, "2 compile errors") {
		t.Errorf("unexpected message: %v", msg)
	}
}

func TestCompileErrorSingleUnwraps(t *testing.T) {
	inner := &NoStartRule{Requested: []string{"a"}}
	err := &CompileError{Errs: []error{inner}}
	if err.Error() != inner.Error() {
		t.Errorf("a single-error CompileError should just forward the inner message")
	}
}
