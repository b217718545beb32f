package template

import (
	"testing"

	"github.com/nihei9/pegc/pegerr"
)

func TestFormatMultilineReindent(t *testing.T) {
	got, err := Format("  ${x}", map[string]string{"x": "a\nb"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "  a\n  b"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatStringFilter(t *testing.T) {
	got, err := Format("a", "${b|string}", map[string]string{"b": "x"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "a\n\"x\""; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatNoTrailingMapUsesEmpty(t *testing.T) {
	got, err := Format("no variables here")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "no variables here"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestFormatUndefinedVariableIsTemplateError(t *testing.T) {
	_, err := Format("${missing}")
	if err == nil {
		t.Fatal("expected a TemplateError")
	}
	if _, ok := err.(*pegerr.TemplateError); !ok {
		t.Fatalf("err = %T, want *pegerr.TemplateError", err)
	}
}

func TestFormatUnknownFilterIsTemplateError(t *testing.T) {
	_, err := Format("${x|nosuchfilter}", map[string]string{"x": "v"})
	if err == nil {
		t.Fatal("expected a TemplateError")
	}
	if _, ok := err.(*pegerr.TemplateError); !ok {
		t.Fatalf("err = %T, want *pegerr.TemplateError", err)
	}
}

func TestFormatJoinsPartsWithNewline(t *testing.T) {
	got, err := Format("one", "two", "three")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if want := "one\ntwo\nthree"; got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}
