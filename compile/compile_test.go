package compile

import (
	"strings"
	"testing"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/pegerr"
)

func helloGrammar() *ast.Grammar {
	rules := ast.NewRuleMap()
	rules.Set("start", &ast.Rule{Name: "start", Expression: &ast.Literal{Value: "hello"}})
	return &ast.Grammar{StartRule: "start", Rules: rules}
}

func TestCompileProducesParseAndRuleFunctions(t *testing.T) {
	src, err := Compile(helloGrammar(), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, want := range []string{"func Parse(", "func (p *parser) parse_start()", "package parser"} {
		if !strings.Contains(src, want) {
			t.Errorf("Compile output missing %q", want)
		}
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	a, err := Compile(helloGrammar(), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := Compile(helloGrammar(), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if a != b {
		t.Fatal("Compile(g) != Compile(g) for the same grammar (spec §8 invariant 6)")
	}
}

func TestCompileUnknownStartRuleIsNoStartRule(t *testing.T) {
	_, err := Compile(helloGrammar(), Options{StartRules: []string{"nope"}})
	if err == nil {
		t.Fatal("expected NoStartRule")
	}
	if _, ok := err.(*pegerr.NoStartRule); !ok {
		t.Fatalf("err = %T, want *pegerr.NoStartRule", err)
	}
}

func TestCompileSelfParsingOmitsHelpers(t *testing.T) {
	withHelpers, err := Compile(helloGrammar(), Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	withoutHelpers, err := Compile(helloGrammar(), Options{SelfParsing: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(withHelpers, "func quote(") {
		t.Error("default compile should emit the quote helper")
	}
	if strings.Contains(withoutHelpers, "func quote(") {
		t.Error("SelfParsing compile should omit the quote helper")
	}
}
