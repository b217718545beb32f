package passes

import (
	"testing"

	"github.com/nihei9/pegc/ast"
)

func grammarWithRules(start string, rules map[string]*ast.Rule) *ast.Grammar {
	g := &ast.Grammar{StartRule: start, Rules: ast.NewRuleMap()}
	for name, r := range rules {
		r.Name = name
		g.Rules.Set(name, r)
	}
	return g
}

func TestEliminateSimpleProxy(t *testing.T) {
	// start = a; a = "x"
	g := grammarWithRules("start", map[string]*ast.Rule{
		"start": {Expression: &ast.RuleRef{Name: "a"}},
		"a":     {Expression: &ast.Literal{Value: "x"}},
	})

	Eliminate(g)

	if g.StartRule != "a" {
		t.Fatalf("StartRule = %q, want %q", g.StartRule, "a")
	}
	if _, ok := g.Rules.Get("start"); ok {
		t.Fatal("proxy rule \"start\" should have been removed")
	}
	if _, ok := g.Rules.Get("a"); !ok {
		t.Fatal("rule \"a\" should still exist")
	}
}

func TestEliminateRewritesExternalReferences(t *testing.T) {
	// start = r; r = proxy; proxy = "y"
	g := grammarWithRules("start", map[string]*ast.Rule{
		"start": {Expression: &ast.Sequence{Elements: []ast.Expr{
			&ast.RuleRef{Name: "r"},
			&ast.RuleRef{Name: "r"},
		}}},
		"r":     {Expression: &ast.RuleRef{Name: "proxy"}},
		"proxy": {Expression: &ast.Literal{Value: "y"}},
	})

	Eliminate(g)

	if _, ok := g.Rules.Get("r"); ok {
		t.Fatal("proxy rule \"r\" should have been removed")
	}
	startRule, _ := g.Rules.Get("start")
	seq := startRule.Expression.(*ast.Sequence)
	for i, el := range seq.Elements {
		ref := el.(*ast.RuleRef)
		if ref.Name != "proxy" {
			t.Errorf("element %d references %q, want %q", i, ref.Name, "proxy")
		}
	}
}

func TestEliminateChainFullyCollapsesInOneCall(t *testing.T) {
	// start = a; a = b; b = "z"  (a chain of proxies)
	g := grammarWithRules("start", map[string]*ast.Rule{
		"start": {Expression: &ast.RuleRef{Name: "a"}},
		"a":     {Expression: &ast.RuleRef{Name: "b"}},
		"b":     {Expression: &ast.Literal{Value: "z"}},
	})

	Eliminate(g)

	if g.StartRule != "b" {
		t.Fatalf("StartRule = %q, want %q (see DESIGN.md Open Questions)", g.StartRule, "b")
	}
	if g.Rules.Len() != 1 {
		t.Fatalf("Rules.Len() = %v, want 1 (only the non-proxy rule survives)", g.Rules.Len())
	}
	if _, ok := g.Rules.Get("b"); !ok {
		t.Fatal("rule \"b\" should survive")
	}
}

func TestEliminateNoProxiesIsNoop(t *testing.T) {
	g := grammarWithRules("start", map[string]*ast.Rule{
		"start": {Expression: &ast.Literal{Value: "x"}},
	})
	Eliminate(g)
	if g.Rules.Len() != 1 {
		t.Fatalf("Rules.Len() = %v, want 1", g.Rules.Len())
	}
	if g.StartRule != "start" {
		t.Fatalf("StartRule = %q, want %q", g.StartRule, "start")
	}
}
