package passes

import (
	"testing"

	"github.com/nihei9/pegc/ast"
)

func TestAnnotateLeaves(t *testing.T) {
	lit := &ast.Literal{Value: "x"}
	rd, pd := annotate(lit)
	if rd != 0 || pd != 0 {
		t.Fatalf("literal depths = (%d,%d), want (0,0)", rd, pd)
	}
}

func TestAnnotateSequenceFormula(t *testing.T) {
	// sequence of three leaves: result = 1 + max_i(i + 0) = 1 + 2 = 3; pos = 1 + 0 = 1
	seq := &ast.Sequence{Elements: []ast.Expr{
		&ast.Literal{Value: "a"},
		&ast.Literal{Value: "b"},
		&ast.Literal{Value: "c"},
	}}
	rd, pd := annotate(seq)
	if rd != 3 {
		t.Errorf("sequence resultStackDepth = %d, want 3", rd)
	}
	if pd != 1 {
		t.Errorf("sequence posStackDepth = %d, want 1", pd)
	}
}

func TestAnnotateSimpleAndAddsPosSlot(t *testing.T) {
	n := &ast.SimpleAnd{Expression: &ast.Literal{Value: "x"}}
	rd, pd := annotate(n)
	if rd != 0 || pd != 1 {
		t.Fatalf("simple_and depths = (%d,%d), want (0,1)", rd, pd)
	}
}

func TestAnnotateZeroOrMoreAddsResultSlot(t *testing.T) {
	n := &ast.ZeroOrMore{Expression: &ast.Literal{Value: "x"}}
	rd, pd := annotate(n)
	if rd != 1 || pd != 0 {
		t.Fatalf("zero_or_more depths = (%d,%d), want (1,0)", rd, pd)
	}
}

func TestAnnotateChoiceTakesMax(t *testing.T) {
	n := &ast.Choice{Alternatives: []ast.Expr{
		&ast.Literal{Value: "a"},
		&ast.OneOrMore{Expression: &ast.Literal{Value: "b"}}, // result depth 1
	}}
	rd, _ := annotate(n)
	if rd != 1 {
		t.Fatalf("choice resultStackDepth = %d, want 1", rd)
	}
}

func TestAnnotateRuleAddsOneOverExpression(t *testing.T) {
	g := &ast.Grammar{StartRule: "s", Rules: ast.NewRuleMap()}
	r := &ast.Rule{Name: "s", Expression: &ast.Sequence{Elements: []ast.Expr{
		&ast.Literal{Value: "a"},
		&ast.Literal{Value: "b"},
	}}}
	g.Rules.Set("s", r)

	Annotate(g)

	// sequence depths: result = 1 + max(0,1) = 2; pos = 1 + 0 = 1
	// rule depths: expression + 1 each
	if r.ResultStackDepth != 3 {
		t.Errorf("rule resultStackDepth = %d, want 3", r.ResultStackDepth)
	}
	if r.PosStackDepth != 2 {
		t.Errorf("rule posStackDepth = %d, want 2", r.PosStackDepth)
	}
}

func TestAnnotateAllNodesNonNegative(t *testing.T) {
	g := &ast.Grammar{StartRule: "s", Rules: ast.NewRuleMap()}
	g.Rules.Set("s", &ast.Rule{Name: "s", Expression: &ast.Choice{Alternatives: []ast.Expr{
		&ast.OneOrMore{Expression: &ast.Class{Parts: []ast.ClassPart{{Lo: '0', Hi: '9'}}}},
		&ast.Action{
			Expression: &ast.Labeled{Label: "v", Expression: &ast.RuleRef{Name: "s"}},
			Code:       "return v",
		},
	}}})
	Annotate(g)
	r, _ := g.Rules.Get("s")
	if r.ResultStackDepth < 0 || r.PosStackDepth < 0 {
		t.Fatalf("negative depth: %+v", r.Depths)
	}
	choice := r.Expression.(*ast.Choice)
	oom := choice.Alternatives[0].(*ast.OneOrMore)
	act := choice.Alternatives[1].(*ast.Action)
	lbl := act.Expression.(*ast.Labeled)
	for _, d := range []ast.Depths{
		choice.Depths, oom.Depths, oom.Expression.(*ast.Class).Depths,
		act.Depths, lbl.Depths, lbl.Expression.(*ast.RuleRef).Depths,
	} {
		if d.ResultStackDepth < 0 || d.PosStackDepth < 0 {
			t.Fatalf("negative depth: %+v", d)
		}
	}
}
