package emit

import (
	"strings"
	"testing"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/passes"
)

// digitsGrammar is `start = d:[0-9]+ { return len(d) }`, exercising class,
// one_or_more, labeled, and action emission together.
func digitsGrammar() *ast.Grammar {
	rules := ast.NewRuleMap()
	rules.Set("start", &ast.Rule{
		Name: "start",
		Expression: &ast.Action{
			Expression: &ast.Labeled{
				Label: "d",
				Expression: &ast.OneOrMore{
					Expression: &ast.Class{
						Parts:   []ast.ClassPart{{Lo: '0', Hi: '9'}},
						RawText: "[0-9]",
					},
				},
			},
			Code: "return len(lbl_d.([]interface{}))",
		},
	})
	return &ast.Grammar{StartRule: "start", Rules: rules}
}

func compiledSource(t *testing.T, g *ast.Grammar) string {
	t.Helper()
	passes.Eliminate(g)
	passes.Annotate(g)
	src, err := Emit(g, nil, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return src
}

func TestEmitProducesValidGoShape(t *testing.T) {
	src := compiledSource(t, digitsGrammar())
	for _, want := range []string{
		"package parser",
		"func (p *parser) parse_start()",
		"func Parse(input string, startRule string)",
		"type SyntaxError struct",
		"lbl_d",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("emitted source missing %q\n---\n%s", want, src)
		}
	}
}

func TestEmitSingleStartRuleValidatesArgument(t *testing.T) {
	src := compiledSource(t, digitsGrammar())
	if !strings.Contains(src, `startRule != "start"`) {
		t.Errorf("single-start-rule grammar should validate startRule against the one exposed name:\n%s", src)
	}
}

func TestEmitMultipleStartRulesBuildsDispatchTable(t *testing.T) {
	rules := ast.NewRuleMap()
	rules.Set("a", &ast.Rule{Name: "a", Expression: &ast.Literal{Value: "a"}})
	rules.Set("b", &ast.Rule{Name: "b", Expression: &ast.Literal{Value: "b"}})
	g := &ast.Grammar{StartRule: "a", Rules: rules}
	src := compiledSource(t, g)
	if !strings.Contains(src, `switch startRule`) {
		t.Errorf("multi-rule grammar should emit a start-rule dispatch switch:\n%s", src)
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	a := compiledSource(t, digitsGrammar())
	b := compiledSource(t, digitsGrammar())
	if a != b {
		t.Fatal("Emit(ast) != Emit(ast) for the same grammar (spec §8 invariant 6)")
	}
}

func TestEmitSelfParsingOmitsQuoteHelpers(t *testing.T) {
	g := digitsGrammar()
	passes.Eliminate(g)
	passes.Annotate(g)
	src, err := Emit(g, nil, true)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if strings.Contains(src, "func quote(") {
		t.Error("selfParsing=true should omit the quote helper")
	}
}
