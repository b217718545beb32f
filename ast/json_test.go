package ast

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGrammarJSONRoundTrip(t *testing.T) {
	g := &Grammar{
		Initializer: &Initializer{Code: "var n = 0;"},
		StartRule:   "start",
		Rules:       NewRuleMap(),
	}
	g.Rules.Set("start", &Rule{
		Name: "start",
		Expression: &Sequence{
			Elements: []Expr{
				&Labeled{Label: "digits", Expression: &OneOrMore{Expression: &Class{
					Parts:   []ClassPart{{Lo: '0', Hi: '9'}},
					RawText: "[0-9]",
				}}},
				&RuleRef{Name: "eof"},
			},
		},
	})
	g.Rules.Set("eof", &Rule{
		Name:       "eof",
		Expression: &SimpleNot{Expression: &Any{}},
	})

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Grammar
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.StartRule != g.StartRule {
		t.Errorf("StartRule = %q, want %q", got.StartRule, g.StartRule)
	}
	if got.Initializer == nil || got.Initializer.Code != g.Initializer.Code {
		t.Errorf("Initializer = %+v, want %+v", got.Initializer, g.Initializer)
	}
	if got.Rules.Len() != 2 {
		t.Fatalf("Rules.Len() = %v, want 2", got.Rules.Len())
	}

	startRule, ok := got.Rules.Get("start")
	if !ok {
		t.Fatal("start rule missing after round trip")
	}
	seq, ok := startRule.Expression.(*Sequence)
	if !ok {
		t.Fatalf("start.Expression = %T, want *Sequence", startRule.Expression)
	}
	if len(seq.Elements) != 2 {
		t.Fatalf("len(seq.Elements) = %v, want 2", len(seq.Elements))
	}
	labeled, ok := seq.Elements[0].(*Labeled)
	if !ok {
		t.Fatalf("seq.Elements[0] = %T, want *Labeled", seq.Elements[0])
	}
	oneOrMore, ok := labeled.Expression.(*OneOrMore)
	if !ok {
		t.Fatalf("labeled.Expression = %T, want *OneOrMore", labeled.Expression)
	}
	class, ok := oneOrMore.Expression.(*Class)
	if !ok {
		t.Fatalf("oneOrMore.Expression = %T, want *Class", oneOrMore.Expression)
	}
	if diff := cmp.Diff([]ClassPart{{Lo: '0', Hi: '9'}}, class.Parts); diff != "" {
		t.Errorf("class.Parts mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExprUnknownType(t *testing.T) {
	_, err := decodeExpr(json.RawMessage(`{"type":"not_a_real_type"}`))
	if err == nil {
		t.Fatal("expected an error for an unknown expression type")
	}
}

func TestClassPartSingleCharDecode(t *testing.T) {
	raw := json.RawMessage(`{"type":"class","parts":[[97]],"inverted":false,"rawText":"[a]"}`)
	e, err := decodeExpr(raw)
	if err != nil {
		t.Fatalf("decodeExpr: %v", err)
	}
	c := e.(*Class)
	if len(c.Parts) != 1 || c.Parts[0].Lo != 'a' || c.Parts[0].Hi != 'a' {
		t.Fatalf("Parts = %+v, want single 'a'", c.Parts)
	}
}
