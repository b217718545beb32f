package ast

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// The grammar front end is out of scope (spec §1); this module's stated
// interface to it is a JSON document shaped by the wire types below. The
// front end (wherever it lives) must emit this shape; pegc only consumes
// it. This file is the only place that shape is defined.

type ruleWire struct {
	DisplayName string          `json:"displayName,omitempty"`
	Expression  json.RawMessage `json:"expression"`
	Depths
}

type exprWire struct {
	Type         NodeType          `json:"type"`
	Alternatives []json.RawMessage `json:"alternatives,omitempty"`
	Elements     []json.RawMessage `json:"elements,omitempty"`
	Label        string            `json:"label,omitempty"`
	Expression   json.RawMessage   `json:"expression,omitempty"`
	Code         string            `json:"code,omitempty"`
	Name         string            `json:"name,omitempty"`
	Value        string            `json:"value,omitempty"`
	Parts        [][]int           `json:"parts,omitempty"`
	Inverted     bool              `json:"inverted,omitempty"`
	RawText      string            `json:"rawText,omitempty"`
	Depths
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("ast: missing expression")
	}
	var w exprWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("ast: decode expression: %w", err)
	}

	decodeChild := func() (Expr, error) { return decodeExpr(w.Expression) }
	decodeList := func(raws []json.RawMessage) ([]Expr, error) {
		out := make([]Expr, len(raws))
		for i, r := range raws {
			e, err := decodeExpr(r)
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	}

	switch w.Type {
	case TypeChoice:
		alts, err := decodeList(w.Alternatives)
		if err != nil {
			return nil, err
		}
		return &Choice{Depths: w.Depths, Alternatives: alts}, nil
	case TypeSequence:
		elems, err := decodeList(w.Elements)
		if err != nil {
			return nil, err
		}
		return &Sequence{Depths: w.Depths, Elements: elems}, nil
	case TypeLabeled:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &Labeled{Depths: w.Depths, Label: w.Label, Expression: child}, nil
	case TypeSimpleAnd:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &SimpleAnd{Depths: w.Depths, Expression: child}, nil
	case TypeSimpleNot:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &SimpleNot{Depths: w.Depths, Expression: child}, nil
	case TypeSemanticAnd:
		return &SemanticAnd{Depths: w.Depths, Code: w.Code}, nil
	case TypeSemanticNot:
		return &SemanticNot{Depths: w.Depths, Code: w.Code}, nil
	case TypeOptional:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &Optional{Depths: w.Depths, Expression: child}, nil
	case TypeZeroOrMore:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &ZeroOrMore{Depths: w.Depths, Expression: child}, nil
	case TypeOneOrMore:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &OneOrMore{Depths: w.Depths, Expression: child}, nil
	case TypeAction:
		child, err := decodeChild()
		if err != nil {
			return nil, err
		}
		return &Action{Depths: w.Depths, Expression: child, Code: w.Code}, nil
	case TypeRuleRef:
		return &RuleRef{Depths: w.Depths, Name: w.Name}, nil
	case TypeLiteral:
		return &Literal{Depths: w.Depths, Value: w.Value}, nil
	case TypeAny:
		return &Any{Depths: w.Depths}, nil
	case TypeClass:
		parts := make([]ClassPart, len(w.Parts))
		for i, p := range w.Parts {
			switch len(p) {
			case 1:
				parts[i] = ClassPart{Lo: rune(p[0]), Hi: rune(p[0])}
			case 2:
				parts[i] = ClassPart{Lo: rune(p[0]), Hi: rune(p[1])}
			default:
				return nil, fmt.Errorf("ast: class part must have 1 or 2 code points, got %d", len(p))
			}
		}
		return &Class{Depths: w.Depths, Parts: parts, Inverted: w.Inverted, RawText: w.RawText}, nil
	default:
		return nil, fmt.Errorf("ast: unknown expression type %q", w.Type)
	}
}

func encodeExpr(e Expr) (map[string]interface{}, error) {
	withDepths := func(m map[string]interface{}, d Depths) map[string]interface{} {
		m["resultStackDepth"] = d.ResultStackDepth
		m["posStackDepth"] = d.PosStackDepth
		return m
	}
	encodeList := func(es []Expr) ([]map[string]interface{}, error) {
		out := make([]map[string]interface{}, len(es))
		for i, e := range es {
			m, err := encodeExpr(e)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	}

	switch n := e.(type) {
	case *Choice:
		alts, err := encodeList(n.Alternatives)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeChoice, "alternatives": alts}, n.Depths), nil
	case *Sequence:
		elems, err := encodeList(n.Elements)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeSequence, "elements": elems}, n.Depths), nil
	case *Labeled:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeLabeled, "label": n.Label, "expression": child}, n.Depths), nil
	case *SimpleAnd:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeSimpleAnd, "expression": child}, n.Depths), nil
	case *SimpleNot:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeSimpleNot, "expression": child}, n.Depths), nil
	case *SemanticAnd:
		return withDepths(map[string]interface{}{"type": TypeSemanticAnd, "code": n.Code}, n.Depths), nil
	case *SemanticNot:
		return withDepths(map[string]interface{}{"type": TypeSemanticNot, "code": n.Code}, n.Depths), nil
	case *Optional:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeOptional, "expression": child}, n.Depths), nil
	case *ZeroOrMore:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeZeroOrMore, "expression": child}, n.Depths), nil
	case *OneOrMore:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeOneOrMore, "expression": child}, n.Depths), nil
	case *Action:
		child, err := encodeExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		return withDepths(map[string]interface{}{"type": TypeAction, "expression": child, "code": n.Code}, n.Depths), nil
	case *RuleRef:
		return withDepths(map[string]interface{}{"type": TypeRuleRef, "name": n.Name}, n.Depths), nil
	case *Literal:
		return withDepths(map[string]interface{}{"type": TypeLiteral, "value": n.Value}, n.Depths), nil
	case *Any:
		return withDepths(map[string]interface{}{"type": TypeAny}, n.Depths), nil
	case *Class:
		parts := make([][]int, len(n.Parts))
		for i, p := range n.Parts {
			if p.Lo == p.Hi {
				parts[i] = []int{int(p.Lo)}
			} else {
				parts[i] = []int{int(p.Lo), int(p.Hi)}
			}
		}
		return withDepths(map[string]interface{}{
			"type": TypeClass, "parts": parts, "inverted": n.Inverted, "rawText": n.RawText,
		}, n.Depths), nil
	default:
		return nil, fmt.Errorf("ast: unknown expression node %T", e)
	}
}

type grammarWire struct {
	Initializer *struct {
		Code string `json:"code"`
	} `json:"initializer,omitempty"`
	StartRule string                     `json:"startRule"`
	Rules     map[string]json.RawMessage `json:"rules"`
}

// UnmarshalJSON decodes the wire shape documented above into a Grammar,
// always iterating the rules object's keys in sorted order so the
// resulting RuleMap's insertion order is deterministic regardless of the
// source JSON's key order (Design Notes §9).
func (g *Grammar) UnmarshalJSON(data []byte) error {
	var w grammarWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("ast: decode grammar: %w", err)
	}

	g.StartRule = w.StartRule
	if w.Initializer != nil {
		g.Initializer = &Initializer{Code: w.Initializer.Code}
	}

	g.Rules = NewRuleMap()
	names := maps.Keys(w.Rules)
	slices.Sort(names)
	for _, name := range names {
		var rw ruleWire
		if err := json.Unmarshal(w.Rules[name], &rw); err != nil {
			return fmt.Errorf("ast: decode rule %q: %w", name, err)
		}
		expr, err := decodeExpr(rw.Expression)
		if err != nil {
			return fmt.Errorf("ast: decode rule %q: %w", name, err)
		}
		g.Rules.Set(name, &Rule{
			Depths:      rw.Depths,
			Name:        name,
			DisplayName: rw.DisplayName,
			Expression:  expr,
		})
	}
	return nil
}

// MarshalJSON encodes a Grammar back to the wire shape UnmarshalJSON reads.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	rules := map[string]interface{}{}
	for _, name := range g.Rules.Names() {
		r, _ := g.Rules.Get(name)
		expr, err := encodeExpr(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("ast: encode rule %q: %w", name, err)
		}
		rm := map[string]interface{}{
			"expression":       expr,
			"resultStackDepth": r.ResultStackDepth,
			"posStackDepth":    r.PosStackDepth,
		}
		if r.DisplayName != "" {
			rm["displayName"] = r.DisplayName
		}
		rules[name] = rm
	}

	w := map[string]interface{}{
		"startRule": g.StartRule,
		"rules":     rules,
	}
	if g.Initializer != nil {
		w["initializer"] = map[string]interface{}{"code": g.Initializer.Code}
	}
	return json.Marshal(w)
}
