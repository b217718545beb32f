// Package ast defines the grammar AST the compiler passes and emitter
// operate on: a grammar node, a rule table, and the PEG expression node
// variants from spec §3.1.
package ast

// NodeType tags every AST node so a Visitor (visitor.go) can dispatch on
// it without a type switch at every call site.
type NodeType string

const (
	TypeGrammar     NodeType = "grammar"
	TypeInitializer NodeType = "initializer"
	TypeRule        NodeType = "rule"
	TypeChoice      NodeType = "choice"
	TypeSequence    NodeType = "sequence"
	TypeLabeled     NodeType = "labeled"
	TypeSimpleAnd   NodeType = "simple_and"
	TypeSimpleNot   NodeType = "simple_not"
	TypeSemanticAnd NodeType = "semantic_and"
	TypeSemanticNot NodeType = "semantic_not"
	TypeOptional    NodeType = "optional"
	TypeZeroOrMore  NodeType = "zero_or_more"
	TypeOneOrMore   NodeType = "one_or_more"
	TypeAction      NodeType = "action"
	TypeRuleRef     NodeType = "rule_ref"
	TypeLiteral     NodeType = "literal"
	TypeAny         NodeType = "any"
	TypeClass       NodeType = "class"
)

// Node is satisfied by every grammar and expression node.
type Node interface {
	Type() NodeType
}

// Expr is the subset of Node that can appear wherever spec.md calls for
// "any expression node". It exists so container fields (Choice.Alternatives,
// Sequence.Elements, ...) are typed as []Expr rather than []Node.
type Expr interface {
	Node
	exprNode()
}

// Depths holds the two annotations the stack-depths pass (passes/stackdepth.go)
// computes for every rule and expression node (spec §3.1, §4.3). Both are
// zero until that pass has run.
type Depths struct {
	ResultStackDepth int `json:"resultStackDepth"`
	PosStackDepth    int `json:"posStackDepth"`
}

// Grammar is the AST root (spec §3.1).
type Grammar struct {
	Initializer *Initializer `json:"initializer,omitempty"`
	StartRule   string       `json:"startRule"`
	Rules       *RuleMap     `json:"rules"`
}

func (*Grammar) Type() NodeType { return TypeGrammar }

// Initializer carries raw host-language code inserted verbatim into the
// emitted parser's top scope.
type Initializer struct {
	Code string `json:"code"`
}

func (*Initializer) Type() NodeType { return TypeInitializer }

// Rule binds a name to an expression. DisplayName, when non-empty, is used
// in place of Name in synthesized error messages (spec §4.7 step 3).
type Rule struct {
	Depths
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Expression  Expr   `json:"expression"`
}

func (*Rule) Type() NodeType { return TypeRule }

// Choice tries Alternatives in order; the first non-null match wins.
type Choice struct {
	Depths
	Alternatives []Expr `json:"alternatives"`
}

func (*Choice) Type() NodeType { return TypeChoice }
func (*Choice) exprNode()      {}

// Sequence matches Elements in order, collecting their values into one
// ordered result on full success.
type Sequence struct {
	Depths
	Elements []Expr `json:"elements"`
}

func (*Sequence) Type() NodeType { return TypeSequence }
func (*Sequence) exprNode()      {}

// Labeled attaches a name to a child expression's result so an enclosing
// Action can bind it as a parameter.
type Labeled struct {
	Depths
	Label      string `json:"label"`
	Expression Expr   `json:"expression"`
}

func (*Labeled) Type() NodeType { return TypeLabeled }
func (*Labeled) exprNode()      {}

// SimpleAnd is a positive lookahead: matches without consuming input.
type SimpleAnd struct {
	Depths
	Expression Expr `json:"expression"`
}

func (*SimpleAnd) Type() NodeType { return TypeSimpleAnd }
func (*SimpleAnd) exprNode()      {}

// SimpleNot is a negative lookahead: matches without consuming input.
type SimpleNot struct {
	Depths
	Expression Expr `json:"expression"`
}

func (*SimpleNot) Type() NodeType { return TypeSimpleNot }
func (*SimpleNot) exprNode()      {}

// SemanticAnd succeeds without consuming input iff Code evaluates truthy.
type SemanticAnd struct {
	Depths
	Code string `json:"code"`
}

func (*SemanticAnd) Type() NodeType { return TypeSemanticAnd }
func (*SemanticAnd) exprNode()      {}

// SemanticNot succeeds without consuming input iff Code evaluates falsy.
type SemanticNot struct {
	Depths
	Code string `json:"code"`
}

func (*SemanticNot) Type() NodeType { return TypeSemanticNot }
func (*SemanticNot) exprNode()      {}

// Optional never fails; an unmatched child yields the empty-match sentinel.
type Optional struct {
	Depths
	Expression Expr `json:"expression"`
}

func (*Optional) Type() NodeType { return TypeOptional }
func (*Optional) exprNode()      {}

// ZeroOrMore greedily repeats Expression, never failing.
type ZeroOrMore struct {
	Depths
	Expression Expr `json:"expression"`
}

func (*ZeroOrMore) Type() NodeType { return TypeZeroOrMore }
func (*ZeroOrMore) exprNode()      {}

// OneOrMore greedily repeats Expression, failing if it never matches once.
type OneOrMore struct {
	Depths
	Expression Expr `json:"expression"`
}

func (*OneOrMore) Type() NodeType { return TypeOneOrMore }
func (*OneOrMore) exprNode()      {}

// Action runs Code over the labels bound within Expression on a match.
type Action struct {
	Depths
	Expression Expr   `json:"expression"`
	Code       string `json:"code"`
}

func (*Action) Type() NodeType { return TypeAction }
func (*Action) exprNode()      {}

// RuleRef invokes another rule by name.
type RuleRef struct {
	Depths
	Name string `json:"name"`
}

func (*RuleRef) Type() NodeType { return TypeRuleRef }
func (*RuleRef) exprNode()      {}

// Literal matches an exact substring.
type Literal struct {
	Depths
	Value string `json:"value"`
}

func (*Literal) Type() NodeType { return TypeLiteral }
func (*Literal) exprNode()      {}

// Any matches a single character.
type Any struct {
	Depths
}

func (*Any) Type() NodeType { return TypeAny }
func (*Any) exprNode()      {}

// ClassPart is either a single code point (Lo == Hi) or an inclusive range.
type ClassPart struct {
	Lo rune
	Hi rune
}

// Class matches a single character against a character set.
type Class struct {
	Depths
	Parts    []ClassPart `json:"-"`
	Inverted bool        `json:"inverted"`
	RawText  string      `json:"rawText"`
}

func (*Class) Type() NodeType { return TypeClass }
func (*Class) exprNode()      {}

var (
	_ Expr = (*Choice)(nil)
	_ Expr = (*Sequence)(nil)
	_ Expr = (*Labeled)(nil)
	_ Expr = (*SimpleAnd)(nil)
	_ Expr = (*SimpleNot)(nil)
	_ Expr = (*SemanticAnd)(nil)
	_ Expr = (*SemanticNot)(nil)
	_ Expr = (*Optional)(nil)
	_ Expr = (*ZeroOrMore)(nil)
	_ Expr = (*OneOrMore)(nil)
	_ Expr = (*Action)(nil)
	_ Expr = (*RuleRef)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*Any)(nil)
	_ Expr = (*Class)(nil)
)
