package emit

import (
	"strings"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/template"
)

// Emit produces the full Go source text of a parser for g (spec §6.1
// output, built from §4.5–§4.8). startRuleNames is the caller's requested
// startRules option already validated to be non-empty-and-present by
// compile.Compile (or nil/empty for "expose every rule"); selfParsing
// mirrors Options.SelfParsing (spec §6.1).
func Emit(g *ast.Grammar, startRuleNames []string, selfParsing bool) (string, error) {
	names := g.Rules.SortedNames()

	ruleFns := make([]string, 0, len(names))
	for _, name := range names {
		r, _ := g.Rules.Get(name)
		ruleFns = append(ruleFns, emitRule(r))
	}

	exposed := startRuleNames
	if len(exposed) == 0 {
		exposed = names
	}

	runeImport := ""
	if usesRune(g) {
		runeImport = "\t\"unicode/utf8\"\n"
	}
	parts := []string{render(runtimePreamble, map[string]string{"package": "parser", "runeImport": runeImport})}
	if !selfParsing {
		parts = append(parts, selfParsingHelpersPreamble)
	}
	if g.Initializer != nil && g.Initializer.Code != "" {
		parts = append(parts, g.Initializer.Code)
	}
	parts = append(parts, ruleFns...)
	parts = append(parts, grammarWrapper(g, exposed))
	parts = append(parts, sourceHolder)

	src := strings.Join(parts, "\n\n")
	formatted, err := Gofmt(src)
	if err != nil {
		return "", err
	}
	return withSource(formatted)
}

// usesRune reports whether g contains an `any` or `class` node anywhere,
// the only operators whose emission needs unicode/utf8 (emit/operators.go
// handleAny, handleClass). Importing it unconditionally would leave a
// literal-only grammar's generated parser with an unused import, which
// go/parser and go/format (emit/gofmt.go) don't catch — only `go build`
// does, on whatever machine eventually compiles the emitted parser.
func usesRune(g *ast.Grammar) bool {
	found := false
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		if found {
			return
		}
		switch n := e.(type) {
		case *ast.Any, *ast.Class:
			found = true
		case *ast.Choice:
			for _, alt := range n.Alternatives {
				walk(alt)
			}
		case *ast.Sequence:
			for _, el := range n.Elements {
				walk(el)
			}
		case *ast.Labeled:
			walk(n.Expression)
		case *ast.SimpleAnd:
			walk(n.Expression)
		case *ast.SimpleNot:
			walk(n.Expression)
		case *ast.Optional:
			walk(n.Expression)
		case *ast.ZeroOrMore:
			walk(n.Expression)
		case *ast.OneOrMore:
			walk(n.Expression)
		case *ast.Action:
			walk(n.Expression)
		}
	}
	g.Rules.Each(func(_ string, r *ast.Rule) {
		walk(r.Expression)
	})
	return found
}

// grammarWrapper emits the parse entry point and start-rule dispatch (spec
// §4.8). A single exposed rule gets the simpler "validate-or-absent" form;
// more than one gets a name -> parse function dispatch table defaulting to
// grammar.startRule.
func grammarWrapper(g *ast.Grammar, exposed []string) string {
	var dispatch string
	if len(exposed) == 1 {
		dispatch = render(`if startRule != "" && startRule != ${only} {
		return nil, fmt.Errorf("pegc: unknown start rule %q", startRule)
	}
	result := p.parse_${fn}()`, map[string]string{"only": template.Quote(exposed[0]), "fn": exposed[0]})
	} else {
		cases := make([]string, len(exposed))
		for i, name := range exposed {
			cases[i] = render(`case ${lit}:
		result = p.parse_${fn}()`, map[string]string{"lit": template.Quote(name), "fn": name})
		}
		dispatch = render(`if startRule == "" {
		startRule = ${def}
	}
	var result interface{}
	switch startRule {
	${cases}
	default:
		return nil, fmt.Errorf("pegc: unknown start rule %q", startRule)
	}`, map[string]string{"def": template.Quote(g.StartRule), "cases": strings.Join(cases, "\n\t")})
	}

	return render(`// Parse runs the grammar's start rule (or the named one) over input and
// returns its semantic value, or a *SyntaxError if the rule fails to match
// or leaves unconsumed input.
func Parse(input string, startRule string) (interface{}, error) {
	p := &parser{input: input, memo: map[uint64]memoEntry{}}
	${dispatch}
	if result == nil || p.pos != len(p.input) {
		line, column := computePosition(p.input, p.rightmostFailuresPos)
		return nil, &SyntaxError{
			Name:    "SyntaxError",
			Message: "expected " + buildExpectedMessage(p.rightmostFailuresExpected) + " but parsing failed",
			Line:    line,
			Column:  column,
		}
	}
	return result, nil
}`, map[string]string{"dispatch": dispatch})
}

const sourceHolder = `
var generatedSource = ""

// ToSource returns this parser's own generated Go source text.
func ToSource() string {
	return generatedSource
}
`

func withSource(formatted string) (string, error) {
	quoted := template.Quote(formatted)
	replaced := strings.Replace(formatted, `var generatedSource = ""`, "var generatedSource = "+quoted, 1)
	return replaced, nil
}
