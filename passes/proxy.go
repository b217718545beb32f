// Package passes implements the two AST-mutating passes from spec §4.2
// and §4.3: proxy-rule elimination and stack-depth annotation. Both run
// in place on an *ast.Grammar and are ordered by compile.Compile.
package passes

import "github.com/nihei9/pegc/ast"

// Eliminate removes every proxy rule (spec §4.2): a rule whose body is
// exactly a rule_ref node. It rewrites every rule_ref anywhere in the AST
// that names a proxy to the proxy's target, updates grammar.StartRule if
// it named a proxy, and removes the proxy from grammar.Rules.
//
// It iterates the rule names present when Eliminate is called (a
// snapshot), in sorted order, for build reproducibility (Design Notes
// §9). For each proxy rule still present at the moment it's visited, it
// performs a full rewrite sweep of the current AST before deleting it.
// Because every proxy in a chain is visited exactly once within this one
// call, and each visit's sweep sees the results of any earlier visit in
// the same call, a chain A -> B -> C collapses completely by the time
// Eliminate returns — see DESIGN.md's "Open Questions resolved" for why
// this implementation does not need the partial-collapse escape hatch
// spec.md §4.2 allows for.
func Eliminate(g *ast.Grammar) {
	names := g.Rules.SortedNames()
	for _, name := range names {
		r, ok := g.Rules.Get(name)
		if !ok {
			// Already removed by an earlier sweep in this same call
			// (it was itself the target of another proxy that has
			// since been found to be a proxy too — doesn't happen
			// given rule_ref targets must exist, but guard anyway).
			continue
		}
		ref, isProxy := r.Expression.(*ast.RuleRef)
		if !isProxy {
			continue
		}
		target := ref.Name

		rewriteRuleRefs(g, name, target)
		if g.StartRule == name {
			g.StartRule = target
		}
		g.Rules.Delete(name)
	}
}

// rewriteRuleRefs renames every rule_ref node in the grammar (across every
// remaining rule's expression tree) from "from" to "to".
func rewriteRuleRefs(g *ast.Grammar, from, to string) {
	g.Rules.Each(func(_ string, r *ast.Rule) {
		rewriteExpr(r.Expression, from, to)
	})
}

// rewriteExpr walks an expression tree, renaming rule_ref leaves. Operator
// nodes recurse into their subexpression(s); other leaves are no-ops
// (spec §4.2).
func rewriteExpr(e ast.Expr, from, to string) {
	switch n := e.(type) {
	case *ast.Choice:
		for _, alt := range n.Alternatives {
			rewriteExpr(alt, from, to)
		}
	case *ast.Sequence:
		for _, el := range n.Elements {
			rewriteExpr(el, from, to)
		}
	case *ast.Labeled:
		rewriteExpr(n.Expression, from, to)
	case *ast.SimpleAnd:
		rewriteExpr(n.Expression, from, to)
	case *ast.SimpleNot:
		rewriteExpr(n.Expression, from, to)
	case *ast.Optional:
		rewriteExpr(n.Expression, from, to)
	case *ast.ZeroOrMore:
		rewriteExpr(n.Expression, from, to)
	case *ast.OneOrMore:
		rewriteExpr(n.Expression, from, to)
	case *ast.Action:
		rewriteExpr(n.Expression, from, to)
	case *ast.RuleRef:
		if n.Name == from {
			n.Name = to
		}
	case *ast.SemanticAnd, *ast.SemanticNot, *ast.Literal, *ast.Any, *ast.Class:
		// leaves, no-op
	}
}
