package passes

import "github.com/nihei9/pegc/ast"

// Annotate computes resultStackDepth and posStackDepth for every rule and
// expression node (spec §4.3). It must run after Eliminate, since proxy
// elimination can remove and rewrite rule_ref nodes that would otherwise
// need to be walked twice.
//
// The recurrence is a single bottom-up walk per rule body (no fixpoint):
// PEG grammars accepted here never recurse left (spec §1 Non-goals), so
// every walk terminates without needing the worklist/fixpoint machinery
// the teacher's grammar/first.go and grammar/follow.go use for FIRST and
// FOLLOW sets over a possibly-cyclic symbol graph.
func Annotate(g *ast.Grammar) {
	g.Rules.Each(func(_ string, r *ast.Rule) {
		rd, pd := annotate(r.Expression)
		r.ResultStackDepth = rd + 1
		r.PosStackDepth = pd + 1
	})
}

func annotate(e ast.Expr) (resultDepth, posDepth int) {
	switch n := e.(type) {
	case *ast.RuleRef:
		return set(&n.Depths, 0, 0)
	case *ast.Literal:
		return set(&n.Depths, 0, 0)
	case *ast.Any:
		return set(&n.Depths, 0, 0)
	case *ast.Class:
		return set(&n.Depths, 0, 0)
	case *ast.SemanticAnd:
		return set(&n.Depths, 0, 0)
	case *ast.SemanticNot:
		return set(&n.Depths, 0, 0)

	case *ast.Labeled:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr, cp)
	case *ast.Optional:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr, cp)

	case *ast.SimpleAnd:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr, cp+1)
	case *ast.SimpleNot:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr, cp+1)
	case *ast.Action:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr, cp+1)

	case *ast.ZeroOrMore:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr+1, cp)
	case *ast.OneOrMore:
		cr, cp := annotate(n.Expression)
		return set(&n.Depths, cr+1, cp)

	case *ast.Choice:
		maxR, maxP := -1, -1
		for _, alt := range n.Alternatives {
			ar, ap := annotate(alt)
			maxR = maxInt(maxR, ar)
			maxP = maxInt(maxP, ap)
		}
		return set(&n.Depths, maxInt(maxR, 0), maxInt(maxP, 0))

	case *ast.Sequence:
		maxR, maxP := -1, -1
		for i, el := range n.Elements {
			er, ep := annotate(el)
			maxR = maxInt(maxR, i+er)
			maxP = maxInt(maxP, ep)
		}
		return set(&n.Depths, maxR+1, maxP+1)

	default:
		panic("passes: Annotate encountered an unhandled expression node")
	}
}

func set(d *ast.Depths, result, pos int) (int, int) {
	d.ResultStackDepth = result
	d.PosStackDepth = pos
	return result, pos
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
