package emit

import (
	"strings"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/template"
)

// emitRule builds the parse_<name> function for one rule (spec §4.7): a
// memo check, the rule's own result/pos slot arrays, the body at
// Context{ResultIndex:1, PosIndex:1} (slot 0 of each array is this rule's
// own frame, mirroring how every other container node reserves one slot
// above what its child needs), optional displayName-gated failure
// recording, and the memo store.
//
// ResultStackDepth/PosStackDepth (passes/stackdepth.go) are the highest
// slot offset a node's subtree may touch relative to its own base, not a
// slot count — consistent with a leaf's depth of 0 meaning "touches only
// its own cell" — so the arrays declared here need one more element than
// the rule's own depth fields to hold index resultStackDepth itself.
func emitRule(r *ast.Rule) string {
	labels := collectLabels(r.Expression)
	labelDecls := ""
	if len(labels) > 0 {
		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = labelVar(l)
		}
		labelDecls = "var " + strings.Join(names, ", ") + " interface{}\n\t_ = " + strings.Join(names, ", ")
	}

	bodyCtx := Context{ResultIndex: 1, PosIndex: 1}
	body := emitExpr(r.Expression, bodyCtx)

	reportBlock := render(`${body}
	r := ${bodyR}`, map[string]string{"body": body, "bodyR": bodyCtx.Result()})
	if r.DisplayName != "" {
		reportBlock = render(`p.reportFailures++
	${body}
	p.reportFailures--
	r := ${bodyR}
	if p.reportFailures == 0 && r == nil {
		p.matchFailedName(${display})
	}`, map[string]string{"body": body, "bodyR": bodyCtx.Result(), "display": template.Quote(r.DisplayName)})
	}

	return render(`func (p *parser) parse_${name}() interface{} {
	key := p.memoKey(${nameLit}, p.pos)
	if ent, ok := p.memo[key]; ok {
		p.pos = ent.nextPos
		return ent.result
	}

	var result [${resultN}]interface{}
	var pos [${posN}]int
	_ = pos
	${labelDecls}

	${reportBlock}

	p.memo[key] = memoEntry{nextPos: p.pos, result: r}
	return r
}`, map[string]string{
		"name":        r.Name,
		"nameLit":     template.Quote(r.Name),
		"resultN":     itoa(r.ResultStackDepth + 1),
		"posN":        itoa(r.PosStackDepth + 1),
		"labelDecls":  labelDecls,
		"reportBlock": reportBlock,
	})
}

// collectLabels walks e for every Labeled node reachable without crossing
// into a nested rule (rule_ref stops the walk — its own labels belong to
// its own rule function), returning label names in first-seen order with
// duplicates removed. Every label found this way is hoisted to a var
// declaration at the top of the enclosing rule function (emitRule above),
// the same way pegjs hoists label vars to the top of each generated rule
// function rather than to the innermost block.
func collectLabels(e ast.Expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch n := e.(type) {
		case *ast.Labeled:
			if !seen[n.Label] {
				seen[n.Label] = true
				out = append(out, n.Label)
			}
			walk(n.Expression)
		case *ast.Choice:
			for _, alt := range n.Alternatives {
				walk(alt)
			}
		case *ast.Sequence:
			for _, el := range n.Elements {
				walk(el)
			}
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
	walk(e)
	return out
}
