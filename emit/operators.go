package emit

import (
	"strconv"
	"strings"

	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/template"
)

// ctxOf extracts the Context a Visitor handler was called with. Every
// handler in this file is invoked as v.Visit(node, ctx).
func ctxOf(args []interface{}) Context {
	return args[0].(Context)
}

// render is a thin wrapper over template.Format that panics on error: every
// template here is a fixed literal with a fixed variable set supplied by
// this same package, so a TemplateError here is a programming mistake, not
// a condition callers of Emit should have to check for (spec §4.4 reserves
// TemplateError for genuinely malformed templates; ours never are once this
// package is correct).
func render(tmpl string, vars map[string]string) string {
	out, err := template.Format(tmpl, vars)
	if err != nil {
		panic(err)
	}
	return out
}

func handleLiteral(n ast.Node, args ...interface{}) interface{} {
	lit := n.(*ast.Literal)
	ctx := ctxOf(args)
	return render(`{
	if strings.HasPrefix(p.input[p.pos:], ${lit}) {
		${r} = ${lit}
		p.pos += ${n}
	} else {
		${r} = nil
		p.matchFailed(${lit})
	}
}`, map[string]string{
		"lit": template.Quote(lit.Value),
		"n":   strconv.Itoa(len(lit.Value)),
		"r":   ctx.Result(),
	})
}

func handleAny(n ast.Node, args ...interface{}) interface{} {
	ctx := ctxOf(args)
	return render(`{
	if p.pos < len(p.input) {
		c, w := utf8.DecodeRuneInString(p.input[p.pos:])
		${r} = string(c)
		p.pos += w
	} else {
		${r} = nil
		p.matchFailed("any character")
	}
}`, map[string]string{"r": ctx.Result()})
}

func handleClass(n ast.Node, args ...interface{}) interface{} {
	cls := n.(*ast.Class)
	ctx := ctxOf(args)

	conds := make([]string, 0, len(cls.Parts))
	for _, part := range cls.Parts {
		if part.Lo == part.Hi {
			conds = append(conds, "c == "+strconv.Itoa(int(part.Lo)))
		} else {
			conds = append(conds, "(c >= "+strconv.Itoa(int(part.Lo))+" && c <= "+strconv.Itoa(int(part.Hi))+")")
		}
	}
	inClass := "false"
	if len(conds) > 0 {
		inClass = strings.Join(conds, " || ")
	}
	inverted := "false"
	if cls.Inverted {
		inverted = "true"
	}

	return render(`{
	ok := false
	if p.pos < len(p.input) {
		c, w := utf8.DecodeRuneInString(p.input[p.pos:])
		in := ${inClass}
		if in != ${inverted} {
			${r} = string(c)
			p.pos += w
			ok = true
		}
	}
	if !ok {
		${r} = nil
		p.matchFailed(${raw})
	}
}`, map[string]string{
		"inClass":  inClass,
		"inverted": inverted,
		"r":        ctx.Result(),
		"raw":      template.Quote(cls.RawText),
	})
}

func handleRuleRef(n ast.Node, args ...interface{}) interface{} {
	ref := n.(*ast.RuleRef)
	ctx := ctxOf(args)
	return render(`{
	${r} = p.parse_${name}()
}`, map[string]string{"r": ctx.Result(), "name": ref.Name})
}

func handleSemanticAnd(n ast.Node, args ...interface{}) interface{} {
	pred := n.(*ast.SemanticAnd)
	ctx := ctxOf(args)
	return render(`{
	if func() bool {
		${code}
	}() {
		${r} = ""
	} else {
		${r} = nil
	}
}`, map[string]string{"code": pred.Code, "r": ctx.Result()})
}

func handleSemanticNot(n ast.Node, args ...interface{}) interface{} {
	pred := n.(*ast.SemanticNot)
	ctx := ctxOf(args)
	return render(`{
	if func() bool {
		${code}
	}() {
		${r} = nil
	} else {
		${r} = ""
	}
}`, map[string]string{"code": pred.Code, "r": ctx.Result()})
}

// handleSimpleAnd and handleSimpleNot bracket their child's evaluation with
// reportFailures++/-- (spec §4.6): a lookahead only probes, so a named rule
// failure inside it must not surface as the parse's own expected-alternative
// (the rule wrapper, emit/wrapper.go, only records displayName when
// reportFailures == 0). Low-level matchFailed calls from literals/classes
// inside the lookahead still accumulate into rightmostFailuresExpected.
func handleSimpleAnd(n ast.Node, args ...interface{}) interface{} {
	la := n.(*ast.SimpleAnd)
	ctx := ctxOf(args)
	childCtx := ctx.Child(0, 1)
	child := emitExpr(la.Expression, childCtx)
	return render(`{
	${save} = p.pos
	p.reportFailures++
	${child}
	p.reportFailures--
	p.pos = ${save}
	if ${childR} != nil {
		${r} = ""
	} else {
		${r} = nil
	}
}`, map[string]string{
		"save":   ctx.Pos(),
		"child":  child,
		"childR": childCtx.Result(),
		"r":      ctx.Result(),
	})
}

func handleSimpleNot(n ast.Node, args ...interface{}) interface{} {
	la := n.(*ast.SimpleNot)
	ctx := ctxOf(args)
	childCtx := ctx.Child(0, 1)
	child := emitExpr(la.Expression, childCtx)
	return render(`{
	${save} = p.pos
	p.reportFailures++
	${child}
	p.reportFailures--
	p.pos = ${save}
	if ${childR} == nil {
		${r} = ""
	} else {
		${r} = nil
	}
}`, map[string]string{
		"save":   ctx.Pos(),
		"child":  child,
		"childR": childCtx.Result(),
		"r":      ctx.Result(),
	})
}

func handleOptional(n ast.Node, args ...interface{}) interface{} {
	opt := n.(*ast.Optional)
	ctx := ctxOf(args)
	child := emitExpr(opt.Expression, ctx)
	return render(`{
	${child}
	if ${r} == nil {
		${r} = ""
	}
}`, map[string]string{"child": child, "r": ctx.Result()})
}

func handleZeroOrMore(n ast.Node, args ...interface{}) interface{} {
	rep := n.(*ast.ZeroOrMore)
	ctx := ctxOf(args)
	childCtx := ctx.Child(1, 0)
	child := emitExpr(rep.Expression, childCtx)
	return render(`{
	acc := []interface{}{}
	for {
		${child}
		if ${childR} == nil {
			break
		}
		acc = append(acc, ${childR})
	}
	${r} = acc
}`, map[string]string{"child": child, "childR": childCtx.Result(), "r": ctx.Result()})
}

func handleOneOrMore(n ast.Node, args ...interface{}) interface{} {
	rep := n.(*ast.OneOrMore)
	ctx := ctxOf(args)
	childCtx := ctx.Child(1, 0)
	child := emitExpr(rep.Expression, childCtx)
	return render(`{
	acc := []interface{}{}
	for {
		${child}
		if ${childR} == nil {
			break
		}
		acc = append(acc, ${childR})
	}
	if len(acc) == 0 {
		${r} = nil
	} else {
		${r} = acc
	}
}`, map[string]string{"child": child, "childR": childCtx.Result(), "r": ctx.Result()})
}

func handleLabeled(n ast.Node, args ...interface{}) interface{} {
	lb := n.(*ast.Labeled)
	ctx := ctxOf(args)
	child := emitExpr(lb.Expression, ctx)
	return render(`{
	${child}
	${label} = ${r}
}`, map[string]string{"child": child, "label": labelVar(lb.Label), "r": ctx.Result()})
}

func handleAction(n ast.Node, args ...interface{}) interface{} {
	act := n.(*ast.Action)
	ctx := ctxOf(args)
	childCtx := ctx.Child(0, 1)
	child := emitExpr(act.Expression, childCtx)
	return render(`{
	${save} = p.pos
	${child}
	if ${childR} != nil {
		text := p.input[${save}:p.pos]
		_ = text
		actionResult := func() interface{} {
			${code}
		}()
		if actionResult == nil {
			p.pos = ${save}
			${r} = nil
		} else {
			${r} = actionResult
		}
	} else {
		${r} = nil
	}
}`, map[string]string{
		"save":   ctx.Pos(),
		"child":  child,
		"childR": childCtx.Result(),
		"r":      ctx.Result(),
		"code":   act.Code,
	})
}

func handleSequence(n ast.Node, args ...interface{}) interface{} {
	seq := n.(*ast.Sequence)
	ctx := ctxOf(args)

	if len(seq.Elements) == 0 {
		return render(`{
	${r} = []interface{}{}
}`, map[string]string{"r": ctx.Result()})
	}

	elemCtxs := make([]Context, len(seq.Elements))
	for i := range seq.Elements {
		elemCtxs[i] = Context{ResultIndex: ctx.ResultIndex + i, PosIndex: ctx.PosIndex + 1}
	}

	vals := make([]string, len(seq.Elements))
	for i, c := range elemCtxs {
		vals[i] = c.Result()
	}
	body := render(`${r} = []interface{}{${vals}}`, map[string]string{
		"r":    ctx.Result(),
		"vals": strings.Join(vals, ", "),
	})
	for i := len(seq.Elements) - 1; i >= 0; i-- {
		child := emitExpr(seq.Elements[i], elemCtxs[i])
		body = render(`${child}
if ${er} != nil {
	${body}
} else {
	${r} = nil
	p.pos = ${save}
}`, map[string]string{
			"child": child,
			"er":    elemCtxs[i].Result(),
			"body":  body,
			"r":     ctx.Result(),
			"save":  ctx.Pos(),
		})
	}

	return render(`{
	${save} = p.pos
	${body}
}`, map[string]string{"save": ctx.Pos(), "body": body})
}

func handleChoice(n ast.Node, args ...interface{}) interface{} {
	ch := n.(*ast.Choice)
	ctx := ctxOf(args)

	if len(ch.Alternatives) == 0 {
		return render(`{
	${r} = nil
}`, map[string]string{"r": ctx.Result()})
	}

	body := emitExpr(ch.Alternatives[len(ch.Alternatives)-1], ctx)
	for i := len(ch.Alternatives) - 2; i >= 0; i-- {
		alt := emitExpr(ch.Alternatives[i], ctx)
		body = render(`${alt}
if ${r} == nil {
${rest}
}`, map[string]string{"alt": alt, "r": ctx.Result(), "rest": body})
	}

	return render(`{
${body}
}`, map[string]string{"body": body})
}

// emitExpr dispatches e to its handler and asserts the result is the Go
// source snippet every handler in this file returns.
func emitExpr(e ast.Expr, ctx Context) string {
	return sharedVisitor.Visit(e, ctx).(string)
}

// labelVar derives the Go identifier a label binds to. Labels are user
// identifiers already validated by the (out-of-scope) grammar front end, so
// no sanitization beyond a fixed prefix is needed; the prefix keeps a label
// named e.g. "p" or "input" from shadowing the parser receiver or its field.
func labelVar(label string) string { return "lbl_" + label }

// sharedVisitor is the Visitor every emitExpr call dispatches through. It's
// package-level rather than threaded through every call because it is pure
// (stateless handlers keyed only by node type) and built once.
var sharedVisitor = ast.NewVisitor(map[ast.NodeType]ast.HandlerFunc{
	ast.TypeLiteral:     handleLiteral,
	ast.TypeAny:         handleAny,
	ast.TypeClass:       handleClass,
	ast.TypeRuleRef:     handleRuleRef,
	ast.TypeSemanticAnd: handleSemanticAnd,
	ast.TypeSemanticNot: handleSemanticNot,
	ast.TypeSimpleAnd:   handleSimpleAnd,
	ast.TypeSimpleNot:   handleSimpleNot,
	ast.TypeOptional:    handleOptional,
	ast.TypeZeroOrMore:  handleZeroOrMore,
	ast.TypeOneOrMore:   handleOneOrMore,
	ast.TypeLabeled:     handleLabeled,
	ast.TypeAction:      handleAction,
	ast.TypeSequence:    handleSequence,
	ast.TypeChoice:      handleChoice,
})
