package compile

import (
	"github.com/nihei9/pegc/ast"
	"github.com/nihei9/pegc/emit"
	"github.com/nihei9/pegc/passes"
	"github.com/nihei9/pegc/pegerr"
)

// Compile runs the full pipeline of spec §3.3/§6.1 over g: proxy-rule
// elimination, stack-depth annotation, then emission, and returns the Go
// source text of the resulting parser.
//
// g is mutated in place by the passes, matching the teacher's
// grammar.Grammar, whose LALR construction methods likewise rewrite the
// receiver rather than returning a new value.
func Compile(g *ast.Grammar, opts Options) (string, error) {
	if len(opts.StartRules) > 0 {
		known := g.Rules.SortedNames()
		present := map[string]bool{}
		for _, n := range known {
			present[n] = true
		}
		var found []string
		for _, n := range opts.StartRules {
			if present[n] {
				found = append(found, n)
			}
		}
		if len(found) == 0 {
			return "", &pegerr.NoStartRule{Requested: opts.StartRules, Known: known}
		}
		opts.StartRules = found
	}

	passes.Eliminate(g)
	passes.Annotate(g)

	return emit.Emit(g, opts.StartRules, opts.SelfParsing)
}
