// Package compile implements the compiler facade of spec §6.1: run the
// proxy-elimination and stack-depth passes over an AST, then hand it to
// the emitter. It has no single teacher analogue; it plays the role the
// teacher's grammar.Compile/driver split plays across grammar.go and
// cmd/vartan/compile.go, collapsed into one function since this module's
// passes and emitter are both in-process Go packages rather than a
// separate compile step writing an intermediate JSON file to disk.
package compile

// Options is the compile-time options record from spec §6.1.
type Options struct {
	// StartRules is the ordered set of rule names exposed by the
	// generated parser's startRule argument. Empty means expose every
	// rule in the grammar.
	StartRules []string

	// SelfParsing, when true, omits the generated quote/escape/padLeft
	// helpers on the assumption the embedder already provides them.
	SelfParsing bool
}
