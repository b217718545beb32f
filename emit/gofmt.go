package emit

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
)

// Gofmt parses src as a Go source file and re-renders it through
// go/format, the same two-step (parser.ParseFile, format.Node) sequence
// driver.GenParser in the teacher uses to pretty-print its generated
// parser from a text/template pass. The raw concatenation dispatch.go
// builds is syntactically valid but inconsistently indented; this is the
// step that makes it look hand-written.
func Gofmt(src string) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}
