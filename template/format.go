// Package template implements the named-variable formatter from spec
// §4.4 (interpolation with filters, multi-line re-indentation, newline
// join) and the Go-string quoting helper from spec §4.8. It has no direct
// teacher analogue: driver/template.go in the teacher drives Go's
// text/template against embedded .go sources, but spec.md §4.4 specifies
// a smaller, bespoke interpolation language (custom filter syntax, a
// specific re-indentation rule) that text/template doesn't give you
// directly, so this is written by hand.
package template

import (
	"regexp"
	"strings"

	"github.com/nihei9/pegc/pegerr"
)

var interpToken = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:\|([A-Za-z_][A-Za-z0-9_]*))?\}`)

// Filter transforms a variable's value before it's substituted in.
type Filter func(value string) (string, error)

// Filters is the set of named filters available to ${name|filter}. The
// only one spec §4.4 requires is "string" (Quote, spec §4.8); callers may
// register more.
var Filters = map[string]Filter{
	"string": func(v string) (string, error) { return Quote(v), nil },
}

// Format interpolates, re-indents, and newline-joins its arguments (spec
// §4.4). Every argument must be a string except optionally the last,
// which may be a map[string]string supplying variable values for every
// preceding part; omitting it is equivalent to passing an empty map.
func Format(args ...interface{}) (string, error) {
	vars := map[string]string{}
	parts := make([]string, 0, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts = append(parts, v)
		case map[string]string:
			if i != len(args)-1 {
				return "", &pegerr.TemplateError{Template: "", Name: "(trailing variable map must be the last argument)"}
			}
			vars = v
		default:
			return "", &pegerr.TemplateError{Template: "", Name: "(argument must be a string or a trailing map[string]string)"}
		}
	}

	rendered := make([]string, len(parts))
	for i, part := range parts {
		r, err := formatPart(part, vars)
		if err != nil {
			return "", err
		}
		rendered[i] = r
	}
	return strings.Join(rendered, "\n"), nil
}

func formatPart(part string, vars map[string]string) (string, error) {
	w := leadingWhitespace(firstLine(part))

	interpolated, err := interpolate(part, vars)
	if err != nil {
		return "", err
	}

	if !strings.Contains(interpolated, "\n") {
		return interpolated, nil
	}
	lines := strings.Split(interpolated, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = w + lines[i]
	}
	return strings.Join(lines, "\n"), nil
}

func interpolate(part string, vars map[string]string) (string, error) {
	var outerErr error
	out := interpToken.ReplaceAllStringFunc(part, func(tok string) string {
		m := interpToken.FindStringSubmatch(tok)
		name, filterName := m[1], m[2]

		value, ok := vars[name]
		if !ok {
			outerErr = &pegerr.TemplateError{Template: part, Name: name}
			return tok
		}
		if filterName == "" {
			return value
		}
		filter, ok := Filters[filterName]
		if !ok {
			outerErr = &pegerr.TemplateError{Template: part, Name: name, Filter: filterName}
			return tok
		}
		filtered, err := filter(value)
		if err != nil {
			outerErr = err
			return tok
		}
		return filtered
	})
	if outerErr != nil {
		return "", outerErr
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
