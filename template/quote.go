package template

import (
	"fmt"
	"strings"
)

// Quote produces a double-quoted Go string literal for s (spec §4.8):
// backslash, double quote, CR, LF, TAB, and FF are escaped with
// two-character sequences; any other character outside [0x20, 0x7F] is
// emitted as \xHH (code point <= 0xFF) or \uHHHH (code point > 0xFF),
// using upper-case hex digits. This is the "string" filter (Filters,
// format.go). The emitted parser's own `quote` function (emit/runtime.go)
// is a separate copy of the same escaping rules, omitted when
// Options.SelfParsing says the caller already provides one.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(Escape(s))
	b.WriteByte('"')
	return b.String()
}

// Escape applies the same per-character escaping Quote does, without the
// surrounding double quotes, for callers that need to embed the escaped
// text inside a larger literal or message.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7F:
				b.WriteRune(r)
			case r <= 0xFF:
				fmt.Fprintf(&b, `\x%02X`, r)
			default:
				fmt.Fprintf(&b, `\u%04X`, r)
			}
		}
	}
	return b.String()
}

// PadLeft left-pads s with pad until it is at least width runes long; a
// longer s is returned unchanged. Nothing else in this module calls it;
// the emitted parser carries its own padLeft copy (emit/runtime.go).
func PadLeft(s string, width int, pad rune) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(pad), n) + s
}
