// Package emit implements spec §4.5–§4.8: the per-node emission visitor,
// the per-operator snippet rules, rule-wrapper memoization, and the outer
// grammar wrapper (parse entry, failure tracking, SyntaxError, quote
// helpers). It has no direct teacher analogue — the teacher's driver
// package is a table-driven shift/reduce runtime, not a recursive-
// descent/backtracking one — so the emission rules here are built fresh
// directly from spec.md §4.5–§4.8, which specifies them exhaustively.
package emit

// Context carries the slot-contract addressing a node's snippet must
// respect (spec §4.5): ResultIndex/PosIndex are the base offsets into the
// enclosing rule's result[]/pos[] arrays this node may read and write.
// A node may use result[ResultIndex+k] and pos[PosIndex+k] for k >= 1 as
// scratch space; ResultIndex/PosIndex themselves are where it reports its
// own outcome.
type Context struct {
	ResultIndex int
	PosIndex    int
}

// Child returns the context a subexpression emits itself at, offset by
// resultOffset/posOffset slots from this context's own base.
func (c Context) Child(resultOffset, posOffset int) Context {
	return Context{ResultIndex: c.ResultIndex + resultOffset, PosIndex: c.PosIndex + posOffset}
}

// Result is the Go expression naming this context's own result slot.
func (c Context) Result() string { return slotExpr("result", c.ResultIndex) }

// Pos is the Go expression naming this context's own saved-position slot.
func (c Context) Pos() string { return slotExpr("pos", c.PosIndex) }

func (c Context) ResultAt(k int) string { return slotExpr("result", c.ResultIndex+k) }
func (c Context) PosAt(k int) string    { return slotExpr("pos", c.PosIndex+k) }

func slotExpr(arr string, idx int) string {
	if idx == 0 {
		return arr + "[0]"
	}
	return arr + "[" + itoa(idx) + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
